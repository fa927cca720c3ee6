package contracts

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// OfferData mirrors the marketplace's offer struct as the flattened public
// getter returns it. A zero TargetTokenID on swap offers means any slot.
type OfferData struct {
	OfferType      uint8
	OfferedTokenID *big.Int
	OfferedDay     uint8
	TargetTokenID  *big.Int
	TargetDay      uint8
	EthAmount      *big.Int
	Offerer        common.Address
	IsActive       bool
}

// Market wraps the swap/sale/buy marketplace contract.
type Market struct {
	address  common.Address
	contract *bind.BoundContract
}

func NewMarket(addr common.Address, backend bind.ContractBackend) (*Market, error) {
	if addr == (common.Address{}) {
		return nil, ErrZeroAddress
	}
	parsed, err := abi.JSON(strings.NewReader(MarketABI))
	if err != nil {
		return nil, err
	}
	return &Market{
		address:  addr,
		contract: bind.NewBoundContract(addr, parsed, backend, backend, backend),
	}, nil
}

func (m *Market) Address() common.Address { return m.address }

func (m *Market) NextOfferID(ctx context.Context) (*big.Int, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getNextOfferId")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (m *Market) Offer(ctx context.Context, offerID *big.Int) (OfferData, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{Context: ctx}, &out, "offers", offerID)
	if err != nil {
		return OfferData{}, err
	}
	return OfferData{
		OfferType:      *abi.ConvertType(out[0], new(uint8)).(*uint8),
		OfferedTokenID: *abi.ConvertType(out[1], new(*big.Int)).(**big.Int),
		OfferedDay:     *abi.ConvertType(out[2], new(uint8)).(*uint8),
		TargetTokenID:  *abi.ConvertType(out[3], new(*big.Int)).(**big.Int),
		TargetDay:      *abi.ConvertType(out[4], new(uint8)).(*uint8),
		EthAmount:      *abi.ConvertType(out[5], new(*big.Int)).(**big.Int),
		Offerer:        *abi.ConvertType(out[6], new(common.Address)).(*common.Address),
		IsActive:       *abi.ConvertType(out[7], new(bool)).(*bool),
	}, nil
}

// CreateOffer submits a new offer. For buy offers the escrowed amount is
// carried in opts.Value, not in the ethAmount argument.
func (m *Market) CreateOffer(opts *bind.TransactOpts, offerType uint8, offeredTokenID *big.Int, offeredDay uint8, targetTokenID *big.Int, targetDay uint8, ethAmount *big.Int) (*types.Transaction, error) {
	return m.contract.Transact(opts, "createOffer", offerType, offeredTokenID, offeredDay, targetTokenID, targetDay, ethAmount)
}

// AcceptSwapOffer accepts any active offer. Sale offers require the asking
// price in opts.Value.
func (m *Market) AcceptSwapOffer(opts *bind.TransactOpts, offerID *big.Int) (*types.Transaction, error) {
	return m.contract.Transact(opts, "acceptSwapOffer", offerID)
}

func (m *Market) CancelOffer(opts *bind.TransactOpts, offerID *big.Int) (*types.Transaction, error) {
	return m.contract.Transact(opts, "cancelOffer", offerID)
}
