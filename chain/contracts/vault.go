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

// Vault wraps the reservation vault contract that tracks per-day slot
// ownership for each week token.
type Vault struct {
	address  common.Address
	contract *bind.BoundContract
}

func NewVault(addr common.Address, backend bind.ContractBackend) (*Vault, error) {
	if addr == (common.Address{}) {
		return nil, ErrZeroAddress
	}
	parsed, err := abi.JSON(strings.NewReader(VaultABI))
	if err != nil {
		return nil, err
	}
	return &Vault{
		address:  addr,
		contract: bind.NewBoundContract(addr, parsed, backend, backend, backend),
	}, nil
}

func (v *Vault) Address() common.Address { return v.address }

// SlotOwner returns the current owner of the (tokenID, day) slot. The zero
// address means the slot has no owner.
func (v *Vault) SlotOwner(ctx context.Context, tokenID *big.Int, day uint8) (common.Address, error) {
	var out []interface{}
	err := v.contract.Call(&bind.CallOpts{Context: ctx}, &out, "slotOwnership", tokenID, day)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (v *Vault) TransferSlot(opts *bind.TransactOpts, tokenID *big.Int, day uint8, to common.Address) (*types.Transaction, error) {
	return v.contract.Transact(opts, "transferSlot", tokenID, day, to)
}

func (v *Vault) SwapSlots(opts *bind.TransactOpts, tokenID1 *big.Int, day1 uint8, tokenID2 *big.Int, day2 uint8) (*types.Transaction, error) {
	return v.contract.Transact(opts, "swapSlots", tokenID1, day1, tokenID2, day2)
}
