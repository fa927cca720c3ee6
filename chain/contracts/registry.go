package contracts

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrZeroAddress is returned when a binding is constructed against an
// unconfigured contract address.
var ErrZeroAddress = errors.New("contract address is zero")

// PropertyData mirrors the registry's property struct, fields in declaration
// order as the flattened public getter returns them.
type PropertyData struct {
	Name         string
	Location     string
	PricePerWeek *big.Int
	Amenities    string
	Description  string
	Verified     bool
	Active       bool
}

// Registry wraps the property/token registry contract.
type Registry struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewRegistry binds the registry at addr against the given backend.
func NewRegistry(addr common.Address, backend bind.ContractBackend) (*Registry, error) {
	if addr == (common.Address{}) {
		return nil, ErrZeroAddress
	}
	parsed, err := abi.JSON(strings.NewReader(RegistryABI))
	if err != nil {
		return nil, err
	}
	return &Registry{
		address:  addr,
		contract: bind.NewBoundContract(addr, parsed, backend, backend, backend),
	}, nil
}

// Address returns the bound contract address.
func (r *Registry) Address() common.Address { return r.address }

func (r *Registry) NextPropertyID(ctx context.Context) (*big.Int, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getNextPropertyId")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (r *Registry) Property(ctx context.Context, propertyID *big.Int) (PropertyData, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "properties", propertyID)
	if err != nil {
		return PropertyData{}, err
	}
	return PropertyData{
		Name:         *abi.ConvertType(out[0], new(string)).(*string),
		Location:     *abi.ConvertType(out[1], new(string)).(*string),
		PricePerWeek: *abi.ConvertType(out[2], new(*big.Int)).(**big.Int),
		Amenities:    *abi.ConvertType(out[3], new(string)).(*string),
		Description:  *abi.ConvertType(out[4], new(string)).(*string),
		Verified:     *abi.ConvertType(out[5], new(bool)).(*bool),
		Active:       *abi.ConvertType(out[6], new(bool)).(*bool),
	}, nil
}

func (r *Registry) PropertyOwner(ctx context.Context, propertyID *big.Int) (common.Address, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "propertyOwners", propertyID)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (r *Registry) NextTokenID(ctx context.Context) (*big.Int, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getNextTokenId")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (r *Registry) TokenPropertyID(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "tokenToPropertyId", tokenID)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (r *Registry) TokenYear(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "tokenToYear", tokenID)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (r *Registry) TokenWeek(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "tokenToWeekNumber", tokenID)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (r *Registry) UnitsOwned(ctx context.Context, owner common.Address, propertyID *big.Int) (*big.Int, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "unitsOwned", owner, propertyID)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (r *Registry) HasRole(ctx context.Context, role [32]byte, account common.Address) (bool, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "hasRole", role, account)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (r *Registry) CreateProperty(opts *bind.TransactOpts, name, location string, pricePerWeek *big.Int, amenities, description string) (*types.Transaction, error) {
	return r.contract.Transact(opts, "createProperty", name, location, pricePerWeek, amenities, description)
}

func (r *Registry) UpdateProperty(opts *bind.TransactOpts, propertyID *big.Int, name, location string, pricePerWeek *big.Int, amenities, description string) (*types.Transaction, error) {
	return r.contract.Transact(opts, "updateProperty", propertyID, name, location, pricePerWeek, amenities, description)
}

func (r *Registry) VerifyProperty(opts *bind.TransactOpts, propertyID *big.Int) (*types.Transaction, error) {
	return r.contract.Transact(opts, "verifyProperty", propertyID)
}

func (r *Registry) MintWeek(opts *bind.TransactOpts, propertyID, year, weekNumber *big.Int, vault common.Address) (*types.Transaction, error) {
	return r.contract.Transact(opts, "mintWeek", propertyID, year, weekNumber, vault)
}

func (r *Registry) MintInitialOwnership(opts *bind.TransactOpts, propertyID *big.Int, owners []common.Address, amounts []*big.Int) (*types.Transaction, error) {
	return r.contract.Transact(opts, "mintInitialOwnership", propertyID, owners, amounts)
}

func (r *Registry) GrantRole(opts *bind.TransactOpts, role [32]byte, account common.Address) (*types.Transaction, error) {
	return r.contract.Transact(opts, "grantRole", role, account)
}
