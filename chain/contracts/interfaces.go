package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Read interfaces over the bound contracts. Consumers that only enumerate
// chain state depend on these rather than the concrete bindings.

type RegistryReader interface {
	NextPropertyID(ctx context.Context) (*big.Int, error)
	Property(ctx context.Context, propertyID *big.Int) (PropertyData, error)
	PropertyOwner(ctx context.Context, propertyID *big.Int) (common.Address, error)
	NextTokenID(ctx context.Context) (*big.Int, error)
	TokenPropertyID(ctx context.Context, tokenID *big.Int) (*big.Int, error)
	TokenYear(ctx context.Context, tokenID *big.Int) (*big.Int, error)
	TokenWeek(ctx context.Context, tokenID *big.Int) (*big.Int, error)
	UnitsOwned(ctx context.Context, owner common.Address, propertyID *big.Int) (*big.Int, error)
	HasRole(ctx context.Context, role [32]byte, account common.Address) (bool, error)
}

type VaultReader interface {
	SlotOwner(ctx context.Context, tokenID *big.Int, day uint8) (common.Address, error)
}

type MarketReader interface {
	NextOfferID(ctx context.Context) (*big.Int, error)
	Offer(ctx context.Context, offerID *big.Int) (OfferData, error)
}

type GovernanceReader interface {
	ProposalCounter(ctx context.Context) (*big.Int, error)
	Proposal(ctx context.Context, proposalID *big.Int) (ProposalData, error)
	HasVoted(ctx context.Context, proposalID *big.Int, voter common.Address) (bool, error)
}

// Write interfaces. Every method takes signer-derived TransactOpts and
// returns the pending transaction for confirmation tracking.

type RegistryWriter interface {
	CreateProperty(opts *bind.TransactOpts, name, location string, pricePerWeek *big.Int, amenities, description string) (*types.Transaction, error)
	UpdateProperty(opts *bind.TransactOpts, propertyID *big.Int, name, location string, pricePerWeek *big.Int, amenities, description string) (*types.Transaction, error)
	VerifyProperty(opts *bind.TransactOpts, propertyID *big.Int) (*types.Transaction, error)
	MintWeek(opts *bind.TransactOpts, propertyID, year, weekNumber *big.Int, vault common.Address) (*types.Transaction, error)
	MintInitialOwnership(opts *bind.TransactOpts, propertyID *big.Int, owners []common.Address, amounts []*big.Int) (*types.Transaction, error)
	GrantRole(opts *bind.TransactOpts, role [32]byte, account common.Address) (*types.Transaction, error)
}

type MarketWriter interface {
	CreateOffer(opts *bind.TransactOpts, offerType uint8, offeredTokenID *big.Int, offeredDay uint8, targetTokenID *big.Int, targetDay uint8, ethAmount *big.Int) (*types.Transaction, error)
	AcceptSwapOffer(opts *bind.TransactOpts, offerID *big.Int) (*types.Transaction, error)
	CancelOffer(opts *bind.TransactOpts, offerID *big.Int) (*types.Transaction, error)
}

type GovernanceWriter interface {
	CreateProposal(opts *bind.TransactOpts, propertyID *big.Int, description string, costEstimate, votingPeriod *big.Int) (*types.Transaction, error)
	CastVote(opts *bind.TransactOpts, proposalID *big.Int, support bool) (*types.Transaction, error)
	ExecuteProposal(opts *bind.TransactOpts, proposalID *big.Int) (*types.Transaction, error)
}
