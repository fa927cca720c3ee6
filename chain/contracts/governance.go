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

// ProposalData mirrors the governance contract's proposal tuple. Times and
// vote weights stay as raw chain values here; formatting happens upstream.
type ProposalData struct {
	PropertyID    *big.Int
	Description   string
	CostEstimate  *big.Int
	VotingEndTime *big.Int
	VotesFor      *big.Int
	VotesAgainst  *big.Int
	Executed      bool
	Passed        bool
}

// Governance wraps the maintenance proposal and voting contract.
type Governance struct {
	address  common.Address
	contract *bind.BoundContract
}

func NewGovernance(addr common.Address, backend bind.ContractBackend) (*Governance, error) {
	if addr == (common.Address{}) {
		return nil, ErrZeroAddress
	}
	parsed, err := abi.JSON(strings.NewReader(GovernanceABI))
	if err != nil {
		return nil, err
	}
	return &Governance{
		address:  addr,
		contract: bind.NewBoundContract(addr, parsed, backend, backend, backend),
	}, nil
}

func (g *Governance) Address() common.Address { return g.address }

func (g *Governance) ProposalCounter(ctx context.Context) (*big.Int, error) {
	var out []interface{}
	err := g.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getProposalIdCounter")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (g *Governance) Proposal(ctx context.Context, proposalID *big.Int) (ProposalData, error) {
	var out []interface{}
	err := g.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getProposal", proposalID)
	if err != nil {
		return ProposalData{}, err
	}
	return ProposalData{
		PropertyID:    *abi.ConvertType(out[0], new(*big.Int)).(**big.Int),
		Description:   *abi.ConvertType(out[1], new(string)).(*string),
		CostEstimate:  *abi.ConvertType(out[2], new(*big.Int)).(**big.Int),
		VotingEndTime: *abi.ConvertType(out[3], new(*big.Int)).(**big.Int),
		VotesFor:      *abi.ConvertType(out[4], new(*big.Int)).(**big.Int),
		VotesAgainst:  *abi.ConvertType(out[5], new(*big.Int)).(**big.Int),
		Executed:      *abi.ConvertType(out[6], new(bool)).(*bool),
		Passed:        *abi.ConvertType(out[7], new(bool)).(*bool),
	}, nil
}

func (g *Governance) HasVoted(ctx context.Context, proposalID *big.Int, voter common.Address) (bool, error) {
	var out []interface{}
	err := g.contract.Call(&bind.CallOpts{Context: ctx}, &out, "hasVoted", proposalID, voter)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (g *Governance) CreateProposal(opts *bind.TransactOpts, propertyID *big.Int, description string, costEstimate, votingPeriod *big.Int) (*types.Transaction, error) {
	return g.contract.Transact(opts, "createProposal", propertyID, description, costEstimate, votingPeriod)
}

func (g *Governance) CastVote(opts *bind.TransactOpts, proposalID *big.Int, support bool) (*types.Transaction, error) {
	return g.contract.Transact(opts, "castVote", proposalID, support)
}

func (g *Governance) ExecuteProposal(opts *bind.TransactOpts, proposalID *big.Int) (*types.Transaction, error) {
	return g.contract.Transact(opts, "executeProposal", proposalID)
}
