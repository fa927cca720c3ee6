// Package governance exposes maintenance proposals, voting, and the registry
// role surface used by the admin endpoints.
package governance

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"smartstay/chain/contracts"
	"smartstay/chain/wallet"
	"smartstay/models"
	"smartstay/services/submit"
	syncsvc "smartstay/services/sync"
	"smartstay/utils"
)

// Service is the governance surface consumed by the HTTP handlers.
type Service interface {
	Proposals() []models.Proposal
	CreateProposal(ctx context.Context, req models.CreateProposalRequest) *submit.Receipt
	Vote(ctx context.Context, proposalID uint64, support bool) *submit.Receipt
	Execute(ctx context.Context, proposalID uint64) *submit.Receipt
	HasRole(ctx context.Context, role, account string) (bool, error)
	GrantRole(ctx context.Context, req models.GrantRoleRequest) *submit.Receipt
}

type DefaultService struct {
	provider  *contracts.Provider
	wallet    *wallet.Manager
	submitter *submit.Submitter
	store     *syncsvc.Store
}

func NewService(provider *contracts.Provider, wm *wallet.Manager, sub *submit.Submitter, store *syncsvc.Store) *DefaultService {
	return &DefaultService{provider: provider, wallet: wm, submitter: sub, store: store}
}

func (s *DefaultService) Proposals() []models.Proposal { return s.store.Proposals() }

func (s *DefaultService) govGuard(b *contracts.Bindings) error {
	if !s.wallet.Session().Connected() {
		return submit.Local("connect a wallet before submitting")
	}
	if !b.CanWrite() || b.Governance == nil {
		return submit.Local("governance is not available for writes")
	}
	return nil
}

func (s *DefaultService) CreateProposal(ctx context.Context, req models.CreateProposalRequest) *submit.Receipt {
	b := s.provider.Current()
	var cost *big.Int
	return s.submitter.Run(ctx, "governance.createProposal",
		func() error {
			if err := s.govGuard(b); err != nil {
				return err
			}
			if _, ok := s.store.PropertyByID(req.PropertyID); !ok {
				return submit.Local("unknown property %d", req.PropertyID)
			}
			if req.VotingPeriodS <= 0 {
				return submit.Local("voting period must be positive")
			}
			c, err := utils.ParseUnits(req.CostEstimate)
			if err != nil {
				return submit.Local("invalid cost estimate: %s", err)
			}
			cost = c
			return nil
		},
		func() (*types.Transaction, error) {
			return b.Governance.CreateProposal(b.Signer(ctx),
				new(big.Int).SetUint64(req.PropertyID),
				req.Description,
				cost,
				big.NewInt(req.VotingPeriodS))
		},
		syncsvc.Proposals)
}

func (s *DefaultService) Vote(ctx context.Context, proposalID uint64, support bool) *submit.Receipt {
	b := s.provider.Current()
	return s.submitter.Run(ctx, "governance.vote",
		func() error {
			if err := s.govGuard(b); err != nil {
				return err
			}
			for _, p := range s.store.Proposals() {
				if p.ProposalID != proposalID {
					continue
				}
				if p.Executed {
					return submit.Local("proposal %d is already executed", proposalID)
				}
				if p.HasVoted {
					return submit.Local("this account has already voted on proposal %d", proposalID)
				}
				return nil
			}
			return submit.Local("unknown proposal %d", proposalID)
		},
		func() (*types.Transaction, error) {
			return b.Governance.CastVote(b.Signer(ctx), new(big.Int).SetUint64(proposalID), support)
		},
		syncsvc.Proposals)
}

func (s *DefaultService) Execute(ctx context.Context, proposalID uint64) *submit.Receipt {
	b := s.provider.Current()
	return s.submitter.Run(ctx, "governance.execute",
		func() error { return s.govGuard(b) },
		func() (*types.Transaction, error) {
			return b.Governance.ExecuteProposal(b.Signer(ctx), new(big.Int).SetUint64(proposalID))
		},
		syncsvc.Proposals)
}

// HasRole is a live read against the registry's access control surface.
func (s *DefaultService) HasRole(ctx context.Context, role, account string) (bool, error) {
	b := s.provider.Current()
	if b.Registry == nil {
		return false, fmt.Errorf("registry unavailable")
	}
	id, ok := contracts.KnownRole(role)
	if !ok {
		return false, fmt.Errorf("unknown role %q", role)
	}
	if !common.IsHexAddress(account) {
		return false, fmt.Errorf("invalid address %q", account)
	}
	return b.Registry.HasRole(ctx, id, common.HexToAddress(account))
}

func (s *DefaultService) GrantRole(ctx context.Context, req models.GrantRoleRequest) *submit.Receipt {
	b := s.provider.Current()
	var roleID [32]byte
	return s.submitter.Run(ctx, "governance.grantRole",
		func() error {
			if !s.wallet.Session().Connected() {
				return submit.Local("connect a wallet before submitting")
			}
			if !b.CanWrite() || b.Registry == nil {
				return submit.Local("registry is not available for writes")
			}
			id, ok := contracts.KnownRole(req.Role)
			if !ok {
				return submit.Local("unknown role %q", req.Role)
			}
			if !common.IsHexAddress(req.Account) {
				return submit.Local("invalid address %q", req.Account)
			}
			roleID = id
			return nil
		},
		func() (*types.Transaction, error) {
			return b.Registry.GrantRole(b.Signer(ctx), roleID, common.HexToAddress(req.Account))
		})
}
