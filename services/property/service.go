// Package property exposes registry-backed property listings and the write
// operations property managers perform against them.
package property

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

// Service is the property surface consumed by the HTTP handlers.
type Service interface {
	List(verifiedOnly bool) []models.Property
	Get(id uint64) (models.Property, bool)
	UnitsOwned(ctx context.Context, propertyID uint64, owner string) (string, error)
	Create(ctx context.Context, req models.CreatePropertyRequest) *submit.Receipt
	Update(ctx context.Context, id uint64, req models.UpdatePropertyRequest) *submit.Receipt
	Verify(ctx context.Context, id uint64) *submit.Receipt
	MintWeek(ctx context.Context, id uint64, req models.MintWeekRequest) *submit.Receipt
	MintOwnership(ctx context.Context, id uint64, req models.MintOwnershipRequest) *submit.Receipt
}

// DefaultService reads from the sync store and writes through the submitter.
type DefaultService struct {
	provider  *contracts.Provider
	wallet    *wallet.Manager
	submitter *submit.Submitter
	store     *syncsvc.Store
	vaultAddr common.Address
}

func NewService(provider *contracts.Provider, wm *wallet.Manager, sub *submit.Submitter, store *syncsvc.Store, vaultAddr common.Address) *DefaultService {
	return &DefaultService{provider: provider, wallet: wm, submitter: sub, store: store, vaultAddr: vaultAddr}
}

func (s *DefaultService) List(verifiedOnly bool) []models.Property {
	all := s.store.Properties()
	if !verifiedOnly {
		return all
	}
	out := make([]models.Property, 0, len(all))
	for _, p := range all {
		if p.Verified && p.Active {
			out = append(out, p)
		}
	}
	return out
}

func (s *DefaultService) Get(id uint64) (models.Property, bool) {
	return s.store.PropertyByID(id)
}

// UnitsOwned is a live point read; fractional unit balances are not part of
// any synced projection.
func (s *DefaultService) UnitsOwned(ctx context.Context, propertyID uint64, owner string) (string, error) {
	b := s.provider.Current()
	if b.Registry == nil {
		return "", fmt.Errorf("registry unavailable")
	}
	units, err := b.Registry.UnitsOwned(ctx, common.HexToAddress(owner), new(big.Int).SetUint64(propertyID))
	if err != nil {
		return "", err
	}
	return units.String(), nil
}

// writeGuard is the shared local validation for every registry write: a
// connected session and a write-capable registry binding.
func (s *DefaultService) writeGuard(b *contracts.Bindings) error {
	if !s.wallet.Session().Connected() {
		return submit.Local("connect a wallet before submitting")
	}
	if !b.CanWrite() || b.Registry == nil {
		return submit.Local("registry is not available for writes")
	}
	return nil
}

func (s *DefaultService) Create(ctx context.Context, req models.CreatePropertyRequest) *submit.Receipt {
	b := s.provider.Current()
	var price *big.Int
	return s.submitter.Run(ctx, "property.create",
		func() error {
			if err := s.writeGuard(b); err != nil {
				return err
			}
			p, err := utils.ParseUnits(req.PricePerWeek)
			if err != nil {
				return submit.Local("invalid price: %s", err)
			}
			price = p
			return nil
		},
		func() (*types.Transaction, error) {
			return b.Registry.CreateProperty(b.Signer(ctx), req.Name, req.Location, price, req.Amenities, req.Description)
		},
		syncsvc.Properties)
}

func (s *DefaultService) Update(ctx context.Context, id uint64, req models.UpdatePropertyRequest) *submit.Receipt {
	b := s.provider.Current()
	var price *big.Int
	return s.submitter.Run(ctx, "property.update",
		func() error {
			if err := s.writeGuard(b); err != nil {
				return err
			}
			if _, ok := s.store.PropertyByID(id); !ok {
				return submit.Local("unknown property %d", id)
			}
			p, err := utils.ParseUnits(req.PricePerWeek)
			if err != nil {
				return submit.Local("invalid price: %s", err)
			}
			price = p
			return nil
		},
		func() (*types.Transaction, error) {
			return b.Registry.UpdateProperty(b.Signer(ctx), new(big.Int).SetUint64(id), req.Name, req.Location, price, req.Amenities, req.Description)
		},
		syncsvc.Properties)
}

func (s *DefaultService) Verify(ctx context.Context, id uint64) *submit.Receipt {
	b := s.provider.Current()
	return s.submitter.Run(ctx, "property.verify",
		func() error { return s.writeGuard(b) },
		func() (*types.Transaction, error) {
			return b.Registry.VerifyProperty(b.Signer(ctx), new(big.Int).SetUint64(id))
		},
		syncsvc.Properties)
}

func (s *DefaultService) MintWeek(ctx context.Context, id uint64, req models.MintWeekRequest) *submit.Receipt {
	b := s.provider.Current()
	return s.submitter.Run(ctx, "property.mintWeek",
		func() error {
			if err := s.writeGuard(b); err != nil {
				return err
			}
			if req.Week < 1 || req.Week > 53 {
				return submit.Local("week must be in 1..53")
			}
			if req.Year < 2000 {
				return submit.Local("year %d is not plausible", req.Year)
			}
			if s.vaultAddr == (common.Address{}) {
				return submit.Local("vault address is not configured")
			}
			return nil
		},
		func() (*types.Transaction, error) {
			return b.Registry.MintWeek(b.Signer(ctx),
				new(big.Int).SetUint64(id),
				big.NewInt(int64(req.Year)),
				big.NewInt(int64(req.Week)),
				s.vaultAddr)
		},
		syncsvc.Properties, syncsvc.Slots)
}

func (s *DefaultService) MintOwnership(ctx context.Context, id uint64, req models.MintOwnershipRequest) *submit.Receipt {
	b := s.provider.Current()
	var owners []common.Address
	var amounts []*big.Int
	return s.submitter.Run(ctx, "property.mintOwnership",
		func() error {
			if err := s.writeGuard(b); err != nil {
				return err
			}
			if len(req.Owners) == 0 || len(req.Owners) != len(req.Amounts) {
				return submit.Local("owners and amounts must be non-empty and equal length")
			}
			for i, raw := range req.Owners {
				if !common.IsHexAddress(raw) {
					return submit.Local("owner %q is not a valid address", raw)
				}
				amount, ok := new(big.Int).SetString(req.Amounts[i], 10)
				if !ok || amount.Sign() <= 0 {
					return submit.Local("amount %q must be a positive integer", req.Amounts[i])
				}
				owners = append(owners, common.HexToAddress(raw))
				amounts = append(amounts, amount)
			}
			return nil
		},
		func() (*types.Transaction, error) {
			return b.Registry.MintInitialOwnership(b.Signer(ctx), new(big.Int).SetUint64(id), owners, amounts)
		},
		syncsvc.Properties)
}
