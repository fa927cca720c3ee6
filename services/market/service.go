// Package market exposes the swap/sale/buy marketplace and reservation
// listings backed by the vault.
package market

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	"smartstay/chain/contracts"
	"smartstay/chain/wallet"
	"smartstay/models"
	"smartstay/services/submit"
	syncsvc "smartstay/services/sync"
	"smartstay/utils"
)

// Service is the marketplace surface consumed by the HTTP handlers.
type Service interface {
	Offers(activeOnly bool) []models.Offer
	Slots() []models.Slot
	MyReservations() []models.Slot
	CreateOffer(ctx context.Context, req models.CreateOfferRequest) *submit.Receipt
	AcceptOffer(ctx context.Context, offerID uint64) *submit.Receipt
	CancelOffer(ctx context.Context, offerID uint64) *submit.Receipt
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

func (s *DefaultService) Offers(activeOnly bool) []models.Offer {
	all := s.store.Offers()
	if !activeOnly {
		return all
	}
	out := make([]models.Offer, 0, len(all))
	for _, o := range all {
		if o.Active {
			out = append(out, o)
		}
	}
	return out
}

func (s *DefaultService) Slots() []models.Slot { return s.store.Slots() }

// MyReservations lists the slots owned by the connected account. Disconnected
// sessions see an empty list, not an error.
func (s *DefaultService) MyReservations() []models.Slot {
	sess := s.wallet.Session()
	if !sess.Connected() {
		return nil
	}
	return s.store.MyReservations(sess.Account)
}

func (s *DefaultService) writeGuard(b *contracts.Bindings) error {
	if !s.wallet.Session().Connected() {
		return submit.Local("connect a wallet before submitting")
	}
	if !b.CanWrite() || b.Market == nil {
		return submit.Local("marketplace is not available for writes")
	}
	return nil
}

// CreateOffer submits a new offer. Swap and buy offers escrow their eth
// amount with the transaction; sale offers only record the asking price.
func (s *DefaultService) CreateOffer(ctx context.Context, req models.CreateOfferRequest) *submit.Receipt {
	b := s.provider.Current()
	var (
		offerType models.OfferType
		amount    *big.Int
	)
	return s.submitter.Run(ctx, "market.createOffer",
		func() error {
			if err := s.writeGuard(b); err != nil {
				return err
			}
			switch req.OfferType {
			case models.OfferSwap.String():
				offerType = models.OfferSwap
			case models.OfferSale.String():
				offerType = models.OfferSale
			case models.OfferBuy.String():
				offerType = models.OfferBuy
			default:
				return submit.Local("unknown offer type %q", req.OfferType)
			}
			if req.OfferedDay > 6 || req.TargetDay > 6 {
				return submit.Local("day must be in 0..6")
			}
			if offerType != models.OfferBuy && req.OfferedTokenID == 0 {
				return submit.Local("an offered slot is required")
			}
			v, err := utils.ParseUnits(req.EthAmount)
			if err != nil {
				return submit.Local("invalid amount: %s", err)
			}
			if v.Sign() <= 0 {
				return submit.Local("amount must be greater than zero")
			}
			amount = v
			if sess := s.wallet.Session(); offerType != models.OfferBuy && req.OfferedTokenID != 0 {
				owner, known := s.store.SlotOwner(req.OfferedTokenID, req.OfferedDay)
				if known && owner != sess.Account {
					return submit.Local("you do not own the offered slot")
				}
			}
			return nil
		},
		func() (*types.Transaction, error) {
			opts := b.Signer(ctx)
			if offerType != models.OfferSale {
				opts = b.PayableSigner(ctx, amount)
			}
			return b.Market.CreateOffer(opts,
				uint8(offerType),
				new(big.Int).SetUint64(req.OfferedTokenID), req.OfferedDay,
				new(big.Int).SetUint64(req.TargetTokenID), req.TargetDay,
				amount)
		},
		syncsvc.Offers, syncsvc.Slots)
}

// AcceptOffer accepts an active offer. The asking price rides along for sale
// offers. Feasibility flags from the snapshot are advisory only; the contract
// makes the final call and a stale accept comes back as a revert.
func (s *DefaultService) AcceptOffer(ctx context.Context, offerID uint64) *submit.Receipt {
	b := s.provider.Current()
	var value *big.Int
	return s.submitter.Run(ctx, "market.acceptOffer",
		func() error {
			if err := s.writeGuard(b); err != nil {
				return err
			}
			offer, ok := s.findOffer(offerID)
			if !ok {
				return submit.Local("unknown offer %d", offerID)
			}
			if !offer.Active {
				return submit.Local("offer %d is no longer active", offerID)
			}
			if offer.Offerer == s.wallet.Session().Account {
				return submit.Local("cannot accept your own offer")
			}
			if offer.OfferType == models.OfferSale.String() {
				value = offer.EthAmountWei
				if value == nil {
					// Cache-warmed offers carry only the display amount.
					v, err := utils.ParseUnits(offer.EthAmount)
					if err != nil {
						return submit.Local("offer price unavailable, retry after the next sync")
					}
					value = v
				}
			}
			return nil
		},
		func() (*types.Transaction, error) {
			opts := b.Signer(ctx)
			if value != nil {
				opts = b.PayableSigner(ctx, value)
			}
			return b.Market.AcceptSwapOffer(opts, new(big.Int).SetUint64(offerID))
		},
		syncsvc.Offers, syncsvc.Slots)
}

func (s *DefaultService) CancelOffer(ctx context.Context, offerID uint64) *submit.Receipt {
	b := s.provider.Current()
	return s.submitter.Run(ctx, "market.cancelOffer",
		func() error {
			if err := s.writeGuard(b); err != nil {
				return err
			}
			offer, ok := s.findOffer(offerID)
			if !ok {
				return submit.Local("unknown offer %d", offerID)
			}
			if offer.Offerer != s.wallet.Session().Account {
				return submit.Local("only the offerer can cancel")
			}
			return nil
		},
		func() (*types.Transaction, error) {
			return b.Market.CancelOffer(b.Signer(ctx), new(big.Int).SetUint64(offerID))
		},
		syncsvc.Offers)
}

func (s *DefaultService) findOffer(id uint64) (models.Offer, bool) {
	for _, o := range s.store.Offers() {
		if o.OfferID == id {
			return o, true
		}
	}
	return models.Offer{}, false
}
