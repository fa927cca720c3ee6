package sync

import (
	"context"
	"errors"
	"math/big"
	"strings"
	gosync "sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"smartstay/chain/contracts"
	"smartstay/models"
	"smartstay/utils"
)

// Reported when a projection is synced while its contract binding is absent.
var ErrSourceUnavailable = errors.New("contract binding unavailable")

const daysPerToken = 7

// Synchronizer rebuilds the store's projections from the bound contracts.
// Sources are swapped with Rebind whenever the bindings generation changes;
// a nil source empties the matching projections on the next pass.
type Synchronizer struct {
	mu         gosync.RWMutex
	registry   contracts.RegistryReader
	vault      contracts.VaultReader
	market     contracts.MarketReader
	governance contracts.GovernanceReader
	viewer     string

	store  *Store
	cache  *SnapshotCache
	logger *zap.Logger
}

func NewSynchronizer(store *Store, cache *SnapshotCache, logger *zap.Logger) *Synchronizer {
	return &Synchronizer{store: store, cache: cache, logger: logger}
}

// Rebind swaps the chain sources. Typed nils from an empty bindings
// generation are normalized so the nil checks below stay meaningful.
func (s *Synchronizer) Rebind(b *contracts.Bindings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry, s.vault, s.market, s.governance = nil, nil, nil, nil
	if b == nil {
		return
	}
	if b.Registry != nil {
		s.registry = b.Registry
	}
	if b.Vault != nil {
		s.vault = b.Vault
	}
	if b.Market != nil {
		s.market = b.Market
	}
	if b.Governance != nil {
		s.governance = b.Governance
	}
}

// RebindReaders swaps the sources directly. Used by tests and by callers
// that enumerate through something other than the live bindings.
func (s *Synchronizer) RebindReaders(reg contracts.RegistryReader, vault contracts.VaultReader, market contracts.MarketReader, gov contracts.GovernanceReader) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry, s.vault, s.market, s.governance = reg, vault, market, gov
}

// SetViewer sets the account whose perspective per-viewer fields (hasVoted,
// accept eligibility) are computed from. Empty clears it.
func (s *Synchronizer) SetViewer(account string) {
	s.mu.Lock()
	s.viewer = strings.ToLower(account)
	s.mu.Unlock()
}

func (s *Synchronizer) sources() (contracts.RegistryReader, contracts.VaultReader, contracts.MarketReader, contracts.GovernanceReader, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry, s.vault, s.market, s.governance, s.viewer
}

// SyncAll rebuilds every projection. Failures are joined, not short
// circuited, so one bad contract cannot starve the others.
func (s *Synchronizer) SyncAll(ctx context.Context) error {
	started := time.Now()
	err := errors.Join(
		s.SyncProperties(ctx),
		s.SyncSlots(ctx),
		s.SyncOffers(ctx),
		s.SyncProposals(ctx),
	)
	if err == nil {
		s.logger.Info("chain sync complete", zap.Duration("took", time.Since(started)))
	}
	return err
}

// Refresh rebuilds only the named collections, in AllCollections order.
func (s *Synchronizer) Refresh(ctx context.Context, cols ...Collection) error {
	want := make(map[Collection]bool, len(cols))
	for _, c := range cols {
		want[c] = true
	}
	var errs []error
	for _, c := range AllCollections {
		if !want[c] {
			continue
		}
		var err error
		switch c {
		case Properties:
			err = s.SyncProperties(ctx)
		case Slots:
			err = s.SyncSlots(ctx)
		case Offers:
			err = s.SyncOffers(ctx)
		case Proposals:
			err = s.SyncProposals(ctx)
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SyncProperties enumerates registry ids [1, nextPropertyId). A counter
// failure or an unavailable registry empties the projection and reports the
// error; a single bad entry is skipped and logged.
func (s *Synchronizer) SyncProperties(ctx context.Context) error {
	reg, _, _, _, _ := s.sources()
	if reg == nil {
		s.replaceProperties(ctx, nil)
		return ErrSourceUnavailable
	}
	next, err := reg.NextPropertyID(ctx)
	if err != nil {
		s.replaceProperties(ctx, nil)
		return err
	}
	list := make([]models.Property, 0)
	for id := uint64(1); id < bigToUint64(next); id++ {
		bid := new(big.Int).SetUint64(id)
		data, err := reg.Property(ctx, bid)
		if err != nil {
			s.logger.Warn("skipping property", zap.Uint64("id", id), zap.Error(err))
			continue
		}
		owner, err := reg.PropertyOwner(ctx, bid)
		if err != nil {
			s.logger.Warn("skipping property", zap.Uint64("id", id), zap.Error(err))
			continue
		}
		list = append(list, models.Property{
			ID:           id,
			Name:         data.Name,
			Location:     data.Location,
			Description:  data.Description,
			Amenities:    data.Amenities,
			PricePerWeek: utils.FormatUnits(data.PricePerWeek),
			PriceWei:     data.PricePerWeek,
			Verified:     data.Verified,
			Active:       data.Active,
			Owner:        lowerHex(owner),
		})
	}
	s.replaceProperties(ctx, list)
	return nil
}

// SyncSlots enumerates week tokens [1, nextTokenId) and the 7 day slots of
// each. Slots with no owner are kept with an empty owner string.
func (s *Synchronizer) SyncSlots(ctx context.Context) error {
	reg, vault, _, _, _ := s.sources()
	if reg == nil || vault == nil {
		s.replaceSlots(ctx, nil)
		return ErrSourceUnavailable
	}
	next, err := reg.NextTokenID(ctx)
	if err != nil {
		s.replaceSlots(ctx, nil)
		return err
	}
	names := s.propertyNames()
	list := make([]models.Slot, 0)
	for token := uint64(1); token < bigToUint64(next); token++ {
		bid := new(big.Int).SetUint64(token)
		propertyID, err := reg.TokenPropertyID(ctx, bid)
		if err != nil {
			s.logger.Warn("skipping token", zap.Uint64("tokenId", token), zap.Error(err))
			continue
		}
		year, err := reg.TokenYear(ctx, bid)
		if err != nil {
			s.logger.Warn("skipping token", zap.Uint64("tokenId", token), zap.Error(err))
			continue
		}
		week, err := reg.TokenWeek(ctx, bid)
		if err != nil {
			s.logger.Warn("skipping token", zap.Uint64("tokenId", token), zap.Error(err))
			continue
		}
		pid := bigToUint64(propertyID)
		for day := uint8(0); day < daysPerToken; day++ {
			owner, err := vault.SlotOwner(ctx, bid, day)
			if err != nil {
				s.logger.Warn("skipping slot",
					zap.Uint64("tokenId", token), zap.Uint8("day", day), zap.Error(err))
				continue
			}
			list = append(list, models.Slot{
				TokenID:      token,
				Day:          day,
				PropertyID:   pid,
				PropertyName: names[pid],
				Year:         bigToUint64(year),
				Week:         bigToUint64(week),
				Owner:        lowerHex(owner),
			})
		}
	}
	s.replaceSlots(ctx, list)
	return nil
}

// SyncOffers enumerates offer ids [1, nextOfferId). Entries the contract has
// deleted decode to a zero offerer and are dropped. Feasibility flags are
// recomputed from the freshest slot snapshot.
func (s *Synchronizer) SyncOffers(ctx context.Context) error {
	_, _, market, _, viewer := s.sources()
	if market == nil {
		s.replaceOffers(ctx, nil)
		return ErrSourceUnavailable
	}
	next, err := market.NextOfferID(ctx)
	if err != nil {
		s.replaceOffers(ctx, nil)
		return err
	}
	list := make([]models.Offer, 0)
	for id := uint64(1); id < bigToUint64(next); id++ {
		data, err := market.Offer(ctx, new(big.Int).SetUint64(id))
		if err != nil {
			s.logger.Warn("skipping offer", zap.Uint64("offerId", id), zap.Error(err))
			continue
		}
		if data.Offerer == (common.Address{}) {
			continue
		}
		offer := s.projectOffer(id, data)
		s.annotateFeasibility(&offer, viewer)
		list = append(list, offer)
	}
	s.replaceOffers(ctx, list)
	return nil
}

// SyncProposals enumerates proposal ids [1, counter). HasVoted is resolved
// for the current viewer only; a failed lookup defaults to false.
func (s *Synchronizer) SyncProposals(ctx context.Context) error {
	_, _, _, gov, viewer := s.sources()
	if gov == nil {
		s.replaceProposals(ctx, nil)
		return ErrSourceUnavailable
	}
	next, err := gov.ProposalCounter(ctx)
	if err != nil {
		s.replaceProposals(ctx, nil)
		return err
	}
	list := make([]models.Proposal, 0)
	for id := uint64(1); id < bigToUint64(next); id++ {
		bid := new(big.Int).SetUint64(id)
		data, err := gov.Proposal(ctx, bid)
		if err != nil {
			s.logger.Warn("skipping proposal", zap.Uint64("proposalId", id), zap.Error(err))
			continue
		}
		voted := false
		if viewer != "" {
			voted, err = gov.HasVoted(ctx, bid, common.HexToAddress(viewer))
			if err != nil {
				s.logger.Warn("vote lookup failed", zap.Uint64("proposalId", id), zap.Error(err))
				voted = false
			}
		}
		list = append(list, models.Proposal{
			ProposalID:    id,
			PropertyID:    bigToUint64(data.PropertyID),
			Description:   data.Description,
			CostEstimate:  utils.FormatUnits(data.CostEstimate),
			VotingEndTime: time.Unix(int64(bigToUint64(data.VotingEndTime)), 0).UTC(),
			VotesFor:      data.VotesFor.String(),
			VotesAgainst:  data.VotesAgainst.String(),
			Executed:      data.Executed,
			Passed:        data.Passed,
			HasVoted:      voted,
		})
	}
	s.replaceProposals(ctx, list)
	return nil
}

func (s *Synchronizer) projectOffer(id uint64, data contracts.OfferData) models.Offer {
	names := s.propertyNames()
	tokenProp := s.tokenProperties()
	offered := models.SlotRef{
		TokenID: bigToUint64(data.OfferedTokenID),
		Day:     data.OfferedDay,
	}
	offered.PropertyID = tokenProp[offered.TokenID]
	offered.PropertyName = names[offered.PropertyID]

	target := models.SlotRef{
		TokenID: bigToUint64(data.TargetTokenID),
		Day:     data.TargetDay,
	}
	target.PropertyID = tokenProp[target.TokenID]
	target.PropertyName = names[target.PropertyID]

	return models.Offer{
		OfferID:      id,
		OfferType:    models.OfferType(data.OfferType).String(),
		Offered:      offered,
		Target:       target,
		TargetAny:    target.TokenID == 0,
		EthAmount:    utils.FormatUnits(data.EthAmount),
		EthAmountWei: data.EthAmount,
		Offerer:      lowerHex(data.Offerer),
		Active:       data.IsActive,
	}
}

func (s *Synchronizer) propertyNames() map[uint64]string {
	names := make(map[uint64]string)
	for _, p := range s.store.Properties() {
		names[p.ID] = p.Name
	}
	return names
}

func (s *Synchronizer) tokenProperties() map[uint64]uint64 {
	out := make(map[uint64]uint64)
	for _, sl := range s.store.Slots() {
		out[sl.TokenID] = sl.PropertyID
	}
	return out
}

func (s *Synchronizer) replaceProperties(ctx context.Context, list []models.Property) {
	s.store.ReplaceProperties(list)
	s.cache.Put(ctx, Properties, list)
}

func (s *Synchronizer) replaceSlots(ctx context.Context, list []models.Slot) {
	s.store.ReplaceSlots(list)
	s.cache.Put(ctx, Slots, list)
}

func (s *Synchronizer) replaceOffers(ctx context.Context, list []models.Offer) {
	s.store.ReplaceOffers(list)
	s.cache.Put(ctx, Offers, list)
}

func (s *Synchronizer) replaceProposals(ctx context.Context, list []models.Proposal) {
	s.store.ReplaceProposals(list)
	s.cache.Put(ctx, Proposals, list)
}

func bigToUint64(v *big.Int) uint64 {
	if v == nil || !v.IsUint64() {
		return 0
	}
	return v.Uint64()
}

func lowerHex(addr common.Address) string {
	if addr == (common.Address{}) {
		return ""
	}
	return strings.ToLower(addr.Hex())
}
