package sync

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"smartstay/chain/contracts"
	"smartstay/models"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000000A1")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000B2")
)

type fakeRegistry struct {
	nextProperty uint64
	nextToken    uint64
	properties   map[uint64]contracts.PropertyData
	owners       map[uint64]common.Address
	tokenProps   map[uint64]uint64
	counterErr   error
	badProperty  uint64
}

func (f *fakeRegistry) NextPropertyID(ctx context.Context) (*big.Int, error) {
	if f.counterErr != nil {
		return nil, f.counterErr
	}
	return new(big.Int).SetUint64(f.nextProperty), nil
}

func (f *fakeRegistry) Property(ctx context.Context, id *big.Int) (contracts.PropertyData, error) {
	if f.badProperty != 0 && id.Uint64() == f.badProperty {
		return contracts.PropertyData{}, errors.New("decode failure")
	}
	p, ok := f.properties[id.Uint64()]
	if !ok {
		return contracts.PropertyData{}, errors.New("no such property")
	}
	return p, nil
}

func (f *fakeRegistry) PropertyOwner(ctx context.Context, id *big.Int) (common.Address, error) {
	return f.owners[id.Uint64()], nil
}

func (f *fakeRegistry) NextTokenID(ctx context.Context) (*big.Int, error) {
	return new(big.Int).SetUint64(f.nextToken), nil
}

func (f *fakeRegistry) TokenPropertyID(ctx context.Context, id *big.Int) (*big.Int, error) {
	return new(big.Int).SetUint64(f.tokenProps[id.Uint64()]), nil
}

func (f *fakeRegistry) TokenYear(ctx context.Context, id *big.Int) (*big.Int, error) {
	return big.NewInt(2026), nil
}

func (f *fakeRegistry) TokenWeek(ctx context.Context, id *big.Int) (*big.Int, error) {
	return big.NewInt(12), nil
}

func (f *fakeRegistry) UnitsOwned(ctx context.Context, owner common.Address, id *big.Int) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (f *fakeRegistry) HasRole(ctx context.Context, role [32]byte, account common.Address) (bool, error) {
	return false, nil
}

type fakeVault struct {
	owners map[[2]uint64]common.Address
}

func (f *fakeVault) SlotOwner(ctx context.Context, tokenID *big.Int, day uint8) (common.Address, error) {
	return f.owners[[2]uint64{tokenID.Uint64(), uint64(day)}], nil
}

type fakeMarket struct {
	next   uint64
	offers map[uint64]contracts.OfferData
}

func (f *fakeMarket) NextOfferID(ctx context.Context) (*big.Int, error) {
	return new(big.Int).SetUint64(f.next), nil
}

func (f *fakeMarket) Offer(ctx context.Context, id *big.Int) (contracts.OfferData, error) {
	o, ok := f.offers[id.Uint64()]
	if !ok {
		return contracts.OfferData{}, errors.New("no such offer")
	}
	return o, nil
}

type fakeGovernance struct {
	next      uint64
	proposals map[uint64]contracts.ProposalData
	voted     map[uint64]common.Address
}

func (f *fakeGovernance) ProposalCounter(ctx context.Context) (*big.Int, error) {
	return new(big.Int).SetUint64(f.next), nil
}

func (f *fakeGovernance) Proposal(ctx context.Context, id *big.Int) (contracts.ProposalData, error) {
	p, ok := f.proposals[id.Uint64()]
	if !ok {
		return contracts.ProposalData{}, errors.New("no such proposal")
	}
	return p, nil
}

func (f *fakeGovernance) HasVoted(ctx context.Context, id *big.Int, voter common.Address) (bool, error) {
	return f.voted[id.Uint64()] == voter, nil
}

func eth(s string) *big.Int {
	v, _ := new(big.Int).SetString(s, 10)
	return v
}

func newTestSync(t *testing.T) (*Synchronizer, *Store) {
	t.Helper()
	store := NewStore()
	s := NewSynchronizer(store, NewSnapshotCache(nil, zap.NewNop()), zap.NewNop())
	return s, store
}

func threeProperties() *fakeRegistry {
	props := map[uint64]contracts.PropertyData{
		1: {Name: "Seaside Villa", Location: "Naxos", PricePerWeek: eth("2500000000000000000"), Verified: true, Active: true},
		2: {Name: "Alpine Lodge", Location: "Zermatt", PricePerWeek: eth("1000000000000000000"), Verified: false, Active: true},
		3: {Name: "City Loft", Location: "Lisbon", PricePerWeek: eth("500000000000000000"), Verified: true, Active: false},
	}
	return &fakeRegistry{
		nextProperty: 4,
		nextToken:    1,
		properties:   props,
		owners:       map[uint64]common.Address{1: alice, 2: bob, 3: alice},
		tokenProps:   map[uint64]uint64{},
	}
}

func TestSyncPropertiesEnumerates(t *testing.T) {
	s, store := newTestSync(t)
	s.RebindReaders(threeProperties(), nil, nil, nil)

	if err := s.SyncProperties(context.Background()); err != nil {
		t.Fatalf("SyncProperties: %v", err)
	}
	got := store.Properties()
	if len(got) != 3 {
		t.Fatalf("got %d properties, want 3", len(got))
	}
	if got[0].PricePerWeek != "2.5" {
		t.Errorf("price formatted as %q, want 2.5", got[0].PricePerWeek)
	}
	if got[0].Owner != "0x00000000000000000000000000000000000000a1" {
		t.Errorf("owner not lower-cased: %q", got[0].Owner)
	}
}

func TestSyncPropertiesCounterFailureEmptiesProjection(t *testing.T) {
	s, store := newTestSync(t)
	reg := threeProperties()
	s.RebindReaders(reg, nil, nil, nil)
	if err := s.SyncProperties(context.Background()); err != nil {
		t.Fatalf("SyncProperties: %v", err)
	}

	reg.counterErr = errors.New("node down")
	if err := s.SyncProperties(context.Background()); err == nil {
		t.Fatal("want error on counter failure")
	}
	if got := store.Properties(); len(got) != 0 {
		t.Errorf("stale properties retained: %d", len(got))
	}
}

func TestSyncPropertiesSkipsBadEntity(t *testing.T) {
	s, store := newTestSync(t)
	reg := threeProperties()
	reg.badProperty = 2
	s.RebindReaders(reg, nil, nil, nil)

	if err := s.SyncProperties(context.Background()); err != nil {
		t.Fatalf("SyncProperties: %v", err)
	}
	got := store.Properties()
	if len(got) != 2 {
		t.Fatalf("got %d properties, want 2", len(got))
	}
	for _, p := range got {
		if p.ID == 2 {
			t.Error("bad entity not skipped")
		}
	}
}

func TestSyncPropertiesNoSource(t *testing.T) {
	s, store := newTestSync(t)
	s.RebindReaders(threeProperties(), nil, nil, nil)
	if err := s.SyncProperties(context.Background()); err != nil {
		t.Fatalf("SyncProperties: %v", err)
	}

	s.RebindReaders(nil, nil, nil, nil)
	if err := s.SyncProperties(context.Background()); !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("got %v, want ErrSourceUnavailable", err)
	}
	if got := store.Properties(); len(got) != 0 {
		t.Errorf("projection not emptied after unbind: %d", len(got))
	}
}

func TestSyncSlotsSevenPerToken(t *testing.T) {
	s, store := newTestSync(t)
	reg := threeProperties()
	reg.nextToken = 3
	reg.tokenProps = map[uint64]uint64{1: 1, 2: 2}
	vault := &fakeVault{owners: map[[2]uint64]common.Address{
		{1, 0}: alice,
		{1, 3}: bob,
	}}
	s.RebindReaders(reg, vault, nil, nil)

	if err := s.SyncProperties(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := s.SyncSlots(context.Background()); err != nil {
		t.Fatalf("SyncSlots: %v", err)
	}

	slots := store.Slots()
	if len(slots) != 14 {
		t.Fatalf("got %d slots, want 14", len(slots))
	}
	seen := map[[2]uint64]bool{}
	for _, sl := range slots {
		key := [2]uint64{sl.TokenID, uint64(sl.Day)}
		if seen[key] {
			t.Fatalf("duplicate slot %v", key)
		}
		seen[key] = true
		if sl.Day > 6 {
			t.Fatalf("day out of range: %d", sl.Day)
		}
	}
	owner, ok := store.SlotOwner(1, 3)
	if !ok || owner != "0x00000000000000000000000000000000000000b2" {
		t.Errorf("slot (1,3) owner = %q", owner)
	}
	if owner, _ := store.SlotOwner(2, 0); owner != "" {
		t.Errorf("unowned slot has owner %q", owner)
	}
	if slots[0].PropertyName != "Seaside Villa" {
		t.Errorf("property name not joined: %q", slots[0].PropertyName)
	}
}

func TestMyReservationsCaseInsensitive(t *testing.T) {
	store := NewStore()
	store.ReplaceSlots([]models.Slot{
		{TokenID: 1, Day: 0, Owner: "0x00000000000000000000000000000000000000a1"},
		{TokenID: 1, Day: 1, Owner: "0x00000000000000000000000000000000000000b2"},
	})
	mine := store.MyReservations("0x00000000000000000000000000000000000000A1")
	if len(mine) != 1 || mine[0].Day != 0 {
		t.Fatalf("MyReservations = %+v", mine)
	}
	if got := store.MyReservations(""); got != nil {
		t.Errorf("empty account matched %d slots", len(got))
	}
}

func TestSyncOffersFeasibility(t *testing.T) {
	s, store := newTestSync(t)
	store.ReplaceSlots([]models.Slot{
		{TokenID: 1, Day: 2, Owner: "0x00000000000000000000000000000000000000a1"},
		{TokenID: 2, Day: 4, Owner: "0x00000000000000000000000000000000000000b2"},
	})
	market := &fakeMarket{
		next: 4,
		offers: map[uint64]contracts.OfferData{
			// Swap targeting bob's exact slot.
			1: {OfferType: 0, OfferedTokenID: big.NewInt(1), OfferedDay: 2,
				TargetTokenID: big.NewInt(2), TargetDay: 4,
				EthAmount: big.NewInt(0), Offerer: alice, IsActive: true},
			// Deleted entry decodes to the zero offerer.
			2: {OfferType: 0, OfferedTokenID: big.NewInt(0), TargetTokenID: big.NewInt(0), EthAmount: big.NewInt(0)},
			// Open swap, any slot accepted.
			3: {OfferType: 0, OfferedTokenID: big.NewInt(1), OfferedDay: 2,
				TargetTokenID: big.NewInt(0), TargetDay: 0,
				EthAmount: big.NewInt(0), Offerer: alice, IsActive: true},
		},
	}
	s.RebindReaders(nil, nil, market, nil)
	s.SetViewer("0x00000000000000000000000000000000000000B2")

	if err := s.SyncOffers(context.Background()); err != nil {
		t.Fatalf("SyncOffers: %v", err)
	}
	offers := store.Offers()
	if len(offers) != 2 {
		t.Fatalf("got %d offers, want 2 (deleted entry skipped)", len(offers))
	}
	for _, o := range offers {
		if !o.OffererOwns {
			t.Errorf("offer %d: offerer ownership not recognized", o.OfferID)
		}
		if !o.AcceptEligible {
			t.Errorf("offer %d: viewer should be accept-eligible", o.OfferID)
		}
	}
	if !offers[1].TargetAny {
		t.Error("zero target token should mean any slot")
	}
}

func TestSyncOffersViewerNotEligible(t *testing.T) {
	s, store := newTestSync(t)
	store.ReplaceSlots([]models.Slot{
		{TokenID: 1, Day: 2, Owner: "0x00000000000000000000000000000000000000a1"},
	})
	market := &fakeMarket{
		next: 2,
		offers: map[uint64]contracts.OfferData{
			1: {OfferType: 0, OfferedTokenID: big.NewInt(1), OfferedDay: 2,
				TargetTokenID: big.NewInt(0), TargetDay: 0,
				EthAmount: big.NewInt(0), Offerer: alice, IsActive: true},
		},
	}
	s.RebindReaders(nil, nil, market, nil)

	// Disconnected viewer.
	if err := s.SyncOffers(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.Offers()[0].AcceptEligible {
		t.Error("disconnected viewer marked eligible")
	}

	// The offerer is never eligible to accept their own offer.
	s.SetViewer("0x00000000000000000000000000000000000000A1")
	if err := s.SyncOffers(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.Offers()[0].AcceptEligible {
		t.Error("offerer marked eligible for own offer")
	}
}

func TestSyncProposals(t *testing.T) {
	s, store := newTestSync(t)
	gov := &fakeGovernance{
		next: 3,
		proposals: map[uint64]contracts.ProposalData{
			1: {PropertyID: big.NewInt(1), Description: "Roof repair",
				CostEstimate: eth("2000000000000000000"), VotingEndTime: big.NewInt(1767225600),
				VotesFor: big.NewInt(3), VotesAgainst: big.NewInt(1)},
			2: {PropertyID: big.NewInt(1), Description: "Pool refit",
				CostEstimate: eth("5000000000000000000"), VotingEndTime: big.NewInt(1767225600),
				VotesFor: big.NewInt(0), VotesAgainst: big.NewInt(0), Executed: true, Passed: true},
		},
		voted: map[uint64]common.Address{1: bob},
	}
	s.RebindReaders(nil, nil, nil, gov)
	s.SetViewer(bob.Hex())

	if err := s.SyncProposals(context.Background()); err != nil {
		t.Fatalf("SyncProposals: %v", err)
	}
	proposals := store.Proposals()
	if len(proposals) != 2 {
		t.Fatalf("got %d proposals, want 2", len(proposals))
	}
	if proposals[0].CostEstimate != "2" {
		t.Errorf("cost estimate %q, want 2", proposals[0].CostEstimate)
	}
	if !proposals[0].HasVoted {
		t.Error("viewer's vote on proposal 1 not reflected")
	}
	if proposals[1].HasVoted {
		t.Error("proposal 2 should show no vote")
	}
	if !proposals[1].Executed || !proposals[1].Passed {
		t.Error("terminal proposal flags lost")
	}
}

func TestSyncAllIdempotent(t *testing.T) {
	s, store := newTestSync(t)
	reg := threeProperties()
	s.RebindReaders(reg, &fakeVault{owners: map[[2]uint64]common.Address{}}, &fakeMarket{next: 1, offers: map[uint64]contracts.OfferData{}}, &fakeGovernance{next: 1, proposals: map[uint64]contracts.ProposalData{}})

	if err := s.SyncAll(context.Background()); err != nil {
		t.Fatalf("first SyncAll: %v", err)
	}
	first := store.Properties()
	if err := s.SyncAll(context.Background()); err != nil {
		t.Fatalf("second SyncAll: %v", err)
	}
	second := store.Properties()
	if len(first) != len(second) {
		t.Fatalf("projection size changed across identical syncs: %d vs %d", len(first), len(second))
	}
}
