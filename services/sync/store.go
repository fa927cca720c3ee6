// Package sync maintains in-memory projections of on-chain state. Projections
// are rebuilt wholesale from the chain; they are never treated as a source of
// truth and never persisted beyond the cache layer.
package sync

import (
	"strings"
	gosync "sync"
	"time"

	"smartstay/models"
)

// Collection names one synchronized projection.
type Collection string

const (
	Properties Collection = "properties"
	Slots      Collection = "slots"
	Offers     Collection = "offers"
	Proposals  Collection = "proposals"
)

// AllCollections lists every projection in sync order. Properties come first
// because the other projections join against property metadata.
var AllCollections = []Collection{Properties, Slots, Offers, Proposals}

// Store holds the current snapshot of every projection. Each Replace swaps
// the whole collection; readers get copies and never observe partial updates.
type Store struct {
	mu         gosync.RWMutex
	properties []models.Property
	slots      []models.Slot
	offers     []models.Offer
	proposals  []models.Proposal
	lastSync   map[Collection]time.Time
}

func NewStore() *Store {
	return &Store{lastSync: make(map[Collection]time.Time)}
}

func (s *Store) ReplaceProperties(list []models.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties = list
	s.lastSync[Properties] = time.Now()
}

func (s *Store) ReplaceSlots(list []models.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = list
	s.lastSync[Slots] = time.Now()
}

func (s *Store) ReplaceOffers(list []models.Offer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers = list
	s.lastSync[Offers] = time.Now()
}

func (s *Store) ReplaceProposals(list []models.Proposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals = list
	s.lastSync[Proposals] = time.Now()
}

func (s *Store) Properties() []models.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Property, len(s.properties))
	copy(out, s.properties)
	return out
}

func (s *Store) PropertyByID(id uint64) (models.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.properties {
		if p.ID == id {
			return p, true
		}
	}
	return models.Property{}, false
}

func (s *Store) Slots() []models.Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// SlotOwner looks up the projected owner of a slot. The second return is
// false when the slot is not in the snapshot.
func (s *Store) SlotOwner(tokenID uint64, day uint8) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sl := range s.slots {
		if sl.TokenID == tokenID && sl.Day == day {
			return sl.Owner, true
		}
	}
	return "", false
}

// MyReservations returns the slots owned by account, compared case
// insensitively on the hex address.
func (s *Store) MyReservations(account string) []models.Slot {
	acct := strings.ToLower(account)
	if acct == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Slot
	for _, sl := range s.slots {
		if sl.Owner == acct {
			out = append(out, sl)
		}
	}
	return out
}

func (s *Store) Offers() []models.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Offer, len(s.offers))
	copy(out, s.offers)
	return out
}

func (s *Store) Proposals() []models.Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Proposal, len(s.proposals))
	copy(out, s.proposals)
	return out
}

// LastSync reports when the collection was last replaced; zero if never.
func (s *Store) LastSync(col Collection) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSync[col]
}
