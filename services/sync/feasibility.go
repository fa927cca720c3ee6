package sync

import "smartstay/models"

// annotateFeasibility fills the advisory flags on an offer from the current
// slot snapshot. The flags can be stale by one sync cycle; the contract
// rejects infeasible submissions regardless.
func (s *Synchronizer) annotateFeasibility(offer *models.Offer, viewer string) {
	if !offer.Active {
		offer.OffererOwns = false
		offer.AcceptEligible = false
		return
	}

	owner, known := s.store.SlotOwner(offer.Offered.TokenID, offer.Offered.Day)
	offer.OffererOwns = known && owner != "" && owner == offer.Offerer

	offer.AcceptEligible = s.acceptEligible(offer, viewer)
}

// acceptEligible reports whether viewer could accept the offer given the
// projected slot ownership. Buy offers target a slot the offerer wants, so
// the acceptor must own it; swap offers with a zero target token accept any
// slot the viewer owns.
func (s *Synchronizer) acceptEligible(offer *models.Offer, viewer string) bool {
	if viewer == "" || viewer == offer.Offerer {
		return false
	}
	switch offer.OfferType {
	case models.OfferSale.String():
		// Anyone but the offerer can buy, funds permitting.
		return true
	case models.OfferSwap.String(), models.OfferBuy.String():
		if offer.TargetAny {
			return len(s.store.MyReservations(viewer)) > 0
		}
		owner, known := s.store.SlotOwner(offer.Target.TokenID, offer.Target.Day)
		return known && owner != "" && owner == viewer
	}
	return false
}
