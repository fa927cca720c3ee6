package models

import "math/big"

// OfferType discriminates marketplace offers. The numeric values match the
// contract's enum exactly.
type OfferType uint8

const (
	OfferSwap OfferType = 0
	OfferSale OfferType = 1
	OfferBuy  OfferType = 2
)

func (t OfferType) String() string {
	switch t {
	case OfferSwap:
		return "SWAP"
	case OfferSale:
		return "SALE"
	case OfferBuy:
		return "BUY"
	}
	return "UNKNOWN"
}

// SlotRef identifies one side of an offer. A zero TokenID on the target side
// means "any slot".
type SlotRef struct {
	TokenID      uint64 `json:"tokenId"`
	Day          uint8  `json:"day"`
	PropertyID   uint64 `json:"propertyId"`
	PropertyName string `json:"propertyName"`
}

// Offer is a projection of a marketplace offer plus feasibility flags derived
// at sync time. Feasibility can go stale between sync and submission; the
// contract is the final arbiter.
type Offer struct {
	OfferID        uint64   `json:"offerId"`
	OfferType      string   `json:"offerType"`
	Offered        SlotRef  `json:"offered"`
	Target         SlotRef  `json:"target"`
	TargetAny      bool     `json:"targetAny"`
	EthAmount      string   `json:"ethAmount"`
	EthAmountWei   *big.Int `json:"-"`
	Offerer        string   `json:"offerer"`
	Active         bool     `json:"active"`
	OffererOwns    bool     `json:"offererStillOwns"`
	AcceptEligible bool     `json:"acceptEligible"`
}

// CreateOfferRequest carries the offer creation form fields.
type CreateOfferRequest struct {
	OfferType      string `json:"offerType" binding:"required"` // SWAP | SALE | BUY
	OfferedTokenID uint64 `json:"offeredTokenId"`
	OfferedDay     uint8  `json:"offeredDay"`
	TargetTokenID  uint64 `json:"targetTokenId"`
	TargetDay      uint8  `json:"targetDay"`
	EthAmount      string `json:"ethAmount" binding:"required"`
}
