package models

// Slot is the atomic reservation unit: one property-week token subdivided into
// 7 day-slots, each independently owned. Owner is authoritative on-chain and
// never kept beyond one sync cycle; it is stored lower-cased for comparison.
type Slot struct {
	TokenID      uint64 `json:"tokenId"`
	Day          uint8  `json:"day"` // 0..6
	PropertyID   uint64 `json:"propertyId"`
	PropertyName string `json:"propertyName"`
	Year         uint64 `json:"year"`
	Week         uint64 `json:"week"`
	Owner        string `json:"owner"`
}
