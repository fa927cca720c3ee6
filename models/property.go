package models

import "math/big"

// Property is a projection of on-chain registry state. It is rebuilt on every
// sync pass; PriceWei is the authoritative value, PricePerWeek is its display
// form computed at the boundary.
type Property struct {
	ID           uint64   `json:"id"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Amenities    string   `json:"amenities"`
	PricePerWeek string   `json:"pricePerWeek"`
	PriceWei     *big.Int `json:"-"`
	Verified     bool     `json:"verified"`
	Active       bool     `json:"active"`
	Owner        string   `json:"owner"`
}

// CreatePropertyRequest carries the property creation form fields.
type CreatePropertyRequest struct {
	Name         string `json:"name" binding:"required"`
	Location     string `json:"location" binding:"required"`
	PricePerWeek string `json:"pricePerWeek" binding:"required"`
	Amenities    string `json:"amenities"`
	Description  string `json:"description"`
}

// UpdatePropertyRequest carries the property update form fields.
type UpdatePropertyRequest struct {
	Name         string `json:"name" binding:"required"`
	Location     string `json:"location" binding:"required"`
	PricePerWeek string `json:"pricePerWeek" binding:"required"`
	Amenities    string `json:"amenities"`
	Description  string `json:"description"`
}

// MintWeekRequest mints one property-week token into the vault.
type MintWeekRequest struct {
	Year int `json:"year" binding:"required"`
	Week int `json:"week" binding:"required"`
}

// MintOwnershipRequest distributes initial fractional units of a property.
type MintOwnershipRequest struct {
	Owners  []string `json:"owners" binding:"required"`
	Amounts []string `json:"amounts" binding:"required"`
}
