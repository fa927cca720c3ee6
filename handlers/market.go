package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartstay/models"
	"smartstay/services/market"
)

// MarketHandler serves marketplace offers and reservation listings.
type MarketHandler struct {
	svc market.Service
}

func NewMarketHandler(svc market.Service) *MarketHandler {
	return &MarketHandler{svc: svc}
}

// Offers lists offers from the snapshot. Active offers only by default;
// ?all=true includes settled and cancelled ones.
func (h *MarketHandler) Offers(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	c.JSON(http.StatusOK, h.svc.Offers(activeOnly))
}

// Slots lists every day-slot of every week token.
func (h *MarketHandler) Slots(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Slots())
}

// MyReservations lists the connected account's slots. Empty when no wallet
// is connected.
func (h *MarketHandler) MyReservations(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.MyReservations())
}

func (h *MarketHandler) CreateOffer(c *gin.Context) {
	var req models.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondReceipt(c, h.svc.CreateOffer(c.Request.Context(), req))
}

func (h *MarketHandler) AcceptOffer(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	respondReceipt(c, h.svc.AcceptOffer(c.Request.Context(), id))
}

func (h *MarketHandler) CancelOffer(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	respondReceipt(c, h.svc.CancelOffer(c.Request.Context(), id))
}
