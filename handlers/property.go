package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartstay/models"
	"smartstay/services/property"
	"smartstay/utils"
)

// PropertyHandler serves registry-backed property endpoints.
type PropertyHandler struct {
	svc property.Service
}

func NewPropertyHandler(svc property.Service) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

// List returns the synced property projection. ?verified=true narrows to
// verified, active listings.
func (h *PropertyHandler) List(c *gin.Context) {
	verifiedOnly := c.Query("verified") == "true"
	c.JSON(http.StatusOK, h.svc.List(verifiedOnly))
}

func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	p, found := h.svc.Get(id)
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Property not found", "")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Units reports the fractional units of a property held by ?owner=.
func (h *PropertyHandler) Units(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	owner := c.Query("owner")
	if owner == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing owner", "pass ?owner=<address>")
		return
	}
	units, err := h.svc.UnitsOwned(c.Request.Context(), id, owner)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Units lookup failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"propertyId": id, "owner": owner, "units": units})
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var req models.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondReceipt(c, h.svc.Create(c.Request.Context(), req))
}

func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondReceipt(c, h.svc.Update(c.Request.Context(), id, req))
}

func (h *PropertyHandler) Verify(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	respondReceipt(c, h.svc.Verify(c.Request.Context(), id))
}

func (h *PropertyHandler) MintWeek(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req models.MintWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondReceipt(c, h.svc.MintWeek(c.Request.Context(), id, req))
}

func (h *PropertyHandler) MintOwnership(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req models.MintOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondReceipt(c, h.svc.MintOwnership(c.Request.Context(), id, req))
}
