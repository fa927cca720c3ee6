package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartstay/services/submit"
	"smartstay/utils"
)

// TxHandler serves submission receipts for status polling.
type TxHandler struct {
	submitter *submit.Submitter
}

func NewTxHandler(sub *submit.Submitter) *TxHandler {
	return &TxHandler{submitter: sub}
}

func (h *TxHandler) Get(c *gin.Context) {
	r, ok := h.submitter.Receipt(c.Param("id"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Unknown submission", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *TxHandler) Latest(c *gin.Context) {
	r, ok := h.submitter.Latest()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"state": submit.StateIdle})
		return
	}
	c.JSON(http.StatusOK, r)
}
