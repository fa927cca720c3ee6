package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartstay/models"
	"smartstay/services/governance"
	"smartstay/utils"
)

// GovernanceHandler serves proposals, voting, and the role admin surface.
type GovernanceHandler struct {
	svc governance.Service
}

func NewGovernanceHandler(svc governance.Service) *GovernanceHandler {
	return &GovernanceHandler{svc: svc}
}

func (h *GovernanceHandler) Proposals(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Proposals())
}

func (h *GovernanceHandler) CreateProposal(c *gin.Context) {
	var req models.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondReceipt(c, h.svc.CreateProposal(c.Request.Context(), req))
}

func (h *GovernanceHandler) Vote(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req models.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondReceipt(c, h.svc.Vote(c.Request.Context(), id, req.Support))
}

func (h *GovernanceHandler) Execute(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	respondReceipt(c, h.svc.Execute(c.Request.Context(), id))
}

// HasRole checks a named role for ?account=.
func (h *GovernanceHandler) HasRole(c *gin.Context) {
	role := c.Param("role")
	account := c.Query("account")
	if account == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing account", "pass ?account=<address>")
		return
	}
	has, err := h.svc.HasRole(c.Request.Context(), role, account)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Role lookup failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role, "account": account, "hasRole": has})
}

func (h *GovernanceHandler) GrantRole(c *gin.Context) {
	var req models.GrantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondReceipt(c, h.svc.GrantRole(c.Request.Context(), req))
}
