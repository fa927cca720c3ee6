package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartstay/chain/wallet"
	"smartstay/config"
	syncsvc "smartstay/services/sync"
)

// HealthHandler reports gateway liveness plus the freshness of each synced
// projection.
type HealthHandler struct {
	store   *syncsvc.Store
	manager *wallet.Manager
}

func NewHealthHandler(store *syncsvc.Store, manager *wallet.Manager) *HealthHandler {
	return &HealthHandler{store: store, manager: manager}
}

func (h *HealthHandler) Health(c *gin.Context) {
	lastSync := make(map[string]string, len(syncsvc.AllCollections))
	for _, col := range syncsvc.AllCollections {
		t := h.store.LastSync(col)
		if t.IsZero() {
			lastSync[string(col)] = "never"
			continue
		}
		lastSync[string(col)] = t.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"chainId":   config.AppConfig.ChainID,
		"connected": h.manager.Session().Connected(),
		"lastSync":  lastSync,
	})
}
