package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartstay/chain/wallet"
	"smartstay/config"
	"smartstay/models"
)

// WalletHandler exposes the wallet session over HTTP.
type WalletHandler struct {
	manager *wallet.Manager
}

func NewWalletHandler(manager *wallet.Manager) *WalletHandler {
	return &WalletHandler{manager: manager}
}

func (h *WalletHandler) sessionInfo() models.SessionInfo {
	sess := h.manager.Session()
	return models.SessionInfo{
		Account:      sess.Account,
		Connected:    sess.Connected(),
		IsConnecting: sess.IsConnecting,
		ChainID:      config.AppConfig.ChainID,
		Error:        sess.Err,
	}
}

// Session reports the current session state.
func (h *WalletHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionInfo())
}

// Connect unlocks a keystore account and attaches it to the session. The
// request body is optional; an empty one connects the first account with the
// configured passphrase.
func (h *WalletHandler) Connect(c *gin.Context) {
	var req models.ConnectRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	passphrase := req.Passphrase
	if passphrase == "" {
		passphrase = config.AppConfig.KeystorePassphrase
	}
	if err := h.manager.Connect(req.Account, passphrase); err != nil {
		c.JSON(http.StatusBadRequest, h.sessionInfo())
		return
	}
	c.JSON(http.StatusOK, h.sessionInfo())
}

// Disconnect forgets the session locally. Key material stays on disk.
func (h *WalletHandler) Disconnect(c *gin.Context) {
	h.manager.Disconnect()
	c.JSON(http.StatusOK, h.sessionInfo())
}
