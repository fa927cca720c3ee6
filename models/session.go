package models

// SessionInfo is the externally visible wallet session state.
type SessionInfo struct {
	Account      string `json:"account,omitempty"`
	Connected    bool   `json:"connected"`
	IsConnecting bool   `json:"isConnecting"`
	ChainID      int64  `json:"chainId"`
	Error        string `json:"error,omitempty"`
}

// ConnectRequest optionally overrides the configured keystore passphrase and
// selects a specific account.
type ConnectRequest struct {
	Account    string `json:"account"`
	Passphrase string `json:"passphrase"`
}
