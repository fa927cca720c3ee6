package handlers

// HandlerBundle aggregates every handler for route registration.
type HandlerBundle struct {
	Wallet     *WalletHandler
	Property   *PropertyHandler
	Market     *MarketHandler
	Governance *GovernanceHandler
	Tx         *TxHandler
	Health     *HealthHandler
}
