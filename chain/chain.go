package chain

import (
	"context"
	"log"
	"math/big"
	"time"

	"smartstay/config"

	"github.com/ethereum/go-ethereum/ethclient"
)

// Client is the global Ethereum node client instance.
var Client *ethclient.Client

// InitChain dials the configured RPC endpoint and verifies the chain id.
// Contract addresses are chain-specific, so serving against the wrong chain is
// a fatal misconfiguration rather than something to reconcile at runtime.
func InitChain() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, config.AppConfig.RPCURL)
	if err != nil {
		log.Fatalf("failed to connect to Ethereum node: %v", err)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		log.Fatalf("failed to query chain id: %v", err)
	}
	want := big.NewInt(config.AppConfig.ChainID)
	if chainID.Cmp(want) != 0 {
		log.Fatalf("connected to chain %s, configured for chain %s", chainID, want)
	}
	Client = client
	log.Printf("Connected to Ethereum node on chain %s", chainID)
}
