// File: smartstay/main.go
package main

import (
	"context"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartstay/chain"
	"smartstay/chain/contracts"
	"smartstay/chain/wallet"
	"smartstay/config"
	"smartstay/handlers"
	"smartstay/middleware"
	"smartstay/routes"
	"smartstay/services/governance"
	"smartstay/services/market"
	"smartstay/services/property"
	"smartstay/services/submit"
	syncsvc "smartstay/services/sync"
	"smartstay/utils"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	chain.InitChain()
	utils.InitCache()

	// Wallet session over the local keystore.
	ks := keystore.NewKeyStore(config.AppConfig.KeystoreDir, keystore.StandardScryptN, keystore.StandardScryptP)
	walletManager := wallet.NewManager(chain.Client, ks, big.NewInt(config.AppConfig.ChainID), logger)
	defer walletManager.Close()

	// Contract bindings, projections, and the submission pipeline.
	bindingsProvider := contracts.NewProvider(contracts.Addresses{
		Registry:   common.HexToAddress(config.AppConfig.RegistryAddress),
		Vault:      common.HexToAddress(config.AppConfig.VaultAddress),
		Market:     common.HexToAddress(config.AppConfig.MarketAddress),
		Governance: common.HexToAddress(config.AppConfig.GovernanceAddress),
	}, logger)

	store := syncsvc.NewStore()
	cache := syncsvc.NewSnapshotCache(utils.GetCacheClient(), logger)
	synchronizer := syncsvc.NewSynchronizer(store, cache, logger)
	submitter := submit.NewSubmitter(chain.Client, synchronizer, logger)

	rebuild := func() {
		sess := walletManager.Session()
		b := bindingsProvider.Rebuild(sess.Provider, sess.Signer)
		synchronizer.Rebind(b)
		synchronizer.SetViewer(sess.Account)
		submitter.SetBackend(sess.Provider)
	}
	rebuild()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Serve cached snapshots until the first chain pass lands.
	cache.Warm(ctx, store)

	// React to wallet and chain changes. A chain change rebuilds everything
	// from scratch, like a page reload would.
	events := walletManager.Subscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-events:
				rebuild()
				switch ev.Kind {
				case wallet.AccountsChanged:
					if err := synchronizer.Refresh(ctx, syncsvc.Offers, syncsvc.Proposals); err != nil {
						logger.Sugar().Warnf("main: re-sync after account change incomplete: %v", err)
					}
				case wallet.ChainChanged:
					if err := synchronizer.SyncAll(ctx); err != nil {
						logger.Sugar().Warnf("main: re-sync after chain change incomplete: %v", err)
					}
				}
			}
		}
	}()
	go walletManager.WatchChain(ctx, 15*time.Second)

	syncsvc.StartWorker(ctx, synchronizer,
		time.Duration(config.AppConfig.SyncIntervalSeconds)*time.Second, logger)

	// services.
	vaultAddr := common.HexToAddress(config.AppConfig.VaultAddress)
	propertyService := property.NewService(bindingsProvider, walletManager, submitter, store, vaultAddr)
	marketService := market.NewService(bindingsProvider, walletManager, submitter, store)
	governanceService := governance.NewService(bindingsProvider, walletManager, submitter, store)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &handlers.HandlerBundle{
		Wallet:     handlers.NewWalletHandler(walletManager),
		Property:   handlers.NewPropertyHandler(propertyService),
		Market:     handlers.NewMarketHandler(marketService),
		Governance: handlers.NewGovernanceHandler(governanceService),
		Tx:         handlers.NewTxHandler(submitter),
		Health:     handlers.NewHealthHandler(store, walletManager),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
