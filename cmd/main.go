package main

import (
	"flag"
	"io"
	"log"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/bridgegate-labs/bridgegate/internal/api"
	"github.com/bridgegate-labs/bridgegate/internal/chain"
	"github.com/bridgegate-labs/bridgegate/internal/config"
	"github.com/bridgegate-labs/bridgegate/internal/ledger"
	"github.com/bridgegate-labs/bridgegate/internal/services"
	"github.com/ethereum/go-ethereum/common"
)

// Build information (set via ldflags)
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func main() {
	var showVersion = flag.Bool("version", false, "Show version information")
	var enableLog = flag.Bool("log", true, "Enable logging output")
	flag.Parse()

	if !*enableLog {
		log.SetOutput(io.Discard)
	}

	if *showVersion {
		log.Printf("Bridgegate asset-custody gateway\n")
		log.Printf("Version: %s\n", Version)
		log.Printf("Commit: %s\n", CommitHash)
		log.Printf("Built: %s\n", BuildTime)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	var dbService services.DBService
	switch cfg.DatabaseDriver {
	case "postgres":
		dbService, err = services.NewPostgresDBService(cfg.DatabaseDSN)
	default:
		dbService, err = services.NewSqliteDBService(cfg.DatabaseDSN)
	}
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer dbService.Close()

	var chainCtx chain.Context
	if cfg.RPCURL != "" {
		ethCtx, err := chain.NewEthContext(cfg.RPCURL)
		if err != nil {
			log.Fatal("Failed to connect chain context:", err)
		}
		defer ethCtx.Close()
		chainCtx = ethCtx
	} else {
		chainCtx = chain.NewStaticContext(big.NewInt(cfg.ChainID), 0)
	}

	gateway, err := services.NewGatewayService(services.GatewayConfig{
		DB:      dbService.GetDB(),
		Ledger:  ledger.NewSimLedger(),
		Chain:   chainCtx,
		Owner:   common.HexToAddress(cfg.OwnerAddress),
		Address: common.HexToAddress(cfg.GatewayAddress),
	})
	if err != nil {
		log.Fatal("Failed to initialize gateway:", err)
	}

	records := services.NewRecordService(dbService.GetDB())

	server := api.NewAPIServer(gateway, records, cfg.JWTSecret)
	port, err := server.Start(cfg.Port)
	if err != nil {
		log.Fatal("Failed to start API server:", err)
	}
	log.Printf("API server started on port %d\n", port)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	if err := server.Shutdown(); err != nil {
		log.Println("Failed to shut down API server:", err)
	}
}
