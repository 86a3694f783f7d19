package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/chainballot/auth"
	"github.com/danielhkuo/chainballot/cliparse"
	"github.com/danielhkuo/chainballot/coordinator"
	"github.com/danielhkuo/chainballot/credentials"
	"github.com/danielhkuo/chainballot/db"
	"github.com/danielhkuo/chainballot/ledger"
	"github.com/danielhkuo/chainballot/middleware"
	"github.com/danielhkuo/chainballot/registry"
	"github.com/danielhkuo/chainballot/router"
	"github.com/danielhkuo/chainballot/session"
)

func main() {
	var err error

	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the ledger database
	dbConn, err := sql.Open(cliparse.DriverName(cfg.DatabaseType), cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Ledger schema ready", "type", cfg.DatabaseType)

	ctx := context.Background()

	// Bring up the ledger adapter and check the stored chain
	store := ledger.NewSQLStore(dbConn)
	adapter := ledger.NewAdapter(store, cfg.Signer)
	if err := adapter.Init(ctx); err != nil {
		slog.Error("ledger init failed", "error", err)
		os.Exit(1)
	}
	if err := adapter.Verify(ctx); err != nil {
		slog.Error("ledger hash chain verification failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Ledger hash chain verified")

	// Rebuild in-memory state from ledger history
	coord := coordinator.New(credentials.NewStore(), registry.New(), session.New(), adapter)
	if err := coord.Replay(ctx); err != nil {
		slog.Error("ledger replay failed", "error", err)
		os.Exit(1)
	}

	// Log committed entries as they land
	entries, cancelSub := coord.Subscribe(64)
	defer cancelSub()
	go func() {
		for e := range entries {
			slog.Info("ledger entry committed", "seq", e.Seq, "kind", e.Action.Kind)
		}
	}()

	// The admin key is derived, not stored; print it once at boot
	slog.Info("Admin key derived", "election", cfg.ElectionID,
		"key", auth.GenerateAdminKey(cfg.ElectionID, cfg.AdminKeySalt))

	// Create router
	mux := router.NewRouter(coord, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "state", coord.State())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
