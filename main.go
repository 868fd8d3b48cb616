package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/lib/pq"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/samhaengsi/auth"
	"github.com/danielhkuo/samhaengsi/broker"
	"github.com/danielhkuo/samhaengsi/cliparse"
	"github.com/danielhkuo/samhaengsi/db"
	"github.com/danielhkuo/samhaengsi/middleware"
	"github.com/danielhkuo/samhaengsi/router"
	"github.com/danielhkuo/samhaengsi/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := cliparse.LoadDotEnv(""); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}

// setupLogger writes text to a terminal and JSON everywhere else.
func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		h = slog.NewTextHandler(os.Stderr, opts)
	} else {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

func run(ctx context.Context, cfg cliparse.Config) error {
	notifier, err := openNotifier(ctx, cfg)
	if err != nil {
		return err
	}
	defer notifier.Close()

	st, closeStore, err := openStore(cfg, notifier)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.SeedTopics {
		n, err := store.Seed(ctx, st, cfg.FeaturedCategory, cfg.Suggestions)
		if err != nil {
			return fmt.Errorf("seeding topics: %w", err)
		}
		slog.Info("Seeded topics", "added", n)
	}

	if auth.NewPasswordGate(cfg.AdminPassword).UsesDefault() {
		slog.Warn("ADMIN_PASSWORD is not set; the admin screen accepts the default password")
	}

	// Create router
	mux := router.NewRouter(st, cfg)

	// Live feed connections end with ctx, so shutdown does not wait on them.
	server := &http.Server{
		Handler:     middleware.CORS(mux),
		Addr:        ":" + strconv.Itoa(cfg.Port),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port, "database", cfg.DatabaseType, "notifier", cfg.Notifier)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openNotifier(ctx context.Context, cfg cliparse.Config) (broker.Notifier, error) {
	switch cfg.Notifier {
	case cliparse.NotifierNATS:
		n, err := broker.NewNATS(cfg.NATSURL)
		if err != nil {
			return nil, fmt.Errorf("nats connection failed: %w", err)
		}
		return n, nil
	case cliparse.NotifierPostgres:
		n, err := broker.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres listener failed: %w", err)
		}
		return n, nil
	default:
		return broker.NewLocal(), nil
	}
}

func openStore(cfg cliparse.Config, n broker.Notifier) (store.Store, func(), error) {
	if cfg.DatabaseType == cliparse.DatabaseMemory {
		slog.Warn("Using the in-memory store; topics and poems are lost on restart")
		return store.NewMemory(n), func() {}, nil
	}

	driver, dialect := "sqlite", store.DialectSQLite
	if cfg.DatabaseType == cliparse.DatabasePostgres {
		driver, dialect = "postgres", store.DialectPostgres
	}

	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	if dialect == store.DialectSQLite {
		// sqlite allows one writer
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		dbConn.Close()
		return nil, nil, fmt.Errorf("database ping failed: %w", err)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		dbConn.Close()
		return nil, nil, err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	return store.NewSQL(dbConn, dialect, n), func() { dbConn.Close() }, nil
}
