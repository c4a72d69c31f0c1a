package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glutamatt/coros-mcp/internal/config"
	"github.com/glutamatt/coros-mcp/internal/mcp"
	"github.com/glutamatt/coros-mcp/internal/server"
	"github.com/glutamatt/coros-mcp/internal/session"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	transport := flag.String("transport", "stdio", "transport: stdio or http")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(Version)
		return
	}

	// Stdio mode must keep stdout clean for the MCP protocol.
	logOut := os.Stdout
	if *transport == "stdio" {
		logOut = os.Stderr
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sessions, err := openSessionStore(cfg, log)
	if err != nil {
		log.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer sessions.Close()

	mcpSrv := mcp.New(sessions, cfg.Coros.Region, Version, log)

	switch *transport {
	case "stdio":
		log.Info("serving MCP over stdio", "version", Version, "region", cfg.Coros.Region)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			log.Error("stdio server error", "error", err)
			os.Exit(1)
		}
	case "http":
		serveHTTP(cfg, mcpSrv, log)
	default:
		log.Error("unknown transport", "transport", *transport)
		os.Exit(1)
	}
}

// openSessionStore builds the configured session backend. Postgres runs
// migrations before connecting.
func openSessionStore(cfg *config.Config, log *slog.Logger) (session.Store, error) {
	switch cfg.Sessions.Backend {
	case "", "memory":
		return session.NewMemoryStore(), nil
	case "sqlite":
		log.Info("using sqlite session store", "path", cfg.Sessions.Path)
		return session.OpenSQLiteStore(cfg.Sessions.Path)
	case "postgres":
		dsn := cfg.Sessions.DB.DSN()
		if err := session.RunMigrations(dsn, "migrations"); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		log.Info("using postgres session store", "host", cfg.Sessions.DB.Host)
		return session.NewPostgresStore(context.Background(), dsn)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Sessions.Backend)
	}
}

func serveHTTP(cfg *config.Config, mcpSrv *mcpserver.MCPServer, log *slog.Logger) {
	srv := server.New(mcpSrv, cfg.Auth.APIKey, log)

	var listener net.Listener
	var err error

	if cfg.Tailnet.Enabled {
		ts := &tsnet.Server{
			Hostname: cfg.Tailnet.Hostname,
			Dir:      cfg.Tailnet.StateDir,
			AuthKey:  cfg.Tailnet.AuthKey,
		}
		if err := ts.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer ts.Close()

		listener, err = ts.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("serving MCP over tailnet", "hostname", cfg.Tailnet.Hostname, "version", Version)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("serving MCP over HTTP", "addr", addr, "version", Version)
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
