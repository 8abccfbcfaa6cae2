// cmd/gateway/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rusenback/docker-gateway/internal/api"
	"github.com/rusenback/docker-gateway/internal/audit"
	"github.com/rusenback/docker-gateway/internal/config"
	"github.com/rusenback/docker-gateway/internal/docker"
)

func main() {
	command := "serve"
	args := os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		command, args = args[0], args[1:]
	}

	var err error
	switch command {
	case "serve":
		err = serve(args)
	case "audit":
		err = showAudit(args)
	case "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Docker gateway")
	fmt.Println("Usage: gateway [command] [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  serve [--env <file>]            Run the HTTP gateway (default)")
	fmt.Println("  audit [--env <file>] [-n <N>]   Print the latest start/stop audit entries")
}

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	envFile := fs.String("env", ".env", "optional dotenv file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	dockerCfg := docker.DefaultConfig()
	dockerCfg.Host = cfg.DockerHost
	dockerCfg.Timeout = cfg.DockerTimeout
	dockerCfg.TLSVerify = cfg.DockerTLS
	dockerCfg.CertPath = cfg.DockerCertPath
	client, err := docker.NewClient(dockerCfg)
	if err != nil {
		return fmt.Errorf("failed to create docker client: %w", err)
	}
	defer client.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.DockerTimeout)
	if err := client.Ping(pingCtx); err != nil {
		logger.Warn("docker daemon not reachable yet", "host", cfg.DockerHost, "err", err)
	} else {
		logger.Info("connected to docker", "host", cfg.DockerHost)
	}
	cancel()

	opts := api.ServerOptions{Logger: logger}
	if cfg.AuditDBPath != "" {
		store, err := audit.NewStore(cfg.AuditDBPath, logger)
		if err != nil {
			return fmt.Errorf("failed to open audit store: %w", err)
		}
		defer store.Close()
		opts.Audit = store
	}

	srv := api.NewServer(client, cfg, opts)
	errc := srv.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err, ok := <-errc:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case s := <-sig:
		logger.Info("shutting down", "signal", s.String())
	}

	if err := srv.Stop(context.Background()); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func showAudit(args []string) error {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	envFile := fs.String("env", ".env", "optional dotenv file")
	limit := fs.Int("n", 20, "number of entries to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}
	if cfg.AuditDBPath == "" {
		return fmt.Errorf("AUDIT_DB_PATH is not set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	store, err := audit.NewStore(cfg.AuditDBPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open audit store: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(*limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tCONTAINER\tNAME\tOUTCOME\tREQUEST")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format(time.DateTime),
			e.Action, e.ContainerID, e.ContainerName, e.Outcome, e.RequestID)
	}
	return w.Flush()
}
