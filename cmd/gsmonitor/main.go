package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gsmonitor/internal/logging"
	"gsmonitor/internal/maintain"
	"gsmonitor/internal/monitor"
	"gsmonitor/internal/probe"
	"gsmonitor/internal/restore"
	"gsmonitor/internal/server"
	"gsmonitor/internal/settings"
)

const accessLogName = "access.log"

func main() {
	var (
		configPath = flag.String("config", settings.DefaultPath, "path to the settings file (JSON)")
		logDir     = flag.String("logdir", settings.DefaultLogDir, "directory for the access log and prunable log files")
		statusAddr = flag.String("status", "", "optional listen address for the status API (monitor action only)")
	)
	flag.Parse()

	action := flag.Arg(0)
	if action == "" {
		action = "monitor"
	}

	switch action {
	case "monitor", "check", "maintain", "config":
	default:
		printUsage()
		os.Exit(1)
	}

	cfg, err := settings.LoadOrCreate(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gsmonitor: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(filepath.Join(*logDir, accessLogName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "gsmonitor: %v\n", err)
		os.Exit(1)
	}

	prober := probe.New(time.Duration(cfg.Timeout)*time.Second, logger)
	maintainer := maintain.New(*logDir, logger)

	switch action {
	case "monitor":
		mon := monitor.New(cfg, prober, restore.New(logger), maintainer, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			mon.Stop()
		}()

		if *statusAddr != "" {
			srv := server.New(*statusAddr, mon)
			go func() {
				logger.Infof("Status API listening on %s", *statusAddr)
				if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Errorf("status server: %v", err)
				}
			}()
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}

		if err := mon.Run(); err != nil {
			logger.Fatalf("monitor loop: %v", err)
		}

	case "check":
		result := prober.Check(context.Background(), cfg.GSocketEndpoint)
		if !result.OK {
			os.Exit(1)
		}

	case "maintain":
		if err := maintainer.Run(cfg); err != nil {
			logger.Fatalf("maintenance: %v", err)
		}

	case "config":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			logger.Fatalf("encode settings: %v", err)
		}
		fmt.Println(string(data))
	}
}

func printUsage() {
	fmt.Println("Usage: gsmonitor [monitor|check|maintain|config]")
	fmt.Println("  monitor  - Start continuous monitoring (default)")
	fmt.Println("  check    - Check gsocket access once")
	fmt.Println("  maintain - Perform maintenance tasks")
	fmt.Println("  config   - Show current configuration")
}
