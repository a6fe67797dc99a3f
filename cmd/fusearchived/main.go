package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/TheronStein/fuse-archive.yazi/internal/config"
	"github.com/TheronStein/fuse-archive.yazi/internal/coordinator"
	"github.com/TheronStein/fuse-archive.yazi/internal/host"
	"github.com/TheronStein/fuse-archive.yazi/internal/log"
	"github.com/TheronStein/fuse-archive.yazi/internal/mount"
	"github.com/TheronStein/fuse-archive.yazi/internal/server"
	"github.com/TheronStein/fuse-archive.yazi/internal/store"
	"github.com/TheronStein/fuse-archive.yazi/internal/version"
)

func main() {
	cmd := &cli.Command{
		Name:      "fusearchived",
		Usage:     "Mount archives as browsable directories from yazi",
		ArgsUsage: "[serve|mount|unmount|list|cleanup]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file path",
				Value:   config.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "socket",
				Aliases: []string{"s"},
				Usage:   "Unix socket path for the daemon",
			},
			&cli.StringFlag{
				Name:    "mount-dir",
				Aliases: []string{"m"},
				Usage:   "Base directory for mount points",
			},
			&cli.StringFlag{
				Name:    "notifier",
				Aliases: []string{"n"},
				Usage:   "Notification channel: yazi or desktop",
			},
			&cli.BoolFlag{
				Name:  "smart-enter",
				Usage: "Open non-archive files instead of entering them",
			},
			&cli.StringFlag{
				Name:  "hovered",
				Usage: "Path of the hovered entry (client actions)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "version",
				Aliases: []string{"V"},
				Usage:   "Print version information",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	// Handle version flag
	if cmd.Bool("version") {
		fmt.Println(version.String())
		return nil
	}

	// Setup logging
	log.Setup(cmd.Bool("verbose"))

	// Load config file
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Merge CLI flags (CLI takes precedence)
	cfg.Merge(
		cmd.String("mount-dir"),
		cmd.String("socket"),
		cmd.String("notifier"),
	)
	if cmd.IsSet("smart-enter") {
		cfg.SmartEnter = cmd.Bool("smart-enter")
	}

	// Apply defaults
	cfg.ApplyDefaults()

	// Validate config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	action := cmd.Args().First()
	if action == "serve" {
		return serve(ctx, cfg)
	}
	return clientAction(cfg, action, cmd.String("hovered"))
}

func serve(ctx context.Context, cfg *config.Config) error {
	log.Info("starting daemon",
		"mount_dir", cfg.MountDir,
		"socket", cfg.SocketPath,
		"registry", cfg.RegistryPath,
		"smart_enter", cfg.SmartEnter,
	)

	// Ensure the mount base directory exists
	if err := os.MkdirAll(cfg.MountDir, 0755); err != nil {
		return fmt.Errorf("create mount directory: %w", err)
	}

	st := store.New()
	coord := coordinator.New(cfg, st, mount.NewFuseArchive())

	if cfg.StartupCleanup {
		cleaned, err := coord.StartupCleanup()
		if err != nil {
			log.Warn("startup cleanup failed", "error", err)
		} else if cleaned > 0 {
			log.Info("startup cleanup removed stale mounts", "count", cleaned)
		}
	}

	srv := server.New(coord, hostFactory(cfg))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := srv.Close(); err != nil {
			log.Warn("failed to close listener", "error", err)
		}
	}()

	return srv.ListenAndServe(cfg.SocketPath)
}

// hostFactory builds the per-request host surface. The yazi instance id
// travels with each request; the desktop notifier, when configured,
// wraps the same navigation host.
func hostFactory(cfg *config.Config) server.HostFactory {
	return func(yaziID string) host.Host {
		var h host.Host = host.NewYazi(yaziID)
		if cfg.Notifier == config.NotifierDesktop {
			desktop, err := host.NewDesktopNotifier(h)
			if err != nil {
				log.Warn("desktop notifier unavailable, using yazi", "error", err)
				return h
			}
			return desktop
		}
		return h
	}
}

// clientAction gathers host context and sends one request to the daemon.
func clientAction(cfg *config.Config, action, hoveredPath string) error {
	if action == "" {
		log.Warn("no action specified")
		fmt.Fprintln(os.Stderr, "no action specified (expected serve, mount, unmount, list or cleanup)")
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	req := server.Request{
		Action: action,
		YaziID: os.Getenv("YAZI_ID"),
		Cwd:    cwd,
	}

	if hoveredPath != "" {
		hovered := &server.HoveredEntry{
			Name: filepath.Base(hoveredPath),
			Path: hoveredPath,
		}
		if info, err := os.Stat(hoveredPath); err == nil {
			hovered.IsDir = info.IsDir()
		}
		req.Hovered = hovered
	}

	return server.Send(cfg.SocketPath, req)
}
