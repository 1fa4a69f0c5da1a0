package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexwar/internal/core"
	"github.com/vovakirdan/hexwar/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hexwar SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own hot-seat match built from the config.
Finished matches are recorded in the server's database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.hexwar/host_key

Examples:
  hexwar serve                           # Listen on :23234 with auto-generated key
  hexwar serve --ssh :2222               # Listen on port 2222
  hexwar serve --host-key ./my_host_key  # Use specific host key
  hexwar serve --db ./matches.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger("hexwar-ssh")

	cfg, err := loadConfig()
	if err != nil {
		exitErr("%v", err)
	}
	// Every session gets its own seed unless one was pinned.
	factory := func(seed int64) (*core.Core, string, error) {
		if cfg.Seed != 0 {
			seed = cfg.Seed
		}
		return newGame(cfg, seed, logger.With("match", seed))
	}

	serverCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}
	server, err := tui.NewSSHServer(serverCfg, factory, logger)
	if err != nil {
		exitErr("creating server: %v", err)
	}

	fmt.Printf("Starting hexwar SSH server on %s\n", serverCfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		exitErr("server: %v", err)
	}
}
