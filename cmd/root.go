// Package cmd provides the CLI commands for vela.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/velachat/vela/internal/api"
	"github.com/velachat/vela/internal/auth"
	"github.com/velachat/vela/internal/binder"
	"github.com/velachat/vela/internal/chatstore"
	"github.com/velachat/vela/internal/config"
	"github.com/velachat/vela/internal/debug"
	"github.com/velachat/vela/internal/pubsub"
	"github.com/velachat/vela/internal/tui"
	"github.com/velachat/vela/internal/ws"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vela",
		Short: "Terminal client for a vela chat backend",
		Long: `vela is a terminal chat client. It signs in against the backend,
lists your chats in a sidebar, and holds a live connection to the
selected chat so replies stream in as they happen.`,
		RunE: runTUI,
	}

	cmd.Flags().Bool("debug", false, "Enable debug logging under the data directory")
	cmd.Flags().String("server", "", "Chat backend base URL (overrides config)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	debugMode, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("getting debug flag: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.Server = server
	}

	if debugMode || (cfg.Options != nil && cfg.Options.Debug) {
		logPath := filepath.Join(cfg.DataDir(), "debug.log")
		if debugErr := debug.Enable(logPath); debugErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to enable debug logging: %v\n", debugErr)
		} else {
			defer debug.Disable()
			fmt.Fprintf(os.Stderr, "Debug: %s\n", logPath)
		}
	}

	hub := pubsub.NewHub()
	defer hub.Shutdown()

	store := chatstore.New(hub.Chat)

	tokenPath := filepath.Join(xdg.StateHome, "vela", "token.json")
	creds := auth.NewClient(cfg.IdentityURL(), tokenPath, hub.Auth)
	_, signedIn := creds.Restore()

	gateway := api.NewClient(cfg.Server, creds)
	conn := ws.NewManager(cfg.Server, &ws.WebsocketDialer{}, hub.Conn)
	bind := binder.New(store, gateway, creds, conn)
	defer bind.Unbind()

	return tui.Run(tui.Deps{
		Hub:    hub,
		Store:  store,
		API:    gateway,
		Auth:   creds,
		Binder: bind,
		Conn:   conn,
	}, signedIn)
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
