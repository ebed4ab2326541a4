package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/velachat/vela/internal/config"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configured endpoints and session state",
		RunE:  runStatus,
	}
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Println("vela status")
	fmt.Println(strings.Repeat("─", 40))
	fmt.Println()

	fmt.Printf("Server:    %s\n", cfg.Server)
	fmt.Printf("Identity:  %s\n", cfg.IdentityURL())
	fmt.Printf("Config:    %s\n", config.GlobalConfigPath())
	fmt.Printf("Data dir:  %s\n", cfg.DataDir())
	fmt.Println()

	// Session: report who the cached token belongs to without touching
	// the network.
	tokenPath := filepath.Join(xdg.StateHome, "vela", "token.json")
	data, err := os.ReadFile(tokenPath)
	if err != nil {
		fmt.Println("Session:   not signed in")
		return nil
	}

	var cached struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(data, &cached); err != nil || cached.User.Email == "" {
		fmt.Println("Session:   cached (unreadable)")
		return nil
	}

	fmt.Printf("Session:   %s\n", cached.User.Email)
	return nil
}
