package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"squarebuzz/internal/clients"
	"squarebuzz/internal/config"
	"squarebuzz/internal/infra/authstore"
)

// NewLoginCmd exchanges an external credential for a bearer token and
// stores it locally for the game server to use.
func NewLoginCmd(configPath *string) *cobra.Command {
	var credential string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in against the identity service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Auth.URL == "" {
				return fmt.Errorf("auth service not configured")
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}

			authClient := clients.NewAuthClient(cfg.Auth.URL, nil)
			token, profile, err := authClient.Login(cmd.Context(), credential)
			if err != nil {
				return err
			}
			if err := store.Save(authstore.Credentials{
				Token:   token,
				Profile: profile,
				SavedAt: time.Now(),
			}); err != nil {
				return err
			}
			fmt.Printf("logged in as %s\n", profile.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&credential, "credential", "", "external identity credential to exchange")
	_ = cmd.MarkFlagRequired("credential")
	return cmd
}

// NewLogoutCmd clears the stored credentials.
func NewLogoutCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			return store.Clear()
		},
	}
}
