package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crestline-systems/crestline-cli/internal/auth"
	"github.com/crestline-systems/crestline-cli/internal/client"
	"github.com/crestline-systems/crestline-cli/pkg/output"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage authentication with the Crestline backend",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the Crestline backend",
	Long:  "Exchange client credentials for an access token and save it",
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID, _ := cmd.Flags().GetString("client-id")
		clientSecret, _ := cmd.Flags().GetString("client-secret")
		apiURL, _ := cmd.Flags().GetString("api-url")

		if apiURL == "" || !cmd.Flags().Changed("api-url") {
			apiURL = settings.API.URL
		}

		if clientID == "" {
			return fmt.Errorf("client-id is required")
		}
		if clientSecret == "" {
			return fmt.Errorf("client-secret is required")
		}

		c := client.New(apiURL,
			client.WithTimeout(settings.API.Timeout),
			client.WithLogger(logger),
		)
		svc := auth.NewService(auth.NewRestRepository(c, settings.API.AuthPath))

		token, err := svc.Login(cmd.Context(), clientID, clientSecret)
		if err != nil {
			if client.StatusCode(err) == 401 {
				return fmt.Errorf("invalid client credentials")
			}
			return fmt.Errorf("login failed: %w", err)
		}

		profile, _ := cmd.Flags().GetString("profile")
		if profile == "" {
			profile = "default"
		}

		refreshToken := ""
		if token.RefreshToken != nil {
			refreshToken = *token.RefreshToken
		}
		if err := creds.SaveProfile(profile, apiURL, token.AccessToken, refreshToken); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}

		output.Success("Successfully logged in as %s", clientID)
		if token.ExpiresIn != nil {
			output.Info("Token expires in %d seconds", *token.ExpiresIn)
		}
		if token.Scope != nil {
			output.Info("Granted scope: %s", *token.Scope)
		}
		output.Info("Profile '%s' saved", profile)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from the Crestline backend",
	Long:  "Remove stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, _ := cmd.Flags().GetString("profile")
		if profile == "" {
			profile = creds.CurrentProfile
		}

		if err := creds.RemoveProfile(profile); err != nil {
			return err
		}

		output.Success("Successfully logged out from profile '%s'", profile)
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	Long:  "Show the current profile and whether a token is stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, _ := cmd.Flags().GetString("profile")
		p, err := creds.GetProfile(profile)
		if err != nil {
			return fmt.Errorf("not logged in: %w", err)
		}

		if profile == "" {
			profile = creds.CurrentProfile
		}

		output.Info("Profile: %s", profile)
		output.Info("API URL: %s", p.APIURL)
		if p.AccessToken != "" {
			output.Info("Access token: stored")
		} else {
			output.Warn("Access token: missing, run 'crestline auth login'")
		}
		if p.RefreshToken != "" {
			output.Info("Refresh token: stored")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	authLoginCmd.Flags().String("client-id", "", "OAuth client ID")
	authLoginCmd.Flags().String("client-secret", "", "OAuth client secret")
	authLoginCmd.Flags().String("api-url", "", "Backend base URL (default from config/env)")
}
