package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/crestline-systems/crestline-cli/pkg/output"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Access token helpers",
	Long:  "Inspect the stored access token",
}

var tokenInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Decode the stored access token",
	Long:  "Decode the stored access token's JWT claims without verifying its signature",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, _ := cmd.Flags().GetString("profile")
		p, err := creds.GetProfile(profile)
		if err != nil {
			return fmt.Errorf("not logged in: %w", err)
		}
		if p.AccessToken == "" {
			return fmt.Errorf("no access token stored, run 'crestline auth login'")
		}

		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(p.AccessToken, claims); err != nil {
			output.Info("Token is opaque (not a JWT)")
			return nil
		}

		outputFormat, _ := cmd.Flags().GetString("output")
		if outputFormat == "json" {
			return output.JSON(claims)
		}

		keys := make([]string, 0, len(claims))
		for k := range claims {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		table := output.NewTable([]string{"CLAIM", "VALUE"})
		for _, k := range keys {
			table.AddRow([]string{k, fmt.Sprintf("%v", claims[k])})
		}
		table.Render()

		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			if time.Now().After(exp.Time) {
				output.Warn("Token expired at %s", exp.Format(time.RFC3339))
			} else {
				output.Info("Token expires at %s", exp.Format(time.RFC3339))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenInspectCmd)
}
