package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crestline-systems/crestline-cli/internal/client"
	"github.com/crestline-systems/crestline-cli/pkg/output"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Raw API calls",
	Long:  "Issue raw requests against the Crestline backend using the stored token",
}

var apiGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "GET a path and print the JSON response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := profileClient(cmd)
		if err != nil {
			return err
		}
		extra, err := headerFlags(cmd)
		if err != nil {
			return err
		}

		var resp json.RawMessage
		if err := c.GetJSON(cmd.Context(), args[0], extra, &resp); err != nil {
			return err
		}
		output.RawJSON(resp)
		return nil
	},
}

var apiPostCmd = &cobra.Command{
	Use:   "post <path>",
	Short: "POST a JSON or form body and print the JSON response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBodyRequest(cmd, args[0], false)
	},
}

var apiPutCmd = &cobra.Command{
	Use:   "put <path>",
	Short: "PUT a JSON or form body and print the JSON response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBodyRequest(cmd, args[0], true)
	},
}

var apiDeleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "DELETE a path and print the JSON response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := profileClient(cmd)
		if err != nil {
			return err
		}
		extra, err := headerFlags(cmd)
		if err != nil {
			return err
		}

		var resp json.RawMessage
		if err := c.DeleteJSON(cmd.Context(), args[0], extra, &resp); err != nil {
			return err
		}
		output.RawJSON(resp)
		return nil
	},
}

func runBodyRequest(cmd *cobra.Command, path string, put bool) error {
	c, err := profileClient(cmd)
	if err != nil {
		return err
	}
	extra, err := headerFlags(cmd)
	if err != nil {
		return err
	}

	data, _ := cmd.Flags().GetString("data")
	formPairs, _ := cmd.Flags().GetStringArray("form")

	if data != "" && len(formPairs) > 0 {
		return fmt.Errorf("--data and --form are mutually exclusive")
	}

	var resp json.RawMessage

	if len(formPairs) > 0 {
		fields, err := formFlags(formPairs)
		if err != nil {
			return err
		}
		if put {
			err = c.PutForm(cmd.Context(), path, fields, extra, &resp)
		} else {
			err = c.PostForm(cmd.Context(), path, fields, extra, &resp)
		}
		if err != nil {
			return err
		}
		output.RawJSON(resp)
		return nil
	}

	var body json.RawMessage
	if data != "" {
		if err := json.Unmarshal([]byte(data), &body); err != nil {
			return fmt.Errorf("invalid JSON in --data: %w", err)
		}
	}

	if put {
		err = c.PutJSON(cmd.Context(), path, body, extra, &resp)
	} else {
		err = c.PostJSON(cmd.Context(), path, body, extra, &resp)
	}
	if err != nil {
		return err
	}
	output.RawJSON(resp)
	return nil
}

// profileClient builds a client for the selected profile, attaching the
// stored bearer token unless --no-auth is set.
func profileClient(cmd *cobra.Command) (*client.Client, error) {
	profile, _ := cmd.Flags().GetString("profile")
	p, err := creds.GetProfile(profile)
	if err != nil {
		return nil, fmt.Errorf("not logged in: %w", err)
	}

	c := client.New(p.APIURL,
		client.WithTimeout(settings.API.Timeout),
		client.WithLogger(logger),
	)

	if noAuth, _ := cmd.Flags().GetBool("no-auth"); noAuth {
		return c, nil
	}
	if p.AccessToken == "" {
		return nil, fmt.Errorf("no access token stored, run 'crestline auth login'")
	}
	return c.WithToken(p.AccessToken), nil
}

func headerFlags(cmd *cobra.Command) ([]client.Header, error) {
	raw, _ := cmd.Flags().GetStringArray("header")
	headers := make([]client.Header, 0, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, fmt.Errorf("invalid header %q, expected 'Name: Value'", h)
		}
		headers = append(headers, client.Header{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
	return headers, nil
}

func formFlags(pairs []string) ([]client.FormField, error) {
	fields := make([]client.FormField, 0, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid form field %q, expected 'key=value'", p)
		}
		fields = append(fields, client.FormField{Key: key, Value: value})
	}
	return fields, nil
}

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.AddCommand(apiGetCmd)
	apiCmd.AddCommand(apiPostCmd)
	apiCmd.AddCommand(apiPutCmd)
	apiCmd.AddCommand(apiDeleteCmd)

	apiCmd.PersistentFlags().StringArray("header", nil, "extra header 'Name: Value' (repeatable)")
	apiCmd.PersistentFlags().Bool("no-auth", false, "do not send the stored bearer token")

	for _, c := range []*cobra.Command{apiPostCmd, apiPutCmd} {
		c.Flags().String("data", "", "JSON request body")
		c.Flags().StringArray("form", nil, "form field 'key=value' (repeatable)")
	}
}
