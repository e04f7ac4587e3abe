package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"fieldpro.app/relay/internal/service"
)

func signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print the gateway headers for a request body",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := apiKeyFlag(cmd)
			if err != nil {
				return err
			}
			file, _ := cmd.Flags().GetString("file")
			body, err := readBody(cmd, file)
			if err != nil {
				return fmt.Errorf("reading body: %w", err)
			}

			req, err := service.SignRequest(key, body, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "X-API-Key: %s\n", req.APIKey)
			fmt.Fprintf(out, "X-Timestamp: %s\n", req.Timestamp)
			fmt.Fprintf(out, "X-Signature: %s\n", req.Signature)
			return nil
		},
	}

	cmd.Flags().StringP("key", "k", "", "API key (prefix.secret)")
	cmd.Flags().StringP("file", "f", "-", "Body file, - for stdin")

	return cmd
}

func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send [action]",
		Short: "Sign and POST an action to the gateway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := apiKeyFlag(cmd)
			if err != nil {
				return err
			}
			url, _ := cmd.Flags().GetString("url")
			data, _ := cmd.Flags().GetString("data")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			if !json.Valid([]byte(data)) {
				return fmt.Errorf("--data is not valid JSON")
			}
			body, err := json.Marshal(map[string]any{
				"action": args[0],
				"data":   json.RawMessage(data),
			})
			if err != nil {
				return err
			}

			signed, err := service.SignRequest(key, body, time.Now())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-API-Key", signed.APIKey)
			req.Header.Set("X-Timestamp", signed.Timestamp)
			req.Header.Set("X-Signature", signed.Signature)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return fmt.Errorf("sending request: %w", err)
			}
			defer resp.Body.Close()

			respBody, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading response: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", resp.Status)
			for _, h := range []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"} {
				if v := resp.Header.Get(h); v != "" {
					fmt.Fprintf(out, "%s: %s\n", h, v)
				}
			}
			fmt.Fprintf(out, "\n%s\n", respBody)

			if resp.StatusCode >= 300 {
				return fmt.Errorf("gateway returned %d", resp.StatusCode)
			}
			return nil
		},
	}

	cmd.Flags().StringP("key", "k", "", "API key (prefix.secret)")
	cmd.Flags().StringP("url", "u", "http://localhost:8080/api/integrations/n8n", "Gateway URL")
	cmd.Flags().StringP("data", "d", "{}", "Action data as JSON")
	cmd.Flags().Duration("timeout", 15*time.Second, "Request timeout")

	return cmd
}
