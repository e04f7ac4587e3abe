package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fieldpro.app/relay/internal/apikey"
)

// verifyCmd checks an outbound webhook delivery the way a receiver would.
func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a webhook delivery signature",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, _ := cmd.Flags().GetString("secret")
			timestamp, _ := cmd.Flags().GetString("timestamp")
			signature, _ := cmd.Flags().GetString("signature")
			tolerance, _ := cmd.Flags().GetDuration("tolerance")
			file, _ := cmd.Flags().GetString("file")

			body, err := readBody(cmd, file)
			if err != nil {
				return fmt.Errorf("reading body: %w", err)
			}

			if tolerance > 0 {
				if _, err := apikey.CheckTimestamp(timestamp, time.Now(), tolerance); err != nil {
					return err
				}
			}
			if err := apikey.VerifySignature(secret, timestamp, body, signature); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "signature ok")
			return nil
		},
	}

	cmd.Flags().StringP("secret", "s", "", "Endpoint signing secret")
	cmd.Flags().StringP("timestamp", "t", "", "X-Timestamp header value")
	cmd.Flags().String("signature", "", "X-Signature header value")
	cmd.Flags().Duration("tolerance", 0, "Reject timestamps further than this from now (0 skips the check)")
	cmd.Flags().StringP("file", "f", "-", "Body file, - for stdin")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("timestamp")
	_ = cmd.MarkFlagRequired("signature")

	return cmd
}
