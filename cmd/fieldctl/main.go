// Command fieldctl signs and sends automation gateway requests and checks
// outbound webhook signatures.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fieldctl",
		Short:         "Tools for the fieldpro automation gateway",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(sendCmd())
	rootCmd.AddCommand(verifyCmd())
	rootCmd.AddCommand(schemaCmd())

	return rootCmd
}

// readBody reads the request body from --file, or stdin when it is "-".
func readBody(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func apiKeyFlag(cmd *cobra.Command) (string, error) {
	key, _ := cmd.Flags().GetString("key")
	if key == "" {
		key = os.Getenv("FIELDPRO_API_KEY")
	}
	if key == "" {
		return "", fmt.Errorf("an api key is required (--key or FIELDPRO_API_KEY)")
	}
	return key, nil
}
