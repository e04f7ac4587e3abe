package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"fieldpro.app/relay/internal/service"
)

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [action]",
		Short: "Print the JSON Schema of one or every gateway action",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemas := service.ActionSchemas()

			var out any = schemas
			if len(args) == 1 {
				out = nil
				for _, s := range schemas {
					if s.Action == args[0] {
						out = s
						break
					}
				}
				if out == nil {
					return fmt.Errorf("unknown action %q", args[0])
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
