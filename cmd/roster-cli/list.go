package main

import (
	"fmt"

	"github.com/sagarc03/roster/clientcli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [kind]",
	Short: "List every record of a kind",
	Long: `List every record of a kind in id order.

Examples:
  roster-cli list users
  roster-cli list cars --json
  roster-cli list users -q
  roster-cli list --kind cars`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	kind, rest, err := s.config.ResolveKind(args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: %q", clientcli.ErrInvalidKind, rest[0])
	}

	records, err := s.client.List(cmd.Context(), kind)
	if err != nil {
		return err
	}

	return s.formatter().FormatRecords(cmd.OutOrStdout(), kind, records)
}
