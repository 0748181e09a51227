package main

import (
	"errors"

	"github.com/sagarc03/roster/clientcli"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [kind] <id>",
	Short: "Show one record",
	Long: `Show one record by id.

Examples:
  roster-cli get users 1
  roster-cli get cars 2 --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	kind, rest, err := s.config.ResolveKind(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return errors.New("get takes exactly one id")
	}

	ids, err := clientcli.ParseIDs(rest)
	if err != nil {
		return err
	}

	rec, err := s.client.Get(cmd.Context(), kind, ids[0])
	if err != nil {
		return err
	}

	return s.formatter().FormatRecord(cmd.OutOrStdout(), rec)
}
