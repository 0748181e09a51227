package main

import (
	"github.com/sagarc03/roster/clientcli"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [kind] <id> [id...]",
	Short: "Delete records",
	Long: `Delete one or more records of a kind.

Every id is attempted. The command fails if any delete failed.

Examples:
  roster-cli delete users 1
  roster-cli delete cars 1 2 3
  roster-cli delete -q users 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	kind, rest, err := s.config.ResolveKind(args)
	if err != nil {
		return err
	}
	ids, err := clientcli.ParseIDs(rest)
	if err != nil {
		return err
	}

	opts := clientcli.DeleteOptions{
		Kind: kind,
		IDs:  ids,
	}

	results, err := s.client.Delete(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if err := s.formatter().FormatDelete(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	// Return error if any deletes failed
	if clientcli.HasDeleteErrors(results) {
		return &exitError{code: 1}
	}

	return nil
}
