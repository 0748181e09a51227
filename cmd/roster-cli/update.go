package main

import (
	"github.com/sagarc03/roster/clientcli"
	"github.com/spf13/cobra"
)

var updateData string

var updateCmd = &cobra.Command{
	Use:   "update [kind] <id> [key=value...]",
	Short: "Update fields of a record",
	Long: `Update fields of a record. Fields not given keep their values.

Examples:
  roster-cli update users 1 name=Changed
  roster-cli update cars 2 --data '{"year":2022}'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVarP(&updateData, "data", "d", "", "fields to change as a JSON object")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	kind, rest, err := s.config.ResolveKind(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return clientcli.ErrNoIDs
	}
	ids, err := clientcli.ParseIDs(rest[:1])
	if err != nil {
		return err
	}

	patch, err := readFields(updateData, rest[1:])
	if err != nil {
		return err
	}

	rec, err := s.client.Update(cmd.Context(), kind, ids[0], patch)
	if err != nil {
		return err
	}

	return s.formatter().FormatRecord(cmd.OutOrStdout(), rec)
}
