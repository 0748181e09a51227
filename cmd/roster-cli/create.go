package main

import (
	"errors"

	"github.com/sagarc03/roster"
	"github.com/sagarc03/roster/clientcli"
	"github.com/spf13/cobra"
)

var createData string

var createCmd = &cobra.Command{
	Use:   "create [kind] [key=value...]",
	Short: "Create a record",
	Long: `Create a record. The server assigns the id.

Fields are given as key=value pairs, which are sent as strings, or as a
JSON object with --data to send numbers, booleans or nested values.

Examples:
  roster-cli create users name="Ann Lee" email=ann@example.com
  roster-cli create cars --data '{"name":"Mazda","model":"3","year":2021}'`,
	Args: cobra.ArbitraryArgs,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createData, "data", "d", "", "record fields as a JSON object")
}

func runCreate(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	kind, rest, err := s.config.ResolveKind(args)
	if err != nil {
		return err
	}

	fields, err := readFields(createData, rest)
	if err != nil {
		return err
	}

	rec, err := s.client.Create(cmd.Context(), kind, fields)
	if err != nil {
		return err
	}

	return s.formatter().FormatRecord(cmd.OutOrStdout(), rec)
}

// readFields takes fields from --data or from key=value arguments, not both.
func readFields(data string, assignments []string) (roster.Fields, error) {
	if data != "" {
		if len(assignments) > 0 {
			return nil, errors.New("use either --data or key=value arguments, not both")
		}
		return clientcli.ParseData(data)
	}
	return clientcli.ParseAssignments(assignments)
}
