package main

import (
	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the server is running",
	Args:  cobra.NoArgs,
	RunE:  runPing,
}

func runPing(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	result, err := s.client.Ping(cmd.Context())
	if err != nil {
		return err
	}

	return s.formatter().FormatPing(cmd.OutOrStdout(), result)
}
