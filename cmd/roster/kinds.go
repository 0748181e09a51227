package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sagarc03/roster/config"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the enabled resource kinds",
	Args:  cobra.NoArgs,
	RunE:  runKinds,
}

func init() {
	kindsCmd.Flags().StringSlice("resources", nil, "resources to include (default: users,cars)")
	rootCmd.AddCommand(kindsCmd)
}

func runKinds(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	kinds, err := cfg.Resources.Kinds()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KIND\tLABEL\tFIELDS\tSEEDED")
	for _, k := range kinds {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", k.Name, k.Label, strings.Join(k.Fields, ","), len(k.Seed))
	}
	return w.Flush()
}
