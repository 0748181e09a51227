package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sagarc03/roster/config"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table",
	Long:  `Print every method and path pattern the server answers for the enabled resources.`,
	Args:  cobra.NoArgs,
	RunE:  runRoutes,
}

func init() {
	routesCmd.Flags().StringSlice("resources", nil, "resources to include (default: users,cars)")
	rootCmd.AddCommand(routesCmd)
}

func runRoutes(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	handler, err := newHandler(cfg)
	if err != nil {
		return err
	}

	routes, err := handler.Routes()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "METHOD\tPATTERN")
	for _, r := range routes {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", r.Method, r.Pattern)
	}
	return w.Flush()
}
