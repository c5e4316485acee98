package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/services"
)

var typesJSON bool

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List registered resource types",
	Args:  cobra.NoArgs,
	RunE:  runTypes,
}

func init() {
	typesCmd.Flags().BoolVar(&typesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, _ []string) error {
	if schemaService == nil {
		return errors.New("schema service not configured")
	}

	types := schemaService.List()
	if typesJSON {
		return services.Render(cmd.OutOrStdout(), types, domain.FormatPretty)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tPATH\tBASE")
	for _, t := range types {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Name, t.Type, dash(t.Path), dash(t.Base))
	}
	return w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
