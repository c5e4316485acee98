package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
	"github.com/custodia-labs/projector/internal/core/services"
)

var describeJSON bool

var describeCmd = &cobra.Command{
	Use:   "describe <type>",
	Short: "Describe a resource type",
	Long:  `Show the attributes, computed fields, relationships, and polymorphism of a resource type.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	describeCmd.Flags().BoolVar(&describeJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	if schemaService == nil {
		return errors.New("schema service not configured")
	}

	desc, err := schemaService.Describe(args[0])
	if err != nil {
		return err
	}
	if describeJSON {
		return services.Render(cmd.OutOrStdout(), desc, domain.FormatPretty)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", desc.Name, desc.Type)
	if desc.Path != "" {
		fmt.Fprintf(out, "  path: %s\n", desc.Path)
	}
	if desc.Base != "" {
		fmt.Fprintf(out, "  subtype of: %s\n", desc.Base)
	}
	if len(desc.DefaultIncludes) > 0 {
		fmt.Fprintf(out, "  default includes: %s\n", strings.Join(desc.DefaultIncludes, ","))
	}

	if len(desc.Attributes) > 0 {
		fmt.Fprintln(out, "\nAttributes")
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, a := range desc.Attributes {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", a.Key, a.Placement, fieldFlags(a.Computed, a.Gated, false))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(desc.Relationships) > 0 {
		fmt.Fprintln(out, "\nRelationships")
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, rel := range desc.Relationships {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", rel.Key, target(rel), fieldFlags(rel.Computed, rel.Gated, rel.Includable))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if desc.Discriminator != "" {
		fmt.Fprintf(out, "\nPolymorphic on %s\n", desc.Discriminator)
		discs := make([]string, 0, len(desc.SubtypeNames))
		for disc := range desc.SubtypeNames {
			discs = append(discs, disc)
		}
		sort.Strings(discs)
		for _, disc := range discs {
			fmt.Fprintf(out, "  %s -> %s\n", disc, desc.SubtypeNames[disc])
		}
	}
	return nil
}

func target(rel driving.RelationshipDescription) string {
	if rel.ToMany {
		return "[]" + rel.Target
	}
	return rel.Target
}

func fieldFlags(computed, gated, includable bool) string {
	var flags []string
	if computed {
		flags = append(flags, "computed")
	}
	if gated {
		flags = append(flags, "gated")
	}
	if includable {
		flags = append(flags, "includable")
	}
	return strings.Join(flags, ",")
}
