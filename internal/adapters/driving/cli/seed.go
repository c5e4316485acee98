package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/projector/internal/example"
	"github.com/custodia-labs/projector/internal/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the example dataset",
	Long: `Save the example blog, entry, comment, author, tag, project, and company
records into the record store. Existing records with the same ids are replaced.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if recordStore == nil {
		return errors.New("record store not configured")
	}

	defer logger.Timed("seed")()
	n, err := example.Seed(cmd.Context(), recordStore)
	if err != nil {
		return err
	}
	cmd.Printf("Seeded %d records\n", n)
	return nil
}
