package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Write records",
	Long:  `Store or remove records. Records are written as JSON:API resource documents.`,
}

var recordPutCmd = &cobra.Command{
	Use:   "put <file|->",
	Short: "Store a record from a JSON:API resource document",
	Long: `Parse a JSON:API resource document and store it as a record.
Use - to read the document from stdin.

Example:
  echo '{"data":{"type":"taggedItem","id":"3","attributes":{"tag":"sql"}}}' | projector record put -`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordPut,
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete <type> <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE:  runRecordDelete,
}

func init() {
	recordCmd.AddCommand(recordPutCmd)
	recordCmd.AddCommand(recordDeleteCmd)
	rootCmd.AddCommand(recordCmd)
}

func runRecordPut(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	body, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	rec, err := recordService.Put(cmd.Context(), body)
	if err != nil {
		return err
	}
	cmd.Printf("Stored %s\n", rec.Ref().Key())
	return nil
}

func runRecordDelete(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	if err := recordService.Delete(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Deleted %s %s\n", args[0], args[1])
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		body, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return body, nil
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return body, nil
}
