package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sightglass/provenance/internal/lineage"
	"github.com/sightglass/provenance/internal/model"
	"github.com/sightglass/provenance/internal/record"
	"github.com/spf13/cobra"
)

var lineageCmd = &cobra.Command{
	Use:   "lineage <record.json>",
	Short: "Render a provenance record as a lineage tree",
	Long: `Lineage reads a serialized provenance record and prints the indented
tree of operations that produced the artifact. Pass "-" to read the record
from stdin.`,
	Example: `  sgprov lineage artifact.prov.json
  cat artifact.prov.json | sgprov lineage -
  sgprov lineage artifact.prov.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		node, err := loadRecord(args[0])
		if err != nil {
			return err
		}

		lines := lineage.Render(node)
		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(lines)
		}
		for _, line := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lineageCmd)
}

// loadRecord reads and deserializes a provenance record from a file, or
// from stdin when path is "-".
func loadRecord(path string) (model.Node, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}
	node, err := record.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return node, nil
}
