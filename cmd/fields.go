package cmd

import (
	"fmt"

	"employee-sync/feature/employee/mapping"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

// fieldsCmd prints the field table.
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Print the DataHub to directory field mapping",
	Long:  `Prints every mapped DataHub attribute with the directory column it is written to, as YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := renderFields()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func renderFields() (string, error) {
	data, err := yaml.Marshal(map[string][]mapping.Descriptor{"fields": mapping.Descriptors()})
	if err != nil {
		return "", fmt.Errorf("failed to encode field table: %w", err)
	}
	return string(data), nil
}

func init() {
	RootCmd.AddCommand(fieldsCmd)
}
