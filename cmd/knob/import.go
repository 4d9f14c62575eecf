package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoobzio/knob"
)

func importCmd() *cobra.Command {
	var (
		file   string
		preset string
		keys   []string
		format string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Write a preset into a document",
		Long: `Read a preset file, bind the matching document properties as inputs,
import the preset and save the document. Without --key every preset key is
imported. The preset format follows the file extension unless --format is
given.`,
		Example: `  knob import --file scene.json --preset night.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(preset)
			if err != nil {
				return fmt.Errorf("failed to read preset: %w", err)
			}
			p, err := knob.UnmarshalPreset(codecFor(format, preset), data)
			if err != nil {
				return err
			}

			doc, pane, err := bindInputs(file, presetKeys(keys, p))
			if err != nil {
				return err
			}
			defer pane.Dispose()

			pane.ImportPreset(p)
			if err := doc.Save(file); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d keys into %s\n", len(pane.Inputs()), file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON document to update")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "Preset file (JSON or YAML)")
	cmd.Flags().StringSliceVarP(&keys, "key", "k", nil, "Limit the import to these keys (repeatable)")
	cmd.Flags().StringVar(&format, "format", "", "Preset format: json or yaml")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("preset")

	return cmd
}
