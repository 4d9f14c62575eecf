package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoobzio/knob"
)

func exportCmd() *cobra.Command {
	var (
		file   string
		keys   []string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print a preset of document properties",
		Long: `Bind each --key of the document as an input and print the exported
preset. Keys are gjson paths such as "speed" or "camera.fov".`,
		Example: `  knob export --file scene.json --key speed --key camera.fov --format yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, pane, err := bindInputs(file, keys)
			if err != nil {
				return err
			}
			defer pane.Dispose()

			data, err := knob.MarshalPreset(knob.CodecFor(format), pane.ExportPreset())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON document to read")
	cmd.Flags().StringSliceVarP(&keys, "key", "k", nil, "Property to export (repeatable)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}
