// Command knob edits and observes properties of JSON documents through
// knob bindings: presets can be exported, imported, hot-reloaded from a
// file, and properties can be sampled on an interval.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/knob"
	"github.com/zoobzio/knob/pkg/jsondoc"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	err := newRootCmd().Execute()
	capitan.Shutdown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "knob",
		Short: "Bind, tune and observe properties of JSON documents",
		Long: `knob binds properties of a JSON document to typed inputs and monitors.

Inputs round-trip through presets, flat maps of preset key to value, that
can be exported, imported or hot-reloaded from a JSON or YAML file.
Monitors sample properties on an interval into a fixed-size history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if verbose {
				logSignals(cmd.ErrOrStderr())
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pane and loader events to stderr")

	rootCmd.AddCommand(
		exportCmd(),
		importCmd(),
		monitorCmd(),
		watchCmd(),
		versionCmd(),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "knob %s (%s)\n", version, commit)
		},
	}
}

// logSignals prints every pane and loader signal.
func logSignals(w io.Writer) {
	capitan.Hook(knob.PaneBindingAdded, signalPrinter(w, "knob.pane.binding.added"))
	capitan.Hook(knob.PaneInputChanged, signalPrinter(w, "knob.pane.input.changed"))
	capitan.Hook(knob.PanePresetImported, signalPrinter(w, "knob.pane.preset.imported"))
	capitan.Hook(knob.PanePresetExported, signalPrinter(w, "knob.pane.preset.exported"))
	capitan.Hook(knob.PaneRefreshed, signalPrinter(w, "knob.pane.refreshed"))
	capitan.Hook(knob.PaneDisposed, signalPrinter(w, "knob.pane.disposed"))
	capitan.Hook(knob.LoaderStarted, signalPrinter(w, "knob.loader.started"))
	capitan.Hook(knob.LoaderStopped, signalPrinter(w, "knob.loader.stopped"))
	capitan.Hook(knob.LoaderStateChanged, signalPrinter(w, "knob.loader.state.changed"))
	capitan.Hook(knob.LoaderDecodeFailed, signalPrinter(w, "knob.loader.decode.failed"))
	capitan.Hook(knob.LoaderApplyFailed, signalPrinter(w, "knob.loader.apply.failed"))
	capitan.Hook(knob.LoaderApplySucceeded, signalPrinter(w, "knob.loader.apply.succeeded"))
}

// signalPrinter writes one line per event with the known fields it carries.
func signalPrinter(w io.Writer, name string) func(context.Context, *capitan.Event) {
	return func(_ context.Context, e *capitan.Event) {
		var fields []string
		if v, ok := knob.KeyTargetKey.From(e); ok {
			fields = append(fields, "key="+v)
		}
		if v, ok := knob.KeyPresetKey.From(e); ok {
			fields = append(fields, "preset_key="+v)
		}
		if v, ok := knob.KeyValue.From(e); ok {
			fields = append(fields, "value="+v)
		}
		if v, ok := knob.KeyNewState.From(e); ok {
			fields = append(fields, "state="+v)
		}
		if v, ok := knob.KeyError.From(e); ok {
			fields = append(fields, "error="+v)
		}
		if v, ok := knob.KeyCount.From(e); ok {
			fields = append(fields, fmt.Sprintf("count=%d", v))
		}
		fmt.Fprintf(w, "[%s] %s\n", name, strings.Join(fields, " "))
	}
}

// codecFor picks a codec from an explicit format or a file extension.
func codecFor(format, path string) knob.Codec {
	if format != "" {
		return knob.CodecFor(format)
	}
	return knob.CodecFor(filepath.Ext(path))
}

// bindInputs loads the document at path and binds keys as inputs.
func bindInputs(path string, keys []string, opts ...knob.Option) (*jsondoc.Document, *knob.Pane, error) {
	doc, err := jsondoc.Load(path)
	if err != nil {
		return nil, nil, err
	}
	pane := knob.New(opts...)
	for _, key := range keys {
		if _, err := pane.AddInput(doc, key, knob.InputParams{}); err != nil {
			pane.Dispose()
			return nil, nil, fmt.Errorf("bind %q: %w", key, err)
		}
	}
	return doc, pane, nil
}

// presetKeys returns keys, or the keys of preset when keys is empty.
func presetKeys(keys []string, preset knob.Preset) []string {
	if len(keys) > 0 {
		return keys
	}
	out := make([]string, 0, len(preset))
	for k := range preset {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
