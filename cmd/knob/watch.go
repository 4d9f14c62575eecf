package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/zoobzio/knob"
	kprom "github.com/zoobzio/knob/pkg/prometheus"
)

func watchCmd() *cobra.Command {
	var (
		file        string
		preset      string
		keys        []string
		format      string
		debounce    time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Hot-reload a preset file into a document",
		Long: `Bind the document properties named by --key (or by the keys of the
preset file) and import the preset every time the preset file changes.
The document is saved after every import. A preset that fails to decode
leaves the document as it was.`,
		Example: `  knob watch --file scene.json --preset tuning.yaml --metrics-addr :9090`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			codec := codecFor(format, preset)
			if len(keys) == 0 {
				data, err := os.ReadFile(preset)
				if err != nil {
					return fmt.Errorf("failed to read preset: %w", err)
				}
				p, err := knob.UnmarshalPreset(codec, data)
				if err != nil {
					return err
				}
				keys = presetKeys(nil, p)
			}

			var metrics knob.MetricsProvider = knob.NoOpMetricsProvider{}
			if metricsAddr != "" {
				reg := prometheus.NewRegistry()
				metrics = kprom.New(kprom.WithRegistry(reg))
				srv := &http.Server{
					Addr:              metricsAddr,
					Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						fmt.Fprintf(cmd.ErrOrStderr(), "metrics server: %s\n", err)
					}
				}()
				defer srv.Close()
			}

			doc, pane, err := bindInputs(file, keys, knob.WithContext(ctx), knob.WithMetrics(metrics))
			if err != nil {
				return err
			}
			defer pane.Do(pane.Dispose)

			out := cmd.OutOrStdout()
			pane.On(knob.EventChange, func(ev knob.PaneEvent) {
				fmt.Fprintf(out, "%s=%v\n", ev.PresetKey, ev.Value)
			})

			loader := knob.NewLoader(
				knob.NewFileWatcher(preset),
				func(_ context.Context, _, curr knob.Preset) error {
					pane.Do(func() { pane.ImportPreset(curr) })
					return doc.Save(file)
				},
			).
				Codec(codec).
				Debounce(debounce).
				Metrics(metrics)

			if err := loader.Start(ctx); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "initial preset rejected: %s\n", err)
			}

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON document to update")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "Preset file to watch (JSON or YAML)")
	cmd.Flags().StringSliceVarP(&keys, "key", "k", nil, "Properties to bind (default: keys of the preset file)")
	cmd.Flags().StringVar(&format, "format", "", "Preset format: json or yaml")
	cmd.Flags().DurationVar(&debounce, "debounce", knob.DefaultDebounce, "Wait this long for changes to settle")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("preset")

	return cmd
}
