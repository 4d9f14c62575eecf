package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/zoobzio/knob"
	"github.com/zoobzio/knob/pkg/jsondoc"
)

func monitorCmd() *cobra.Command {
	var (
		file     string
		keys     []string
		interval time.Duration
		buffer   int
		count    int
		follow   bool
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Sample document properties on an interval",
		Long: `Bind each --key as a monitor and print every sample. With --follow the
document is reloaded whenever the file changes, so samples track the file.
The command stops after --count samples per key, or on interrupt.`,
		Example: `  knob monitor --file stats.json --key fps --key status --interval 250ms`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval <= 0 && count > 0 {
				return fmt.Errorf("--count %d needs a positive --interval, got %v", count, interval)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			doc, err := jsondoc.Load(file)
			if err != nil {
				return err
			}
			if follow {
				if err := followFile(ctx, file, doc); err != nil {
					return err
				}
			}
			return runMonitor(ctx, cmd.OutOrStdout(), doc, keys, knob.MonitorParams{
				BufferSize: buffer,
				Interval:   &interval,
			}, count)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON document to sample")
	cmd.Flags().StringSliceVarP(&keys, "key", "k", nil, "Property to sample (repeatable)")
	cmd.Flags().DurationVarP(&interval, "interval", "i", knob.DefaultMonitorInterval, "Sampling interval")
	cmd.Flags().IntVar(&buffer, "buffer", 0, "History size per key (default: line count)")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Stop after this many samples per key (0: run until interrupted)")
	cmd.Flags().BoolVar(&follow, "follow", true, "Reload the document when the file changes")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

// followFile replaces the document contents on every change of path.
func followFile(ctx context.Context, path string, doc *jsondoc.Document) error {
	changes, err := knob.NewFileWatcher(path).Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for data := range changes {
			_ = doc.Replace(data) //nolint:errcheck // Partial writes are skipped until the next change
		}
	}()
	return nil
}

// runMonitor samples keys until each has been sampled count times after
// the initial read, or until ctx is done.
func runMonitor(ctx context.Context, w io.Writer, obj knob.Object, keys []string, params knob.MonitorParams, count int) error {
	pane := knob.New(knob.WithContext(ctx))

	var (
		once    sync.Once
		done    = make(chan struct{})
		samples int
	)
	pane.On(knob.EventUpdate, func(ev knob.PaneEvent) {
		fmt.Fprintf(w, "%s=%s\n", ev.Key, latest(ev.Value))
		samples++
		if count > 0 && samples >= count*len(keys) {
			once.Do(func() { close(done) })
		}
	})

	var bindErr error
	pane.Do(func() {
		for _, key := range keys {
			c, err := pane.AddMonitor(obj, key, params)
			if err != nil {
				bindErr = fmt.Errorf("bind %q: %w", key, err)
				return
			}
			fmt.Fprintf(w, "%s=%s\n", key, latest(c.RawValue()))
		}
	})
	defer pane.Do(pane.Dispose)
	if bindErr != nil {
		return bindErr
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
	return nil
}

// latest formats the newest sample of a monitor buffer.
func latest(buf any) string {
	var (
		s  string
		ok bool
	)
	switch b := buf.(type) {
	case knob.Buffer[float64]:
		l := b.Latest()
		s, ok = fmt.Sprint(l.Value), l.OK
	case knob.Buffer[bool]:
		l := b.Latest()
		s, ok = fmt.Sprint(l.Value), l.OK
	case knob.Buffer[string]:
		l := b.Latest()
		s, ok = strings.TrimSpace(l.Value), l.OK
	default:
		return fmt.Sprint(buf)
	}
	if !ok {
		return "-"
	}
	return s
}
