package knob

import "context"

// ChannelWatcher turns a byte channel into a Watcher. Useful for tests and
// for hosts that already receive presets some other way.
type ChannelWatcher struct {
	ch   <-chan []byte
	sync bool
}

// NewChannelWatcher creates a ChannelWatcher that relays ch through its own
// goroutine until ctx is canceled.
func NewChannelWatcher(ch <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{ch: ch}
}

// NewSyncChannelWatcher creates a ChannelWatcher that hands ch out as is.
// Pair it with Loader.SyncMode.
func NewSyncChannelWatcher(ch <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{ch: ch, sync: true}
}

// Watch returns the relayed channel.
func (w *ChannelWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	if w.sync {
		return w.ch, nil
	}
	return relay(ctx, w.ch, func(b []byte) ([]byte, bool) { return b, true }), nil
}

// PresetWatcher feeds presets that are already decoded, such as another
// pane's ExportPreset, to a Loader. Each preset is encoded with the codec
// the Loader decodes with.
type PresetWatcher struct {
	ch    <-chan Preset
	codec Codec
}

// NewPresetWatcher creates a PresetWatcher encoding with codec. A nil codec
// means JSONCodec.
func NewPresetWatcher(ch <-chan Preset, codec Codec) *PresetWatcher {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &PresetWatcher{ch: ch, codec: codec}
}

// Watch returns the encoded presets. A preset the codec cannot encode is
// skipped.
func (w *PresetWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	return relay(ctx, w.ch, func(p Preset) ([]byte, bool) {
		data, err := MarshalPreset(w.codec, p)
		return data, err == nil
	}), nil
}

// relay forwards encoded values from in until in closes or ctx is done.
func relay[T any](ctx context.Context, in <-chan T, encode func(T) ([]byte, bool)) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				data, ok := encode(v)
				if !ok {
					continue
				}
				select {
				case out <- data:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
