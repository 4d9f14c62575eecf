package knob

import "context"

// Watcher observes a preset source and emits its serialized contents.
type Watcher interface {
	// Watch emits the current contents immediately, then again on every
	// change. The channel is closed when ctx is canceled or the source
	// fails for good.
	Watch(ctx context.Context) (<-chan []byte, error)
}
