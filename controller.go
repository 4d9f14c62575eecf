package knob

// View is the rendering side of a controller. The engine only ever calls
// Update, after a value the view renders has changed.
type View interface {
	Update()
}

// ValueController owns the presentation of a Value. Value must return the
// same reference the controller was built with, so composite controllers
// can share one value.
type ValueController[T any] interface {
	Value() Value[T]
	Dispose()
}

// Controller is the default ValueController. It refreshes an optional view
// after every change of its value.
type Controller[T any] struct {
	value Value[T]
	view  View
	sub   *Subscription
}

// NewController creates a Controller for value. view may be nil.
func NewController[T any](value Value[T], view View) *Controller[T] {
	c := &Controller[T]{value: value, view: view}
	if view != nil {
		c.sub = value.Emitter().On(EventChange, func(ChangeEvent[T]) {
			c.view.Update()
		})
	}
	return c
}

// Value returns the controlled value.
func (c *Controller[T]) Value() Value[T] {
	return c.value
}

// View returns the view, or nil.
func (c *Controller[T]) View() View {
	return c.view
}

// Dispose detaches the view. It is idempotent.
func (c *Controller[T]) Dispose() {
	c.sub.Off()
}
