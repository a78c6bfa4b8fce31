package engine

// EventWithArg is a multi-cast event with one argument.
type EventWithArg[T any] struct {
	listeners []func(T)
}

// AddListener adds a callback to be invoked when the event fires
func (e *EventWithArg[T]) AddListener(callback func(T)) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

// Invoke calls all registered listeners in the order they were added
func (e *EventWithArg[T]) Invoke(arg T) {
	for _, fn := range e.listeners {
		fn(arg)
	}
}
