package poller

// Emitter publishes cycle results to the presentation layer.
// A nil Emitter is safe to use; events are dropped.
type Emitter interface {
	Emit(name string, data any)
}

type EmitterFunc func(name string, data any)

func (f EmitterFunc) Emit(name string, data any) {
	f(name, data)
}
