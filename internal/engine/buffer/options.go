package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithPath binds the buffer to path and store without reading it.
// Use Load to read existing content.
func WithPath(store Store, path string) Option {
	return func(b *Buffer) {
		b.store = store
		b.path = path
	}
}
