package reactive

import "math/rand"

// Context carries a value down the owner tree without threading it through
// arguments. Reads walk up from the current owner to the closest Write.
type Context[T any] struct {
	rt *Runtime
	// Unique identifier for the context
	id int64
	// Default value, returned when no owner on the stack holds one
	defaultValue T
}

func CreateContext[T any](rt *Runtime, defaultValue T) *Context[T] {
	return &Context[T]{
		rt:           rt,
		id:           rand.Int63(),
		defaultValue: defaultValue,
	}
}

func (c *Context[T]) Read() T {
	if c.rt.observer == nil {
		return c.defaultValue
	}
	x, ok := c.rt.observer.get(c.id)
	if !ok {
		return c.defaultValue
	}
	t, ok := x.(T)
	if !ok {
		return c.defaultValue
	}
	return t
}

func (c *Context[T]) Write(value T) {
	if c.rt.observer == nil {
		return
	}
	c.rt.observer.set(c.id, value)
}

// UseContext exists for symmetry with the usual fine-grained API surface
func UseContext[T any](c *Context[T]) T {
	return c.Read()
}
