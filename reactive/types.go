package reactive

import "github.com/cespare/xxhash/v2"

// Type for the getter half of a signal
type Getter[T any] func() T

// Type for the setter half of a signal
type Setter[T any] func(value T)

// ErrFn is a callback that may fail
type ErrFn func() error

type callback func() (any, error)
type errorFunction func(err error)

// Unique symbol for error handlers, so they can live in the context storage and reuse that code
var symbolErrors = int64(xxhash.Sum64String("AFTERPARTY_ERRORS") & 0x7fffffffffffffff)
