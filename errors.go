package ringbuffer

import "errors"

// ErrNoConsumers is raised synchronously when a producer or force-fill
// producer barrier is constructed with an empty tracked-consumer list:
// the capacity gate cannot function without at least one downstream
// reference.
var ErrNoConsumers = errors.New("ringbuffer: producer barrier requires at least one tracked consumer")

// ErrAlerted is raised from a wait strategy's polling loop when the
// barrier's alert flag is observed true. Callers decide whether to halt
// or ClearAlert and retry.
var ErrAlerted = errors.New("ringbuffer: wait aborted by alert")
