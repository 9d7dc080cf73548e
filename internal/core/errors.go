package core

import (
	"errors"
	"fmt"
)

// ErrBackendUnavailable marks transport-level failures talking to an LLM
// backend: dial errors, timeouts, non-2xx responses. Callers check it with
// errors.Is and decide per message whether to skip or abort.
var ErrBackendUnavailable = errors.New("llm backend unavailable")

// BackendUnavailable wraps a transport error from the named backend so it
// matches ErrBackendUnavailable while keeping the cause in the chain.
func BackendUnavailable(backend string, err error) error {
	return fmt.Errorf("%s: %w: %w", backend, ErrBackendUnavailable, err)
}
