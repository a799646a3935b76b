// Package hooks provides the default no-op Hooks implementation.
package hooks

import (
	"context"

	"github.com/murthyn/composer/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, string, error) error                = (*NopHooks)(nil).OnDestinationError
	_ func(context.Context, types.Event, types.Timestamp) error = (*NopHooks)(nil).OnEvent
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnDestinationError: h.OnDestinationError,
		OnEvent:            h.OnEvent,
	}
}

// OnDestinationError is a no-op implementation.
func (h *NopHooks) OnDestinationError(_ context.Context, _ string, _ error) error {
	return nil
}

// OnEvent is a no-op implementation.
func (h *NopHooks) OnEvent(_ context.Context, _ types.Event, _ types.Timestamp) error {
	return nil
}
