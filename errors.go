package composer

import "github.com/murthyn/composer/types"

// Sentinel errors re-exported from the types package.
//
// Check with errors.Is; see types/errors.go for the full taxonomy and the
// propagation policy (metric errors are eager and fatal to the caller,
// destination errors are contained).
var (
	// ErrShapeMismatch is returned when prediction and target shapes disagree.
	ErrShapeMismatch = types.ErrShapeMismatch

	// ErrUnsupportedOutput is returned for model outputs that are neither
	// logits nor a loss/logits mapping.
	ErrUnsupportedOutput = types.ErrUnsupportedOutput

	// ErrUndefinedMetric is returned by Compute before any Update.
	ErrUndefinedMetric = types.ErrUndefinedMetric

	// ErrReductionPolicy is returned when reduction rules are misapplied or
	// merged states disagree on their declarations.
	ErrReductionPolicy = types.ErrReductionPolicy

	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrDestinationRequired is returned when a nil destination is registered.
	ErrDestinationRequired = types.ErrDestinationRequired

	// ErrLoggerClosed is returned for operations on a closed Logger.
	ErrLoggerClosed = types.ErrLoggerClosed

	// ErrNATSConnectionRequired is returned when a nil NATS connection is
	// supplied to a component that needs one.
	ErrNATSConnectionRequired = types.ErrNATSConnectionRequired
)
