package composer

import "github.com/murthyn/composer/types"

// Option configures a Logger with optional dependencies.
type Option func(*loggerOptions)

// loggerOptions holds optional Logger configuration.
type loggerOptions struct {
	diag      types.Logger
	collector types.Collector
	hooks     *types.Hooks
}

// WithDiagnostics sets the structured diagnostic logger used for warnings
// about destination failures, timestamp regressions, and configuration.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewLogger
//
// Example:
//
//	diag := logging.NewSlogDefault()
//	logger, err := composer.NewLogger(&cfg, composer.WithDiagnostics(diag))
func WithDiagnostics(logger types.Logger) Option {
	return func(o *loggerOptions) {
		o.diag = logger
	}
}

// WithCollector sets a self-telemetry collector.
//
// Parameters:
//   - collector: Collector implementation
//
// Returns:
//   - Option: Functional option for NewLogger
//
// Example:
//
//	collector := telemetry.NewPrometheus(nil, "composer")
//	logger, err := composer.NewLogger(&cfg, composer.WithCollector(collector))
func WithCollector(collector types.Collector) Option {
	return func(o *loggerOptions) {
		o.collector = collector
	}
}

// WithHooks sets internal event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewLogger
//
// Example:
//
//	hooks := &composer.Hooks{
//	    OnDestinationError: func(ctx context.Context, dest string, err error) error {
//	        return alerting.Notify(ctx, dest, err)
//	    },
//	}
//	logger, err := composer.NewLogger(&cfg, composer.WithHooks(hooks))
func WithHooks(hooks *types.Hooks) Option {
	return func(o *loggerOptions) {
		o.hooks = hooks
	}
}
