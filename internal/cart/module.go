package cart

import "go.uber.org/fx"

// Module provides the process-wide cart registry.
var Module = fx.Provide(NewRegistry)
