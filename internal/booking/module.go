package booking

import "go.uber.org/fx"

// Module provides the booking dependencies
var Module = fx.Module("booking",
	fx.Provide(
		NewChecker,
		NewBooker,
	),
)
