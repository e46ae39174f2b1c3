package auth

import "go.uber.org/fx"

// Module provides the OAuth flow dependencies
var Module = fx.Module("auth",
	fx.Provide(
		NewFlow,
	),
)
