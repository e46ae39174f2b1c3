package token

import "go.uber.org/fx"

// Module provides the token store dependencies
var Module = fx.Module("token",
	fx.Provide(
		fx.Annotate(
			NewFileStore,
			fx.As(new(Store)),
		),
	),
)
