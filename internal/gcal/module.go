package gcal

import "go.uber.org/fx"

// Module provides the calendar provider dependencies
var Module = fx.Module("gcal",
	fx.Provide(
		fx.Annotate(
			NewGoogle,
			fx.As(new(Provider)),
		),
	),
)
