package postgres

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("campusfound/internal/adapters/repos/postgres")
	logger = otelslog.NewLogger("campusfound/internal/adapters/repos/postgres")
)
