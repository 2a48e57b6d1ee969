package logging

import (
	"log/slog"
	"os"

	"gitlab.com/campusfound/campusfound-backend/pkg/env"
)

// Setup builds the process-wide logger for the given mode. Local and test
// runs get human readable text, everything else ships JSON. The returned
// cleanup is a hook for handlers that buffer; the default ones do not.
func Setup(mode env.Mode) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: mode.SlogLevel()}

	var handler slog.Handler
	switch mode {
	case env.Local, env.Test:
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), func() {}
}
