package commands

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"titan/internal/app"
	"titan/internal/config"
	"titan/internal/logging"
)

// LoadApp builds the services a command runs against. Tests replace it.
var LoadApp = func(ctx context.Context) (*app.App, error) {
	cfg := config.Load()
	logging.Init(!cfg.IsDev(), cfg.LogLevel)
	if n := cfg.WarnMissingCredentials(); n > 0 {
		slog.Debug("running with fallback output for missing credentials", "count", n)
	}
	return app.Build(ctx, cfg, nil)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
