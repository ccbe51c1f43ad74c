package catalogcmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-relnotes/catalog"
	"github.com/goliatone/go-relnotes/internal/commands"
	"github.com/goliatone/go-relnotes/internal/logging"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const indexOperation = "catalog.index"

// ErrCatalogFeatureDisabled is returned when the catalog feature flag is disabled at runtime.
var ErrCatalogFeatureDisabled = errors.New("catalog command: feature disabled")

var _ command.Commander[IndexCommand] = (*IndexHandler)(nil)

// IndexHandler rebuilds version indexes via the shared command handler foundation.
type IndexHandler struct {
	inner *commands.Handler[IndexCommand]
}

// NewIndexHandler creates a handler bound to the supplied catalog service.
func NewIndexHandler(service catalog.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[IndexCommand]) *IndexHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg IndexCommand) error {
		if !gates.catalogEnabled() {
			return ErrCatalogFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.Index(ctx, catalog.IndexRequest{
			Version:    msg.Version,
			ContentDir: msg.ContentDir,
			BaseIndex:  msg.BaseIndex,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"index":         result.IndexName,
				"version":       result.Version,
				"indexed":       result.Indexed,
				"skipped":       result.Skipped,
				"truncated":     result.Truncated,
				"failure_count": len(result.Failures),
			}).Info("catalog.command.index.completed")
			if len(result.Failures) > 0 {
				return fmt.Errorf("catalog index: %d pages failed", len(result.Failures))
			}
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[IndexCommand]{
		commands.WithLogger[IndexCommand](baseLogger),
		commands.WithOperation[IndexCommand](indexOperation),
		commands.WithMessageFields(func(msg IndexCommand) map[string]any {
			fields := map[string]any{
				"version": msg.Version,
			}
			if msg.ContentDir != "" {
				fields["content_dir"] = msg.ContentDir
			}
			if msg.BaseIndex != "" {
				fields["base_index"] = msg.BaseIndex
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[IndexCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &IndexHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[IndexCommand].
func (h *IndexHandler) Execute(ctx context.Context, msg IndexCommand) error {
	return h.inner.Execute(ctx, msg)
}
