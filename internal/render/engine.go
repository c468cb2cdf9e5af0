package render

import (
	"context"
	"image"

	"github.com/ivlev/shotmaster/internal/config"
)

// Engine produces pixels for a fully resolved configuration. Calls are
// synchronous and may fail per invocation; the orchestrator treats a
// failed call as one failed pass and carries on. outBase is the target
// path without extension; the engine appends the extension matching the
// configured file format. RenderPreview renders to a transient surface
// and writes nothing.
type Engine interface {
	RenderStill(ctx context.Context, cfg config.RenderConfig, outBase string) error
	RenderAnimation(ctx context.Context, cfg config.RenderConfig, outBase string) error
	RenderPreview(ctx context.Context, cfg config.RenderConfig) (image.Image, error)
}
