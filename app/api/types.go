package api

import (
	"context"

	"github.com/lysyi3m/relnotes-feed/app/feed"
	"github.com/lysyi3m/relnotes-feed/app/tasks"
)

type BuilderInterface interface {
	Build(ctx context.Context, format feed.Format) (*tasks.Result, error)
}

var _ BuilderInterface = (*tasks.Pipeline)(nil)

type Handler struct {
	builder   BuilderInterface
	sourceURL string
	version   string
}
