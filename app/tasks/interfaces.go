package tasks

import (
	"context"

	"github.com/lysyi3m/relnotes-feed/app/release"
	"github.com/lysyi3m/relnotes-feed/app/source"
)

type FetcherInterface interface {
	Run(ctx context.Context, url string) ([]byte, error)
}

type FinderInterface interface {
	Run(data []byte) ([]release.Node, error)
}

var (
	_ FetcherInterface = (*source.Fetcher)(nil)
	_ FinderInterface  = (*source.Finder)(nil)
)
