package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/relnotes-feed/app/feed"
	"github.com/lysyi3m/relnotes-feed/app/release"
)

// Pipeline holds the components shared by every build of one source.
type Pipeline struct {
	URL       string
	Channel   feed.Channel
	fetcher   FetcherInterface
	finder    FinderInterface
	extractor *release.Extractor
	generator *feed.Generator
}

func NewPipeline(url string, channel feed.Channel, fetcher FetcherInterface, finder FinderInterface, extractor *release.Extractor, generator *feed.Generator) *Pipeline {
	return &Pipeline{
		URL:       url,
		Channel:   channel,
		fetcher:   fetcher,
		finder:    finder,
		extractor: extractor,
		generator: generator,
	}
}

// Build fetches the page once and renders it in the requested format.
func (p *Pipeline) Build(ctx context.Context, format feed.Format) (*Result, error) {
	return NewBuildFeedTask(p, format).Execute(ctx)
}

type Result struct {
	Format   feed.Format
	Document string
	Entries  int
}

type BuildFeedTask struct {
	Task
	Format   feed.Format
	pipeline *Pipeline
}

func NewBuildFeedTask(pipeline *Pipeline, format feed.Format) *BuildFeedTask {
	return &BuildFeedTask{
		Task:     NewTask(TaskTypeBuildFeed, pipeline.URL),
		Format:   format,
		pipeline: pipeline,
	}
}

func (t *BuildFeedTask) Execute(ctx context.Context) (*Result, error) {
	t.Start()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := t.pipeline.fetcher.Run(ctx, t.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release notes: %w", err)
	}

	sections, err := t.pipeline.finder.Run(data)
	if err != nil {
		return nil, fmt.Errorf("failed to find release sections: %w", err)
	}

	entries := t.pipeline.extractor.Run(sections)

	document, err := t.pipeline.generator.Run(t.Format, t.pipeline.Channel, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate feed: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"id", t.GetID(),
		"source", t.Source,
		"format", t.Format,
		"duration", t.GetDuration(),
		"entries", len(entries))

	return &Result{
		Format:   t.Format,
		Document: document,
		Entries:  len(entries),
	}, nil
}
