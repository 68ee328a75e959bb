// Package batch runs many independent translations with a bounded number of
// requests in flight.
package batch

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/valpere/perevod/internal/lang"
	"github.com/valpere/perevod/internal/pipeline"
)

const DefaultWorkers = 4

// Translator is satisfied by *pipeline.Pipeline.
type Translator interface {
	Translate(ctx context.Context, req pipeline.Request) (string, error)
}

// Item is the result for one input line. Blank lines are skipped and keep
// an empty Outcome.
type Item struct {
	Index   int
	Source  string
	Skipped bool
	Outcome pipeline.Outcome
}

type Result struct {
	Items     []Item
	Succeeded int
	Failed    int
	Skipped   int
}

type Runner struct {
	translator Translator
	workers    int
	logger     *zap.Logger
}

func New(t Translator, workers int, logger *zap.Logger) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		translator: t,
		workers:    workers,
		logger:     logger.With(zap.String("component", "batch")),
	}
}

// Run translates every non-blank text with pair. Items keep the input order.
// A failing line never stops the others; each line gets its own retry budget.
func (r *Runner) Run(ctx context.Context, texts []string, pair lang.Pair) *Result {
	items := make([]Item, len(texts))

	g := new(errgroup.Group)
	g.SetLimit(r.workers)

	for i, text := range texts {
		items[i] = Item{Index: i, Source: text}
		if strings.TrimSpace(text) == "" {
			items[i].Skipped = true
			continue
		}

		i, text := i, text
		g.Go(func() error {
			items[i].Outcome = r.translateOne(ctx, text, pair)
			return nil
		})
	}
	_ = g.Wait()

	res := &Result{Items: items}
	for _, it := range items {
		switch {
		case it.Skipped:
			res.Skipped++
		case it.Outcome.OK():
			res.Succeeded++
		default:
			res.Failed++
		}
	}

	r.logger.Info("batch finished",
		zap.Int("succeeded", res.Succeeded),
		zap.Int("failed", res.Failed),
		zap.Int("skipped", res.Skipped))
	return res
}

func (r *Runner) translateOne(ctx context.Context, text string, pair lang.Pair) pipeline.Outcome {
	req, err := pipeline.NewRequest(text, pair)
	if err != nil {
		return pipeline.Outcome{Err: err}
	}
	out, err := r.translator.Translate(ctx, req)
	if err != nil {
		r.logger.Warn("line failed", zap.Error(err))
		return pipeline.Outcome{Err: err}
	}
	return pipeline.Outcome{Translation: out}
}
