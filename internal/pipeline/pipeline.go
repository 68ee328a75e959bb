// Package pipeline turns a validated Request into a finished translation:
// it picks the system instructions for the direction, asks the completion
// endpoint once (the translator handles its own retry), then normalizes the
// completion and applies the terminology corrections.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/valpere/perevod/internal"
	"github.com/valpere/perevod/internal/lang"
	"github.com/valpere/perevod/internal/postprocess"
	"github.com/valpere/perevod/internal/prompt"
	"github.com/valpere/perevod/internal/terminology"
	"github.com/valpere/perevod/internal/translator"
)

// Completer sends one logical completion request.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Glossary supplies extra prompt terms for a language pair.
type Glossary interface {
	GetGlossaryTerms(ctx context.Context, sourceLang, targetLang string) (map[string]string, error)
}

// Memory caches finished translations.
type Memory interface {
	GetCachedTranslation(ctx context.Context, sourceText, sourceLang, targetLang string) (string, bool, error)
	SaveToMemory(ctx context.Context, sourceText, sourceLang, targetLang, finalText string) error
}

// Recorder keeps a history of invocations.
type Recorder interface {
	SaveRecord(ctx context.Context, rec internal.TranslationRecord) error
}

type Pipeline struct {
	completer Completer
	glossary  Glossary
	memory    Memory
	recorder  Recorder
	logger    *zap.Logger
	newID     func() string
	now       func() time.Time
}

type Option func(*Pipeline)

func WithGlossary(g Glossary) Option { return func(p *Pipeline) { p.glossary = g } }

func WithMemory(m Memory) Option { return func(p *Pipeline) { p.memory = m } }

func WithRecorder(r Recorder) Option { return func(p *Pipeline) { p.recorder = r } }

func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithIDGenerator sets the function producing history record IDs.
func WithIDGenerator(fn func() string) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.newID = fn
		}
	}
}

func New(c Completer, opts ...Option) *Pipeline {
	p := &Pipeline{
		completer: c,
		logger:    zap.NewNop(),
		newID:     internal.NewID,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(zap.String("component", "pipeline"))
	return p
}

// Translate runs the pipeline for req. Errors from the completer are
// returned unchanged.
func (p *Pipeline) Translate(ctx context.Context, req Request) (string, error) {
	start := p.now()
	src, tgt := req.Pair.Source.String(), req.Pair.Target.String()

	if p.memory != nil {
		cached, found, err := p.memory.GetCachedTranslation(ctx, req.Text, src, tgt)
		if err != nil {
			p.logger.Warn("translation memory lookup failed", zap.Error(err))
		} else if found {
			p.logger.Debug("using cached translation", zap.Stringer("pair", req.Pair))
			p.record(ctx, req, cached, nil, true, start)
			return cached, nil
		}
	}

	system := prompt.Build(req.Pair.Direction(), p.extraTerms(ctx, req.Pair))

	raw, err := p.completer.Complete(ctx, system, req.Text)
	if err != nil {
		p.record(ctx, req, "", err, false, start)
		return "", err
	}

	out := postprocess.Normalize(raw)
	out = terminology.Apply(out, req.Pair.GenderedTarget())

	p.logger.Debug("translation successful",
		zap.Stringer("pair", req.Pair),
		zap.Stringer("direction", req.Pair.Direction()))

	if p.memory != nil && out != "" {
		if err := p.memory.SaveToMemory(ctx, req.Text, src, tgt, out); err != nil {
			p.logger.Warn("failed to save translation memory", zap.Error(err))
		}
	}
	p.record(ctx, req, out, nil, false, start)
	return out, nil
}

func (p *Pipeline) extraTerms(ctx context.Context, pair lang.Pair) map[string]string {
	if p.glossary == nil || pair.Direction() != lang.ToGenderedTarget {
		return nil
	}
	terms, err := p.glossary.GetGlossaryTerms(ctx, pair.Source.String(), pair.Target.String())
	if err != nil {
		p.logger.Warn("failed to load glossary terms", zap.Error(err))
		return nil
	}
	return terms
}

func (p *Pipeline) record(ctx context.Context, req Request, out string, err error, cached bool, start time.Time) {
	if p.recorder == nil {
		return
	}
	rec := internal.TranslationRecord{
		ID:          p.newID(),
		SourceText:  req.Text,
		SourceLang:  req.Pair.Source.String(),
		TargetLang:  req.Pair.Target.String(),
		Translation: out,
		Cached:      cached,
		LatencyMs:   int(p.now().Sub(start).Milliseconds()),
		Timestamp:   start,
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
		if kind, ok := translator.KindOf(err); ok {
			rec.ErrorKind = string(kind)
		}
	}
	// History must not change the outcome the caller sees.
	if rerr := p.recorder.SaveRecord(context.WithoutCancel(ctx), rec); rerr != nil {
		p.logger.Warn("failed to record translation", zap.Error(rerr))
	}
}
