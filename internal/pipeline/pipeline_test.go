package pipeline

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/valpere/perevod/internal"
	"github.com/valpere/perevod/internal/lang"
	"github.com/valpere/perevod/internal/translator"
)

var (
	enRu = lang.Pair{Source: lang.English, Target: lang.Russian}
	ruEn = lang.Pair{Source: lang.Russian, Target: lang.English}
)

type fakeCompleter struct {
	mu         sync.Mutex
	completion string
	err        error
	systems    []string
	users      []string
}

func (f *fakeCompleter) Complete(_ context.Context, systemPrompt, userText string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.systems = append(f.systems, systemPrompt)
	f.users = append(f.users, userText)
	return f.completion, f.err
}

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

type fakeMemory struct {
	entries map[string]string
	saved   int
}

func (m *fakeMemory) key(text, src, tgt string) string { return src + "|" + tgt + "|" + text }

func (m *fakeMemory) GetCachedTranslation(_ context.Context, text, src, tgt string) (string, bool, error) {
	v, ok := m.entries[m.key(text, src, tgt)]
	return v, ok, nil
}

func (m *fakeMemory) SaveToMemory(_ context.Context, text, src, tgt, final string) error {
	if m.entries == nil {
		m.entries = map[string]string{}
	}
	m.entries[m.key(text, src, tgt)] = final
	m.saved++
	return nil
}

type fakeGlossary map[string]string

func (g fakeGlossary) GetGlossaryTerms(context.Context, string, string) (map[string]string, error) {
	return g, nil
}

type fakeRecorder struct {
	records []internal.TranslationRecord
}

func (r *fakeRecorder) SaveRecord(_ context.Context, rec internal.TranslationRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func mustRequest(t *testing.T, text string, pair lang.Pair) Request {
	t.Helper()
	req, err := NewRequest(text, pair)
	require.NoError(t, err)
	return req
}

func TestPipeline_ScenarioA(t *testing.T) {
	fc := &fakeCompleter{completion: "— Завтрак с Ватсап —"}
	p := New(fc, WithLogger(zaptest.NewLogger(t)))

	out, err := p.Translate(context.Background(), mustRequest(t, "breakfast with WhatsApp", enRu))
	require.NoError(t, err)
	assert.Equal(t, "Завтрак с Ватсап", out)

	require.Equal(t, 1, fc.calls())
	assert.Contains(t, fc.systems[0], "Russian female translator")
	assert.Equal(t, "breakfast with WhatsApp", fc.users[0])
}

func TestPipeline_CorrectionsOnlyForRussianTarget(t *testing.T) {
	fc := &fakeCompleter{completion: "Lunch on Telegram - tomorrow"}

	toRu := New(fc)
	out, err := toRu.Translate(context.Background(), mustRequest(t, "обед", enRu))
	require.NoError(t, err)
	assert.Equal(t, "Обед on Телеграм tomorrow", out)

	toEn := New(fc)
	out, err = toEn.Translate(context.Background(), mustRequest(t, "обед", ruEn))
	require.NoError(t, err)
	assert.Equal(t, "Lunch on Telegram tomorrow", out)
	assert.Contains(t, fc.systems[1], "professional translator")
}

func TestPipeline_ErrorPropagatedUnchanged(t *testing.T) {
	want := &translator.Error{Kind: translator.KindRateLimited, Message: "Too many requests. Please wait a moment."}
	fc := &fakeCompleter{err: want}
	rec := &fakeRecorder{}
	p := New(fc, WithRecorder(rec))

	_, err := p.Translate(context.Background(), mustRequest(t, "hi", enRu))
	assert.Same(t, want, err)

	require.Len(t, rec.records, 1)
	assert.Equal(t, "rate_limited", rec.records[0].ErrorKind)
	assert.Equal(t, want.Message, rec.records[0].ErrorMessage)
	assert.False(t, rec.records[0].Succeeded())
}

func TestPipeline_MemoryHitSkipsCompleter(t *testing.T) {
	fc := &fakeCompleter{completion: "Привет"}
	mem := &fakeMemory{}
	rec := &fakeRecorder{}
	p := New(fc, WithMemory(mem), WithRecorder(rec), WithIDGenerator(func() string { return "id-1" }))

	req := mustRequest(t, "Hello", enRu)
	first, err := p.Translate(context.Background(), req)
	require.NoError(t, err)
	second, err := p.Translate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fc.calls())
	assert.Equal(t, 1, mem.saved)

	require.Len(t, rec.records, 2)
	assert.False(t, rec.records[0].Cached)
	assert.True(t, rec.records[1].Cached)
	assert.Equal(t, "id-1", rec.records[1].ID)
}

func TestPipeline_WithoutMemoryEveryInvocationCallsOnce(t *testing.T) {
	fc := &fakeCompleter{completion: "Привет"}
	rec := &fakeRecorder{}
	p := New(fc, WithGlossary(fakeGlossary{}), WithRecorder(rec))

	req := mustRequest(t, "hello", enRu)
	for i := 1; i <= 3; i++ {
		_, err := p.Translate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, i, fc.calls())
	}
	require.Len(t, rec.records, 3)
	for _, r := range rec.records {
		assert.False(t, r.Cached)
	}
}

func TestPipeline_WhitespaceCompletion(t *testing.T) {
	fc := &fakeCompleter{completion: "   "}
	mem := &fakeMemory{}
	p := New(fc, WithMemory(mem))

	out, err := p.Translate(context.Background(), mustRequest(t, "hello", enRu))
	require.NoError(t, err)
	assert.Equal(t, "", out)
	assert.Zero(t, mem.saved)
}

func TestPipeline_GlossaryTermsInPrompt(t *testing.T) {
	fc := &fakeCompleter{completion: "ok"}
	p := New(fc, WithGlossary(fakeGlossary{"Zoom": "Зум"}))

	_, err := p.Translate(context.Background(), mustRequest(t, "Zoom call", enRu))
	require.NoError(t, err)
	_, err = p.Translate(context.Background(), mustRequest(t, "звонок", ruEn))
	require.NoError(t, err)

	assert.Contains(t, fc.systems[0], "- Zoom → Зум")
	assert.NotContains(t, fc.systems[1], "Zoom")
}

func TestPipeline_ConcurrentInvocationsIndependent(t *testing.T) {
	fc := &fakeCompleter{completion: "ok"}
	p := New(fc)
	req := mustRequest(t, "hello", enRu)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := p.Translate(context.Background(), req)
			assert.NoError(t, err)
			assert.Equal(t, "ok", out)
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, fc.calls())
}

// Transport fails on the first call and succeeds on the second.
func TestPipeline_ScenarioC(t *testing.T) {
	var stamps []time.Time
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		stamps = append(stamps, time.Now())
		if len(stamps) == 1 {
			return nil, errors.New("Network request failed")
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{ "completion": "Hello" }`)),
		}, nil
	})

	var delays []time.Duration
	client := translator.NewClient("http://translate.test/",
		translator.WithHTTPClient(&http.Client{Transport: rt}),
		translator.WithLogger(zaptest.NewLogger(t)),
		translator.WithSleep(func(ctx context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		}))

	out, err := New(client).Translate(context.Background(), mustRequest(t, "Привет", ruEn))
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
	assert.Len(t, stamps, 2)
	assert.Equal(t, []time.Duration{3 * time.Second}, delays)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
