package orchestrator_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickertag/models"
	"tickertag/orchestrator"
	"tickertag/rules"
)

// memRunStore is an in-memory append-only Run store.
type memRunStore struct {
	mu   sync.Mutex
	runs []*models.Run
}

func (s *memRunStore) Append(_ context.Context, run *models.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *run
	s.runs = append(s.runs, &cp)
	return nil
}

func (s *memRunStore) Latest(_ context.Context, eventID, schemaVersion string) (*models.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *models.Run
	for _, r := range s.runs {
		if r.EventID != eventID || r.SchemaVersion != schemaVersion {
			continue
		}
		if latest == nil || !r.CreatedAt.Before(latest.CreatedAt) {
			latest = r
		}
	}
	return latest, nil
}

func (s *memRunStore) count(eventID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.runs {
		if r.EventID == eventID {
			n++
		}
	}
	return n
}

// fakeModel classifies by lookup table and fails on demand.
type fakeModel struct {
	mu       sync.Mutex
	calls    int
	failText map[string]error
}

func (f *fakeModel) Classify(_ context.Context, event models.Event) (*models.Classification, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err, ok := f.failText[event.CombinedText]; ok {
		return nil, err
	}
	return &models.Classification{
		Category:      models.CategoryShitpost,
		Method:        models.MethodModel,
		Format:        models.FormatText,
		Tone:          models.ToneHumorous,
		Rationale:     "no informational content",
		SchemaVersion: "v1",
		Fingerprint:   "deadbeef",
		NeedsReview:   true,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

func event(id, text string) models.Event {
	return models.Event{
		EventID:      id,
		AssetID:      "doge",
		AuthorID:     "alice",
		CombinedText: text,
		MemberCount:  1,
		Timestamp:    time.Now().UTC(),
	}
}

func newOrchestrator(store *memRunStore, model *fakeModel) *orchestrator.Orchestrator {
	tax := models.TaxonomyV1()
	return orchestrator.New(rules.NewEngine(tax), model, store, tax, "gemini-test")
}

func TestRuleMatchWritesRuleRun(t *testing.T) {
	store := &memRunStore{}
	model := &fakeModel{}
	o := newOrchestrator(store, model)

	summary, err := o.ClassifyBatch(context.Background(), []models.Event{event("e1", "API is now live")}, orchestrator.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.RuleClassified)
	assert.Equal(t, 0, summary.ModelClassified)
	assert.Equal(t, 0, model.calls, "rule match must not reach the model")

	run, err := store.Latest(context.Background(), "e1", "v1")
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, models.CategoryUpdate, run.Category)
	assert.Equal(t, models.MethodRule, run.Method)
	assert.False(t, run.NeedsReview)
	assert.Empty(t, run.Fingerprint)
}

func TestDeclineFallsThroughToModel(t *testing.T) {
	store := &memRunStore{}
	model := &fakeModel{}
	o := newOrchestrator(store, model)

	summary, err := o.ClassifyBatch(context.Background(), []models.Event{event("e2", "gm")}, orchestrator.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ModelClassified)
	assert.Equal(t, 1, model.calls)

	run, err := store.Latest(context.Background(), "e2", "v1")
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, models.CategoryShitpost, run.Category)
	assert.Equal(t, models.MethodModel, run.Method)
	assert.True(t, run.NeedsReview, "model classifications stay provisional")
	assert.NotEmpty(t, run.Fingerprint)
	assert.Equal(t, "gemini-test", run.ModelName)
}

func TestSkipExistingIsIdempotent(t *testing.T) {
	store := &memRunStore{}
	o := newOrchestrator(store, &fakeModel{})
	events := []models.Event{event("e1", "API is now live"), event("e2", "gm")}

	first, err := o.ClassifyBatch(context.Background(), events, orchestrator.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Classified())

	second, err := o.ClassifyBatch(context.Background(), events, orchestrator.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Classified())
	assert.Equal(t, 2, second.Skipped)
	assert.Equal(t, 1, store.count("e1"))
	assert.Equal(t, 1, store.count("e2"))
}

func TestForceAppendsExactlyOneRunPerEvent(t *testing.T) {
	store := &memRunStore{}
	o := newOrchestrator(store, &fakeModel{})
	events := []models.Event{event("e1", "API is now live")}

	_, err := o.ClassifyBatch(context.Background(), events, orchestrator.Options{})
	require.NoError(t, err)
	_, err = o.ClassifyBatch(context.Background(), events, orchestrator.Options{Force: true})
	require.NoError(t, err)

	// Monotonic audit trail: the re-run only added evidence.
	assert.Equal(t, 2, store.count("e1"))
}

func TestModelFailureIsIsolated(t *testing.T) {
	store := &memRunStore{}
	model := &fakeModel{failText: map[string]error{"gm": errors.New("rate limited")}}
	o := newOrchestrator(store, model)

	events := []models.Event{
		event("e1", "API is now live"),
		event("e2", "gm"),
		event("e3", "We hit 1 million users 🎉"),
	}
	summary, err := o.ClassifyBatch(context.Background(), events, orchestrator.Options{Concurrency: 3})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Classified())
	assert.Equal(t, 1, summary.Failed)
	assert.False(t, summary.Succeeded())
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "e2", summary.Failures[0].EventID)

	// The failed event has no Run and stays eligible for retry.
	assert.Equal(t, 0, store.count("e2"))
	assert.Equal(t, 1, store.count("e1"))
	assert.Equal(t, 1, store.count("e3"))
}

func TestFailedEventRetriesNextInvocation(t *testing.T) {
	store := &memRunStore{}
	model := &fakeModel{failText: map[string]error{"gm": errors.New("timeout")}}
	o := newOrchestrator(store, model)
	events := []models.Event{event("e2", "gm")}

	summary, err := o.ClassifyBatch(context.Background(), events, orchestrator.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)

	// Service recovers; the next invocation picks the event up again.
	model.failText = nil
	summary, err = o.ClassifyBatch(context.Background(), events, orchestrator.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ModelClassified)
	assert.Equal(t, 1, store.count("e2"))
}

func TestCancelledContextStopsDispatch(t *testing.T) {
	store := &memRunStore{}
	o := newOrchestrator(store, &fakeModel{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := o.ClassifyBatch(ctx, []models.Event{event("e1", "API is now live")}, orchestrator.Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Classified())
}

func TestBatchSummaryCounts(t *testing.T) {
	store := &memRunStore{}
	o := newOrchestrator(store, &fakeModel{})
	events := []models.Event{
		event("e1", "API is now live"), // rule
		event("e2", "gm"),              // model
		event("e3", "ok"),              // model
	}

	summary, err := o.ClassifyBatch(context.Background(), events, orchestrator.Options{Concurrency: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.RuleClassified)
	assert.Equal(t, 2, summary.ModelClassified)
	assert.Equal(t, 0, summary.Failed)
	assert.NotEmpty(t, summary.BatchID)
	assert.True(t, summary.Succeeded())
}
