package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"tickertag/classifier"
	"tickertag/eventbus"
	"tickertag/logger"
	"tickertag/models"
	"tickertag/rules"
)

// RunStore is the slice of the Run Store the orchestrator needs: append new
// evidence, and peek at the latest Run for skip-existing semantics. There
// is deliberately no update or delete.
type RunStore interface {
	Append(ctx context.Context, run *models.Run) error
	Latest(ctx context.Context, eventID, schemaVersion string) (*models.Run, error)
}

// Options control one batch invocation.
type Options struct {
	// Force re-classifies events that already have a Run for the current
	// schema version; by default such events are skipped.
	Force bool

	// Concurrency bounds in-flight events. Only the model call suspends
	// for meaningful time, so this effectively caps external calls.
	Concurrency int
}

// EventFailure records one event that could not be classified this batch.
// The event stays unclassified and is eligible for retry next invocation.
type EventFailure struct {
	EventID string `json:"event_id"`
	Reason  string `json:"reason"`
}

// BatchSummary reports what one invocation did. Partial success is never
// reported as success: Failures carries every event left unclassified.
type BatchSummary struct {
	BatchID         string         `json:"batch_id"`
	SchemaVersion   string         `json:"schema_version"`
	Total           int            `json:"total"`
	Skipped         int            `json:"skipped"`
	RuleClassified  int            `json:"rule_classified"`
	ModelClassified int            `json:"model_classified"`
	Failed          int            `json:"failed"`
	Failures        []EventFailure `json:"failures,omitempty"`
	StartedAt       time.Time      `json:"started_at"`
	FinishedAt      time.Time      `json:"finished_at"`
}

// Classified is the number of events that received a Run this batch.
func (s *BatchSummary) Classified() int {
	return s.RuleClassified + s.ModelClassified
}

// Succeeded reports whether every attempted event received a Run.
func (s *BatchSummary) Succeeded() bool {
	return s.Failed == 0
}

// Orchestrator drives rule-then-model classification over a batch of
// events and appends one Run per classified event. It never reads
// Overrides and never mutates or deletes existing Runs.
type Orchestrator struct {
	rules     *rules.Engine
	model     classifier.Classifier
	runs      RunStore
	taxonomy  models.Taxonomy
	modelName string
	bus       eventbus.Publisher // optional; nil disables notifications
}

func New(engine *rules.Engine, model classifier.Classifier, runs RunStore, taxonomy models.Taxonomy, modelName string) *Orchestrator {
	return &Orchestrator{
		rules:     engine,
		model:     model,
		runs:      runs,
		taxonomy:  taxonomy,
		modelName: modelName,
	}
}

// WithPublisher attaches a bus for run-recorded notifications. Publishing
// is best-effort: the Run is already persisted when a publish fails.
func (o *Orchestrator) WithPublisher(bus eventbus.Publisher) *Orchestrator {
	o.bus = bus
	return o
}

// ClassifyBatch processes the events under a bounded worker pool. Failures
// are isolated per event; cancellation between events leaves already
// appended Runs intact and the rest unclassified for retry.
func (o *Orchestrator) ClassifyBatch(ctx context.Context, events []models.Event, opts Options) (*BatchSummary, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	summary := &BatchSummary{
		BatchID:       uuid.NewString(),
		SchemaVersion: o.taxonomy.SchemaVersion,
		Total:         len(events),
		StartedAt:     time.Now().UTC(),
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, concurrency)
	)

	var aborted error
	for i := range events {
		select {
		case <-ctx.Done():
			aborted = ctx.Err()
		default:
		}
		if aborted != nil {
			break
		}

		event := events[i]
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			o.classifyOne(ctx, event, opts, summary, &mu)
		}()
	}
	wg.Wait()

	summary.FinishedAt = time.Now().UTC()
	logger.InfoWithFields("batch finished", logger.Fields{
		"batch_id":         summary.BatchID,
		"total":            summary.Total,
		"skipped":          summary.Skipped,
		"rule_classified":  summary.RuleClassified,
		"model_classified": summary.ModelClassified,
		"failed":           summary.Failed,
	})
	o.publishSummary(ctx, summary)
	return summary, aborted
}

// classifyOne walks one event through
// pending -> rule_attempted -> (classified | model_attempted) -> (classified | failed).
func (o *Orchestrator) classifyOne(ctx context.Context, event models.Event, opts Options, summary *BatchSummary, mu *sync.Mutex) {
	if !opts.Force {
		existing, err := o.runs.Latest(ctx, event.EventID, o.taxonomy.SchemaVersion)
		if err != nil {
			o.recordFailure(summary, mu, event.EventID, "lookup existing run: "+err.Error())
			return
		}
		if existing != nil {
			mu.Lock()
			summary.Skipped++
			mu.Unlock()
			return
		}
	}

	cls, matched := o.rules.Classify(rules.Input{
		Text:        event.CombinedText,
		IsReply:     event.IsReply,
		MemberCount: event.MemberCount,
	})
	if !matched {
		// Normal fallthrough, not an error.
		var err error
		cls, err = o.model.Classify(ctx, event)
		if err != nil {
			o.recordFailure(summary, mu, event.EventID, err.Error())
			return
		}
	}

	run := &models.Run{
		EventID:        event.EventID,
		BatchID:        summary.BatchID,
		Classification: *cls,
	}
	if cls.Method == models.MethodModel {
		run.ModelName = o.modelName
	}
	if err := o.runs.Append(ctx, run); err != nil {
		// The pipeline must not claim success for an event whose Run
		// failed to persist.
		o.recordFailure(summary, mu, event.EventID, "append run: "+err.Error())
		return
	}

	mu.Lock()
	if cls.Method == models.MethodRule {
		summary.RuleClassified++
	} else {
		summary.ModelClassified++
	}
	mu.Unlock()

	o.publishRun(ctx, run)
}

func (o *Orchestrator) recordFailure(summary *BatchSummary, mu *sync.Mutex, eventID, reason string) {
	mu.Lock()
	summary.Failed++
	summary.Failures = append(summary.Failures, EventFailure{EventID: eventID, Reason: reason})
	mu.Unlock()
	logger.ErrorWithFields("event classification failed", logger.Fields{
		"batch_id": summary.BatchID,
		"event_id": eventID,
		"reason":   reason,
	})
}

func (o *Orchestrator) publishRun(ctx context.Context, run *models.Run) {
	if o.bus == nil {
		return
	}
	ev, err := eventbus.NewEvent(run.EventID, run)
	if err != nil {
		logger.Log.Warnf("marshal run notification: %v", err)
		return
	}
	if err := o.bus.Publish(ctx, eventbus.TopicRunRecorded.Base(), ev); err != nil {
		logger.Log.Warnf("publish run notification: %v", err)
	}
}

func (o *Orchestrator) publishSummary(ctx context.Context, summary *BatchSummary) {
	if o.bus == nil {
		return
	}
	ev, err := eventbus.NewEvent(summary.BatchID, summary)
	if err != nil {
		logger.Log.Warnf("marshal batch summary: %v", err)
		return
	}
	if err := o.bus.Publish(ctx, eventbus.TopicBatchSummary.Base(), ev); err != nil {
		logger.Log.Warnf("publish batch summary: %v", err)
	}
}
