package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"tickertag/logger"
	"tickertag/models"
)

// ErrBadResponse means the service reply did not parse into the expected
// classification schema even after retries. The event stays unclassified
// for this run; it is never defaulted to a guessed category.
var ErrBadResponse = errors.New("model response does not match the classification schema")

// Classifier is the fallback classification boundary. The orchestrator
// depends only on this interface, so the backing service can be swapped or
// mocked without touching clustering or storage.
type Classifier interface {
	Classify(ctx context.Context, event models.Event) (*models.Classification, error)
}

// Options tune the Gemini adapter.
type Options struct {
	ModelName   string
	MaxAttempts int
	Backoff     time.Duration
}

// Gemini classifies events through the Gemini API. This is the only
// component in the pipeline allowed to perform an external call.
type Gemini struct {
	client      *genai.Client
	modelName   string
	taxonomy    models.Taxonomy
	examples    []WorkedExample
	maxAttempts int
	backoff     time.Duration
}

// NewGemini builds the adapter. The API key comes from GEMINI_API_KEY.
func NewGemini(ctx context.Context, taxonomy models.Taxonomy, opts Options) (*Gemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if opts.ModelName == "" {
		opts.ModelName = "gemini-2.5-flash"
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 2 * time.Second
	}

	return &Gemini{
		client:      client,
		modelName:   opts.ModelName,
		taxonomy:    taxonomy,
		examples:    DefaultWorkedExamples(),
		maxAttempts: opts.MaxAttempts,
		backoff:     opts.Backoff,
	}, nil
}

// Classify sends one event to the model at temperature zero and validates
// the structured reply against the taxonomy. Transient failures are retried
// with doubling backoff; a leakage-guard trip aborts immediately.
func (g *Gemini) Classify(ctx context.Context, event models.Event) (*models.Classification, error) {
	payload := Payload{
		Text:      event.CombinedText,
		Author:    event.AuthorID,
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
		Examples:  g.examples,
	}
	raw, err := payload.Marshal()
	if err != nil {
		// Includes ErrLeakageDetected: fatal, never retried.
		return nil, err
	}
	fingerprint := Fingerprint(raw)

	instruction := SystemInstruction(g.taxonomy)
	temperature := float32(0)

	var lastErr error
	delay := g.backoff
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
		}

		result, err := g.client.Models.GenerateContent(
			ctx,
			g.modelName,
			genai.Text(string(raw)),
			&genai.GenerateContentConfig{
				SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
				Temperature:       &temperature,
			},
		)
		if err != nil {
			lastErr = fmt.Errorf("model call: %w", err)
			logger.WarnWithFields("model call failed", logger.Fields{
				"event_id": event.EventID,
				"attempt":  attempt,
				"error":    err.Error(),
			})
			continue
		}

		cls, err := g.parse(result.Text(), fingerprint)
		if err != nil {
			lastErr = err
			logger.WarnWithFields("model response rejected", logger.Fields{
				"event_id": event.EventID,
				"attempt":  attempt,
				"error":    err.Error(),
			})
			continue
		}
		return cls, nil
	}
	return nil, fmt.Errorf("event %s: %d attempts: %w", event.EventID, g.maxAttempts, lastErr)
}

type modelResponse struct {
	Category  string `json:"category"`
	Format    string `json:"format"`
	Tone      string `json:"tone"`
	Rationale string `json:"rationale"`
}

func (g *Gemini) parse(text, fingerprint string) (*models.Classification, error) {
	return ParseResponse(g.taxonomy, text, fingerprint)
}

// ParseResponse validates a raw service reply against the classification
// schema and the taxonomy. Every model classification comes back with
// NeedsReview forced true: model labels are provisional until a human
// confirms or overrides them.
func ParseResponse(taxonomy models.Taxonomy, text, fingerprint string) (*models.Classification, error) {
	var resp modelResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	category, err := taxonomy.CategoryFromString(resp.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	format := models.FormatTag(resp.Format)
	if !taxonomy.ValidFormat(format) {
		return nil, fmt.Errorf("%w: unknown format %q", ErrBadResponse, resp.Format)
	}
	tone := models.ToneTag(resp.Tone)
	if !taxonomy.ValidTone(tone) {
		return nil, fmt.Errorf("%w: unknown tone %q", ErrBadResponse, resp.Tone)
	}

	return &models.Classification{
		Category:      category,
		Method:        models.MethodModel,
		Format:        format,
		Tone:          tone,
		Rationale:     resp.Rationale,
		SchemaVersion: taxonomy.SchemaVersion,
		Fingerprint:   fingerprint,
		NeedsReview:   true,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
