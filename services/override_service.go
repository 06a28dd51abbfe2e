package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tickertag/dto"
	"tickertag/models"
	"tickertag/repositories"
)

var (
	ErrReasonRequired = errors.New("override reason is required")
	ErrAuthorRequired = errors.New("override author is required")
	ErrEmptyOverride  = errors.New("override must correct at least one field")
)

// OverrideService validates and appends human corrections. There is no
// read-modify-write: concurrent overrides on the same event both land and
// the later one wins in the current view.
type OverrideService struct {
	overrides *repositories.OverrideRepository
	taxonomy  models.Taxonomy
}

func NewOverrideService(overrides *repositories.OverrideRepository, taxonomy models.Taxonomy) *OverrideService {
	return &OverrideService{overrides: overrides, taxonomy: taxonomy}
}

// Append validates the correction against the taxonomy and stores it.
func (s *OverrideService) Append(ctx context.Context, eventID string, req dto.OverrideRequest) (*models.Override, error) {
	if req.Reason == "" {
		return nil, ErrReasonRequired
	}
	if req.Author == "" {
		return nil, ErrAuthorRequired
	}
	if req.Category == nil && req.Format == nil && req.Tone == nil {
		return nil, ErrEmptyOverride
	}

	ov := &models.Override{
		EventID:   eventID,
		Reason:    req.Reason,
		Author:    req.Author,
		CreatedAt: time.Now().UTC(),
	}
	if req.Category != nil {
		category, err := s.taxonomy.CategoryFromString(*req.Category)
		if err != nil {
			return nil, err
		}
		ov.Category = &category
	}
	if req.Format != nil {
		format := models.FormatTag(*req.Format)
		if !s.taxonomy.ValidFormat(format) {
			return nil, fmt.Errorf("unknown format %q for taxonomy %s", *req.Format, s.taxonomy.SchemaVersion)
		}
		ov.Format = &format
	}
	if req.Tone != nil {
		tone := models.ToneTag(*req.Tone)
		if !s.taxonomy.ValidTone(tone) {
			return nil, fmt.Errorf("unknown tone %q for taxonomy %s", *req.Tone, s.taxonomy.SchemaVersion)
		}
		ov.Tone = &tone
	}

	if err := s.overrides.Append(ctx, ov); err != nil {
		return nil, err
	}
	return ov, nil
}

// History returns an event's override trail, newest first.
func (s *OverrideService) History(ctx context.Context, eventID string) ([]models.Override, error) {
	return s.overrides.ListByEvent(ctx, eventID)
}
