package services

import (
	"context"

	"tickertag/dto"
	"tickertag/models"
	"tickertag/repositories"
	"tickertag/resolver"
)

// ClassificationService exposes resolved views and the run audit trail to
// the export collaborator.
type ClassificationService struct {
	events    *repositories.EventRepository
	runs      *repositories.RunRepository
	overrides *repositories.OverrideRepository
	resolver  *resolver.Resolver
	taxonomy  models.Taxonomy
}

func NewClassificationService(
	events *repositories.EventRepository,
	runs *repositories.RunRepository,
	overrides *repositories.OverrideRepository,
	taxonomy models.Taxonomy,
) *ClassificationService {
	return &ClassificationService{
		events:    events,
		runs:      runs,
		overrides: overrides,
		resolver:  resolver.New(runs, overrides),
		taxonomy:  taxonomy,
	}
}

// GetCurrentView resolves one event's classification under the current
// taxonomy version.
func (s *ClassificationService) GetCurrentView(ctx context.Context, eventID string) (*dto.ViewDTO, error) {
	event, err := s.events.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	view, err := s.resolver.CurrentView(ctx, eventID, s.taxonomy.SchemaVersion)
	if err != nil {
		return nil, err
	}
	d := dto.NewViewDTO(*event, view)
	return &d, nil
}

// ListViewsByAsset resolves the current view for an asset's events, newest
// first. Events without any classification come back in the filtered state
// rather than being dropped.
func (s *ClassificationService) ListViewsByAsset(ctx context.Context, assetID string, limit int) ([]dto.ViewDTO, error) {
	events, err := s.events.ListByAsset(ctx, assetID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ViewDTO, 0, len(events))
	for _, e := range events {
		view, err := s.resolver.CurrentView(ctx, e.EventID, s.taxonomy.SchemaVersion)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewViewDTO(e, view))
	}
	return out, nil
}

// ListRuns returns an event's full append-only run history.
func (s *ClassificationService) ListRuns(ctx context.Context, eventID string) ([]dto.RunDTO, error) {
	runs, err := s.runs.ListByEvent(ctx, eventID, s.taxonomy.SchemaVersion)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RunDTO, 0, len(runs))
	for _, r := range runs {
		out = append(out, dto.NewRunDTO(r))
	}
	return out, nil
}
