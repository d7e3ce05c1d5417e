package service

import (
	"context"
	"fmt"
	"net/url"

	"entity-journal-cli/internal/dto"
	"entity-journal-cli/internal/gateway"
	"entity-journal-cli/internal/model"
)

type ITrackingService interface {
	Track(ctx context.Context, entityId string, req dto.TrackRequest) (*model.TrackingEvent, error)
	Untrack(ctx context.Context, entityId, date string) error
	Heatmap(ctx context.Context, entityId, from, to string) (map[string]int, error)
	Stats(ctx context.Context, entityId string) (*model.TrackingStats, error)
	Today(ctx context.Context) ([]model.TrackingEvent, error)
}

type trackingService struct {
	api *gateway.Gateway
}

func NewTrackingService(api *gateway.Gateway) ITrackingService {
	return &trackingService{api: api}
}

func (s *trackingService) Track(ctx context.Context, entityId string, req dto.TrackRequest) (*model.TrackingEvent, error) {
	var ev model.TrackingEvent
	if err := s.api.Post(ctx, "/api/entities/"+entityId+"/track", req, &ev); err != nil {
		return nil, fmt.Errorf("track %s: %w", entityId, err)
	}
	return &ev, nil
}

func (s *trackingService) Untrack(ctx context.Context, entityId, date string) error {
	params := url.Values{}
	params.Set("date", date)
	if err := s.api.Delete(ctx, "/api/entities/"+entityId+"/track", params); err != nil {
		return fmt.Errorf("untrack %s: %w", entityId, err)
	}
	return nil
}

func (s *trackingService) Heatmap(ctx context.Context, entityId, from, to string) (map[string]int, error) {
	params := url.Values{}
	if from != "" {
		params.Set("from", from)
	}
	if to != "" {
		params.Set("to", to)
	}
	var heatmap map[string]int
	if err := s.api.Get(ctx, "/api/entities/"+entityId+"/heatmap", params, &heatmap); err != nil {
		return nil, fmt.Errorf("heatmap %s: %w", entityId, err)
	}
	return heatmap, nil
}

func (s *trackingService) Stats(ctx context.Context, entityId string) (*model.TrackingStats, error) {
	var stats model.TrackingStats
	if err := s.api.Get(ctx, "/api/entities/"+entityId+"/stats", nil, &stats); err != nil {
		return nil, fmt.Errorf("stats %s: %w", entityId, err)
	}
	return &stats, nil
}

func (s *trackingService) Today(ctx context.Context) ([]model.TrackingEvent, error) {
	var evs []model.TrackingEvent
	if err := s.api.Get(ctx, "/api/tracking/today", nil, &evs); err != nil {
		return nil, fmt.Errorf("tracking today: %w", err)
	}
	return evs, nil
}
