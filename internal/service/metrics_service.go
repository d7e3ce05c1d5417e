package service

import (
	"context"
	"fmt"

	"entity-journal-cli/internal/gateway"
	"entity-journal-cli/internal/model"
)

type IMetricsService interface {
	Dashboard(ctx context.Context) (*model.DashboardMetrics, error)
	Timeline(ctx context.Context, entityId string) (*model.EntityTimeline, error)
}

type metricsService struct {
	api *gateway.Gateway
}

func NewMetricsService(api *gateway.Gateway) IMetricsService {
	return &metricsService{api: api}
}

func (s *metricsService) Dashboard(ctx context.Context) (*model.DashboardMetrics, error) {
	var m model.DashboardMetrics
	if err := s.api.Get(ctx, "/api/metrics/dashboard", nil, &m); err != nil {
		return nil, fmt.Errorf("dashboard metrics: %w", err)
	}
	return &m, nil
}

func (s *metricsService) Timeline(ctx context.Context, entityId string) (*model.EntityTimeline, error) {
	var tl model.EntityTimeline
	if err := s.api.Get(ctx, "/api/metrics/entities/"+entityId+"/timeline", nil, &tl); err != nil {
		return nil, fmt.Errorf("timeline %s: %w", entityId, err)
	}
	return &tl, nil
}
