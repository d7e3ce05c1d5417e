package service

import (
	"context"
	"fmt"

	"entity-journal-cli/internal/dto"
	"entity-journal-cli/internal/gateway"
	"entity-journal-cli/internal/model"
)

type ISubscriptionService interface {
	Me(ctx context.Context) (*model.Subscription, error)
	Checkout(ctx context.Context, priceId string) (*dto.CheckoutResponse, error)
	Cancel(ctx context.Context) (*model.Subscription, error)
}

type subscriptionService struct {
	api *gateway.Gateway
}

func NewSubscriptionService(api *gateway.Gateway) ISubscriptionService {
	return &subscriptionService{api: api}
}

func (s *subscriptionService) Me(ctx context.Context) (*model.Subscription, error) {
	var sub model.Subscription
	if err := s.api.Get(ctx, "/api/subscriptions/me", nil, &sub); err != nil {
		return nil, fmt.Errorf("subscription: %w", err)
	}
	return &sub, nil
}

// Checkout asks the backend for a hosted payment session; the client only
// hands the URL to the user, enforcement stays remote.
func (s *subscriptionService) Checkout(ctx context.Context, priceId string) (*dto.CheckoutResponse, error) {
	var res dto.CheckoutResponse
	if err := s.api.Post(ctx, "/api/subscriptions/checkout", dto.CheckoutRequest{PriceId: priceId}, &res); err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	return &res, nil
}

func (s *subscriptionService) Cancel(ctx context.Context) (*model.Subscription, error) {
	var sub model.Subscription
	if err := s.api.Post(ctx, "/api/subscriptions/cancel", nil, &sub); err != nil {
		return nil, fmt.Errorf("cancel subscription: %w", err)
	}
	return &sub, nil
}
