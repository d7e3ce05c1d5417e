package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"entity-journal-cli/internal/dto"
	"entity-journal-cli/internal/gateway"
	"entity-journal-cli/internal/model"
	"entity-journal-cli/pkg/mention"

	"github.com/patrickmn/go-cache"
)

type IEntityService interface {
	Create(ctx context.Context, req dto.CreateEntityRequest) (*model.Entity, error)
	Update(ctx context.Context, id string, req dto.UpdateEntityRequest) (*model.Entity, error)
	Get(ctx context.Context, id string) (*model.Entity, error)
	List(ctx context.Context, entityType model.EntityType) ([]model.Entity, error)
	Search(ctx context.Context, q string, entityType model.EntityType) ([]model.Entity, error)
	ListArchived(ctx context.Context) ([]model.Entity, error)
	Archive(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*model.Entity, error)

	// Candidates projects the entity collection into the mention pipeline's
	// shape. Served from a short-lived cache so every keystroke in the
	// editor does not become a network call.
	Candidates(ctx context.Context) ([]mention.Candidate, error)
}

// Entity lists change rarely within an editing session; 30 seconds keeps the
// popup fresh without hammering the backend.
const entityCacheTTL = 30 * time.Second

type entityService struct {
	api   *gateway.Gateway
	cache *cache.Cache
}

func NewEntityService(api *gateway.Gateway) IEntityService {
	return &entityService{
		api:   api,
		cache: cache.New(entityCacheTTL, time.Minute),
	}
}

func (s *entityService) Create(ctx context.Context, req dto.CreateEntityRequest) (*model.Entity, error) {
	var e model.Entity
	if err := s.api.Post(ctx, "/api/entities", req, &e); err != nil {
		return nil, fmt.Errorf("create entity: %w", err)
	}
	s.cache.Flush()
	return &e, nil
}

func (s *entityService) Update(ctx context.Context, id string, req dto.UpdateEntityRequest) (*model.Entity, error) {
	var e model.Entity
	if err := s.api.Put(ctx, "/api/entities/"+id, req, &e); err != nil {
		return nil, fmt.Errorf("update entity %s: %w", id, err)
	}
	s.cache.Flush()
	return &e, nil
}

func (s *entityService) Get(ctx context.Context, id string) (*model.Entity, error) {
	var e model.Entity
	if err := s.api.Get(ctx, "/api/entities/"+id, nil, &e); err != nil {
		return nil, fmt.Errorf("get entity %s: %w", id, err)
	}
	return &e, nil
}

func (s *entityService) List(ctx context.Context, entityType model.EntityType) ([]model.Entity, error) {
	key := "entities:" + string(entityType)
	if cached, found := s.cache.Get(key); found {
		return cached.([]model.Entity), nil
	}

	params := url.Values{}
	if entityType != "" {
		params.Set("type", string(entityType))
	}
	var entities []model.Entity
	if err := s.api.Get(ctx, "/api/entities", params, &entities); err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	s.cache.Set(key, entities, cache.DefaultExpiration)
	return entities, nil
}

func (s *entityService) Search(ctx context.Context, q string, entityType model.EntityType) ([]model.Entity, error) {
	params := url.Values{}
	params.Set("q", q)
	if entityType != "" {
		params.Set("type", string(entityType))
	}
	var entities []model.Entity
	if err := s.api.Get(ctx, "/api/entities/search", params, &entities); err != nil {
		return nil, fmt.Errorf("search entities: %w", err)
	}
	return entities, nil
}

func (s *entityService) ListArchived(ctx context.Context) ([]model.Entity, error) {
	var entities []model.Entity
	if err := s.api.Get(ctx, "/api/entities/archived", nil, &entities); err != nil {
		return nil, fmt.Errorf("list archived entities: %w", err)
	}
	return entities, nil
}

func (s *entityService) Archive(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, "/api/entities/"+id, nil); err != nil {
		return fmt.Errorf("archive entity %s: %w", id, err)
	}
	s.cache.Flush()
	return nil
}

func (s *entityService) Restore(ctx context.Context, id string) (*model.Entity, error) {
	var e model.Entity
	if err := s.api.Post(ctx, "/api/entities/"+id+"/restore", nil, &e); err != nil {
		return nil, fmt.Errorf("restore entity %s: %w", id, err)
	}
	s.cache.Flush()
	return &e, nil
}

func (s *entityService) Candidates(ctx context.Context) ([]mention.Candidate, error) {
	entities, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	candidates := make([]mention.Candidate, 0, len(entities))
	for i := range entities {
		e := &entities[i]
		candidates = append(candidates, mention.Candidate{
			Id:       e.Id,
			Name:     e.Name,
			Icon:     e.Icon,
			TypeTag:  strings.ToLower(string(e.Type)),
			Archived: e.Archived(),
		})
	}
	return candidates, nil
}
