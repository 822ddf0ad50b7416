package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mentron-app/mentron-api/internal/authz"
	"github.com/mentron-app/mentron-api/internal/models"
	appErrors "github.com/mentron-app/mentron-api/pkg/errors"
)

type searchRepository interface {
	Materials(ctx context.Context, query string, limit int) ([]models.MaterialHit, error)
	Groups(ctx context.Context, query string, limit int) ([]models.GroupHit, error)
}

// SearchService fans one free-text query out to the materials and groups
// collections and merges both outcomes into a single envelope.
type SearchService struct {
	repo        searchRepository
	logger      *zap.Logger
	resultLimit int
}

// NewSearchService constructs the service.
func NewSearchService(repo searchRepository, logger *zap.Logger, resultLimit int) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if resultLimit <= 0 {
		resultLimit = 5
	}
	return &SearchService{repo: repo, logger: logger, resultLimit: resultLimit}
}

// Search runs both sub-queries concurrently and waits for both to settle
// before returning. An empty query short-circuits to an empty envelope with
// no store access. A failed branch degrades to an empty slice rather than
// failing the whole search; partial results beat no results for a typeahead.
func (s *SearchService) Search(ctx context.Context, actor models.Actor, query string) (*models.SearchResult, error) {
	decision := authz.Authorize(actor, authz.ActionSearch, authz.ResourceRef{})
	if !decision.Allowed {
		return nil, appErrors.Clone(appErrors.ErrForbidden, decision.Reason)
	}

	result := &models.SearchResult{
		Materials: []models.MaterialHit{},
		Groups:    []models.GroupHit{},
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return result, nil
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		hits, err := s.repo.Materials(ctx, query, s.resultLimit)
		if err != nil {
			s.logger.Warn("materials search failed", zap.String("query", query), zap.Error(err))
			return
		}
		if hits != nil {
			result.Materials = hits
		}
	}()

	go func() {
		defer wg.Done()
		hits, err := s.repo.Groups(ctx, query, s.resultLimit)
		if err != nil {
			s.logger.Warn("groups search failed", zap.String("query", query), zap.Error(err))
			return
		}
		if hits != nil {
			result.Groups = hits
		}
	}()

	wg.Wait()
	return result, nil
}
