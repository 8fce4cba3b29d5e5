package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/portal/internal/client/models"
	"github.com/dmitrijs2005/portal/internal/logging"
)

// DefaultFreshness is how long a cached response is served without
// revalidation.
const DefaultFreshness = 30 * time.Second

// Source is the catalog as seen by views.
type Source struct {
	q       Querier
	pages   *Cache[int, models.CharacterPage]
	details *Cache[string, models.CharacterDetail]
	logger  logging.Logger
}

func NewSource(q Querier, freshness time.Duration, logger logging.Logger) *Source {
	if freshness < 0 {
		freshness = 0
	}
	return &Source{
		q:       q,
		pages:   NewCache[int, models.CharacterPage](freshness),
		details: NewCache[string, models.CharacterDetail](freshness),
		logger:  logger.With("module", "catalog"),
	}
}

// OnPageRefreshed registers fn to run when a background revalidation of a
// list page stored new data.
func (s *Source) OnPageRefreshed(fn func(page int, p models.CharacterPage)) {
	s.pages.OnUpdate(fn)
}

// OnDetailRefreshed is OnPageRefreshed for detail records.
func (s *Source) OnDetailRefreshed(fn func(id string, d models.CharacterDetail)) {
	s.details.OnUpdate(fn)
}

// ListPage returns one page of the catalog. The page number is sent
// verbatim; range checks belong to the caller.
func (s *Source) ListPage(ctx context.Context, page int) Result[models.CharacterPage] {
	res := s.pages.Get(ctx, page, s.fetchPage(page))
	s.logResult(ctx, "list page", res.Err, "page", page, "cached", res.Cached, "stale", res.Stale)
	return res
}

// RefreshPage bypasses the freshness window for one page.
func (s *Source) RefreshPage(ctx context.Context, page int) Result[models.CharacterPage] {
	res := s.pages.Refresh(ctx, page, s.fetchPage(page))
	s.logResult(ctx, "refresh page", res.Err, "page", page)
	return res
}

// GetDetail returns the full record for id. An empty id is the skip
// condition: no request is made and Err is ErrSkipped.
func (s *Source) GetDetail(ctx context.Context, id string) Result[models.CharacterDetail] {
	id = strings.TrimSpace(id)
	if id == "" {
		return Result[models.CharacterDetail]{Err: ErrSkipped}
	}
	res := s.details.Get(ctx, id, s.fetchDetail(id))
	s.logResult(ctx, "get detail", res.Err, "id", id, "cached", res.Cached, "stale", res.Stale)
	return res
}

// RefreshDetail bypasses the freshness window for one record.
func (s *Source) RefreshDetail(ctx context.Context, id string) Result[models.CharacterDetail] {
	id = strings.TrimSpace(id)
	if id == "" {
		return Result[models.CharacterDetail]{Err: ErrSkipped}
	}
	return s.details.Refresh(ctx, id, s.fetchDetail(id))
}

// Wait blocks until background revalidations have finished.
func (s *Source) Wait() {
	s.pages.Wait()
	s.details.Wait()
}

func (s *Source) fetchPage(page int) func(context.Context) (models.CharacterPage, error) {
	return func(ctx context.Context) (models.CharacterPage, error) {
		var data charactersData
		err := s.q.Query(ctx, opGetCharacters, queryGetCharacters, map[string]any{"page": page}, &data)
		if err != nil {
			return models.CharacterPage{}, err
		}
		if data.Characters == nil {
			return models.CharacterPage{}, nil
		}
		return *data.Characters, nil
	}
}

func (s *Source) fetchDetail(id string) func(context.Context) (models.CharacterDetail, error) {
	return func(ctx context.Context) (models.CharacterDetail, error) {
		var data characterData
		err := s.q.Query(ctx, opGetCharacter, queryGetCharacter, map[string]any{"id": id}, &data)
		if err != nil {
			return models.CharacterDetail{}, err
		}
		if data.Character == nil || data.Character.ID == "" {
			return models.CharacterDetail{}, ErrNotFound
		}
		return *data.Character, nil
	}
}

func (s *Source) logResult(ctx context.Context, op string, err error, args ...any) {
	if err == nil {
		s.logger.Debug(ctx, op, args...)
		return
	}
	s.logger.Warn(ctx, op+" failed", append(args, "error", err)...)
}
