package overview

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"secview/internal/domain"
)

// Session holds the fetched collections, the active entity kind, the filter
// state, and the current selection with its resolved detail set. It is safe
// for concurrent use.
//
// Selection resolution is last-selection-wins: each Select stamps a
// monotonically increasing generation and a resolution whose generation is
// stale by the time it joins is discarded without touching state. There is
// no transport-level cancellation.
type Session struct {
	dir      domain.Directory
	resolver *Resolver
	logger   *slog.Logger

	mu         sync.Mutex
	users      []domain.User
	teams      []domain.Team
	kind       domain.EntityKind
	filters    domain.Filters
	selectedID string
	details    DetailSet
	generation uint64
}

// NewSession creates a session in the default state: user kind, default
// filters, empty collections.
func NewSession(dir domain.Directory, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		dir:      dir,
		resolver: NewResolver(dir, logger),
		logger:   logger,
		kind:     domain.KindUser,
		filters:  domain.DefaultFilters(),
	}
}

// Refresh fetches the user and team collections concurrently and replaces
// both wholesale. On failure the previous collections stay in place.
func (s *Session) Refresh(ctx context.Context) error {
	var (
		users []domain.User
		teams []domain.Team
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.dir.Users(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.dir.Teams(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("refresh failed", "error", err)
		return err
	}

	s.mu.Lock()
	s.users = users
	s.teams = teams
	s.mu.Unlock()
	s.logger.Info("collections refreshed", "users", len(users), "teams", len(teams))
	return nil
}

// EntityKind returns the active entity kind.
func (s *Session) EntityKind() domain.EntityKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// SetEntityKind switches the active entity kind. Switching resets the
// filters to their defaults and clears the selection and its detail set,
// in both directions.
func (s *Session) SetEntityKind(kind domain.EntityKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if kind == s.kind {
		return
	}
	s.kind = kind
	s.filters = domain.DefaultFilters()
	s.clearSelectionLocked()
	s.logger.Info("entity kind changed", "kind", string(kind))
}

// Filters returns the current filter state.
func (s *Session) Filters() domain.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters replaces the filter state.
func (s *Session) SetFilters(f domain.Filters) error {
	if err := f.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	return nil
}

// FilteredUsers returns the user collection under the current filters.
func (s *Session) FilteredUsers() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.ApplyUsers(s.users)
}

// FilteredTeams returns the team collection under the current filters.
func (s *Session) FilteredTeams() []domain.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.ApplyTeams(s.teams)
}

// Selection returns the selected principal id ("" when nothing is selected)
// and the detail set resolved for it.
func (s *Session) Selection() (string, DetailSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID, s.details
}

// Select changes the selection and resolves its detail set. An empty id
// clears the selection. If the selection changes again before this
// resolution completes, the superseded result is dropped at the join point
// and Select returns nil without touching state. A failed resolution clears
// the detail set for the selection and returns the error.
func (s *Session) Select(ctx context.Context, id string) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.selectedID = id
	s.details = DetailSet{}
	kind := s.kind
	s.mu.Unlock()

	if id == "" {
		return nil
	}

	details, err := s.resolver.Resolve(ctx, kind, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug("discarding superseded resolution", "id", id)
		return nil
	}
	if err != nil {
		s.details = DetailSet{}
		s.logger.Error("detail resolution failed", "id", id, "error", err)
		return err
	}
	s.details = *details
	return nil
}

func (s *Session) clearSelectionLocked() {
	s.generation++
	s.selectedID = ""
	s.details = DetailSet{}
}
