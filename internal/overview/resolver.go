// Package overview holds the aggregation core: per-principal detail
// resolution, the in-memory session state (collections, filters,
// selection), and the incidence matrix built for exports.
package overview

import (
	"context"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"secview/internal/domain"
)

// DetailSet is the resolved association data for one selected principal.
// Teams and Queues are populated for users; Members for teams; Roles for
// both.
type DetailSet struct {
	Roles   []domain.SecurityRole
	Teams   []domain.Team
	Queues  []domain.Queue
	Members []domain.User
}

// Resolver fetches detail sets with a fan-out-then-join per principal: all
// sub-fetches for one resolution start together and the first failure fails
// the whole resolution.
type Resolver struct {
	dir    domain.Directory
	logger *slog.Logger
}

// NewResolver creates a Resolver. A nil logger discards debug output.
func NewResolver(dir domain.Directory, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{dir: dir, logger: logger}
}

// Resolve fetches the detail set for one principal. Users resolve roles,
// team memberships, and queue memberships; teams resolve roles and members.
func (r *Resolver) Resolve(ctx context.Context, kind domain.EntityKind, id string) (*DetailSet, error) {
	details := &DetailSet{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if kind == domain.KindTeam {
			details.Roles, err = r.dir.RolesForTeam(gctx, id)
		} else {
			details.Roles, err = r.dir.RolesForUser(gctx, id)
		}
		return err
	})

	switch kind {
	case domain.KindTeam:
		g.Go(func() error {
			var err error
			details.Members, err = r.dir.MembersForTeam(gctx, id)
			return err
		})
	default:
		g.Go(func() error {
			var err error
			details.Teams, err = r.dir.TeamsForUser(gctx, id)
			return err
		})
		g.Go(func() error {
			var err error
			details.Queues, err = r.dir.QueuesForUser(gctx, id)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	r.logger.Debug("resolved details",
		"kind", string(kind), "id", id,
		"roles", len(details.Roles), "teams", len(details.Teams),
		"queues", len(details.Queues), "members", len(details.Members))
	return details, nil
}
