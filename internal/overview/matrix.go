package overview

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"secview/internal/domain"
)

// AttributeKind labels a matrix column with the association it came from.
type AttributeKind string

const (
	AttrRole   AttributeKind = "Role"
	AttrTeam   AttributeKind = "Team"
	AttrQueue  AttributeKind = "Queue"
	AttrMember AttributeKind = "Member"
)

// AttributeRef identifies one matrix column.
type AttributeRef struct {
	Kind AttributeKind
	ID   string
	Name string
}

// Row is one principal's matrix row: the principal snapshot, its raw detail
// set, and the set of attribute ids it holds.
type Row struct {
	User    *domain.User
	Team    *domain.Team
	Details DetailSet
	Held    map[string]struct{}
}

// HasAttribute reports whether the row holds the given column's attribute.
func (r Row) HasAttribute(col AttributeRef) bool {
	_, ok := r.Held[heldKey(col.Kind, col.ID)]
	return ok
}

// Matrix is the principal × attribute incidence matrix for one export. The
// column set is the sparse union of attributes observed across the rows:
// grouped by kind (roles, then teams, then queues, then members), each group
// ordered by display name with id tie-break. An attribute held by no
// principal never appears.
type Matrix struct {
	Kind    domain.EntityKind
	Columns []AttributeRef
	Rows    []Row
}

// MatrixBuilder resolves detail sets for a principal collection and
// assembles the incidence matrix.
//
// Per-principal resolution is sequential by default, bounding concurrent
// load against the remote service; Concurrency raises the bound. Any single
// resolution failure abandons the whole build.
type MatrixBuilder struct {
	resolver *Resolver
	logger   *slog.Logger

	// Concurrency is the maximum number of principals resolved at once.
	// Values below 1 mean sequential.
	Concurrency int
}

// NewMatrixBuilder creates a sequential MatrixBuilder.
func NewMatrixBuilder(dir domain.Directory, logger *slog.Logger) *MatrixBuilder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &MatrixBuilder{resolver: NewResolver(dir, logger), logger: logger}
}

// BuildUsers builds the matrix for a filtered user collection. Row order
// follows the input order.
func (b *MatrixBuilder) BuildUsers(ctx context.Context, users []domain.User) (*Matrix, error) {
	rows := make([]Row, len(users))
	err := b.resolveAll(ctx, len(users), func(ctx context.Context, i int) error {
		u := users[i]
		details, err := b.resolver.Resolve(ctx, domain.KindUser, u.ID)
		if err != nil {
			return err
		}
		rows[i] = Row{User: &users[i], Details: *details, Held: heldSet(*details)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Matrix{Kind: domain.KindUser, Columns: collectColumns(rows), Rows: rows}, nil
}

// BuildTeams builds the matrix for a filtered team collection.
func (b *MatrixBuilder) BuildTeams(ctx context.Context, teams []domain.Team) (*Matrix, error) {
	rows := make([]Row, len(teams))
	err := b.resolveAll(ctx, len(teams), func(ctx context.Context, i int) error {
		t := teams[i]
		details, err := b.resolver.Resolve(ctx, domain.KindTeam, t.ID)
		if err != nil {
			return err
		}
		rows[i] = Row{Team: &teams[i], Details: *details, Held: heldSet(*details)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Matrix{Kind: domain.KindTeam, Columns: collectColumns(rows), Rows: rows}, nil
}

// resolveAll runs fn for each index, sequentially or with the configured
// bound. All-or-nothing: the first error aborts the build.
func (b *MatrixBuilder) resolveAll(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if b.Concurrency <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Concurrency)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return fn(gctx, i) })
	}
	return g.Wait()
}

// collectColumns unions every observed attribute across the rows into the
// ordered column set.
func collectColumns(rows []Row) []AttributeRef {
	roles := map[string]string{}
	teams := map[string]string{}
	queues := map[string]string{}
	members := map[string]string{}
	for _, row := range rows {
		for _, r := range row.Details.Roles {
			roles[r.ID] = r.Name
		}
		for _, t := range row.Details.Teams {
			teams[t.ID] = t.Name
		}
		for _, q := range row.Details.Queues {
			queues[q.ID] = q.Name
		}
		for _, m := range row.Details.Members {
			members[m.ID] = m.FullName
		}
	}

	var cols []AttributeRef
	cols = append(cols, sortedColumns(AttrRole, roles)...)
	cols = append(cols, sortedColumns(AttrTeam, teams)...)
	cols = append(cols, sortedColumns(AttrQueue, queues)...)
	cols = append(cols, sortedColumns(AttrMember, members)...)
	return cols
}

func sortedColumns(kind AttributeKind, byID map[string]string) []AttributeRef {
	cols := make([]AttributeRef, 0, len(byID))
	for id, name := range byID {
		cols = append(cols, AttributeRef{Kind: kind, ID: id, Name: name})
	}
	sort.Slice(cols, func(i, j int) bool {
		if cols[i].Name != cols[j].Name {
			return cols[i].Name < cols[j].Name
		}
		return cols[i].ID < cols[j].ID
	})
	return cols
}

func heldSet(d DetailSet) map[string]struct{} {
	held := make(map[string]struct{})
	for _, r := range d.Roles {
		held[heldKey(AttrRole, r.ID)] = struct{}{}
	}
	for _, t := range d.Teams {
		held[heldKey(AttrTeam, t.ID)] = struct{}{}
	}
	for _, q := range d.Queues {
		held[heldKey(AttrQueue, q.ID)] = struct{}{}
	}
	for _, m := range d.Members {
		held[heldKey(AttrMember, m.ID)] = struct{}{}
	}
	return held
}

func heldKey(kind AttributeKind, id string) string {
	return string(kind) + ":" + id
}
