package dataverse

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"secview/internal/domain"
)

// Entity query catalog. Each query names its explicit field projection and
// business-unit expansion; list queries carry a server-side order-by.
const (
	usersQuery = "systemusers?$select=systemuserid,fullname,domainname,isdisabled,applicationid" +
		"&$expand=businessunitid($select=businessunitid,name)&$orderby=fullname"
	teamsQuery = "teams?$select=teamid,name,teamtype,isdefault" +
		"&$expand=businessunitid($select=businessunitid,name)&$orderby=name"

	userRolesQueryFmt = "systemusers(%s)/systemuserroles_association?$select=roleid,name,ismanaged" +
		"&$expand=businessunitid($select=businessunitid,name)"
	userTeamsQueryFmt = "systemusers(%s)/teammembership_association?$select=teamid,name,teamtype,isdefault" +
		"&$expand=businessunitid($select=businessunitid,name)"
	userQueuesQueryFmt = "systemusers(%s)/queuemembership_association?$select=queueid,name,queuetypecode"

	teamRolesQueryFmt = "teams(%s)/teamroles_association?$select=roleid,name,ismanaged" +
		"&$expand=businessunitid($select=businessunitid,name)"
	teamMembersQueryFmt = "teams(%s)/teammembership_association?$select=systemuserid,fullname,domainname,isdisabled,applicationid" +
		"&$expand=businessunitid($select=businessunitid,name)"
)

// Client implements domain.Directory against a Transport.
type Client struct {
	transport Transport
	logger    *slog.Logger
}

var _ domain.Directory = (*Client)(nil)

// NewClient creates a directory client. A nil logger discards debug output.
func NewClient(t Transport, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{transport: t, logger: logger}
}

// Users returns every principal-user, ordered by full name.
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	records, err := FetchAll(ctx, c.transport, c.logger, usersQuery)
	if err != nil {
		return nil, err
	}
	return mapRecords(records, normalizeUser), nil
}

// Teams returns every team, ordered by name.
func (c *Client) Teams(ctx context.Context) ([]domain.Team, error) {
	records, err := FetchAll(ctx, c.transport, c.logger, teamsQuery)
	if err != nil {
		return nil, err
	}
	return mapRecords(records, normalizeTeam), nil
}

// RolesForUser returns the security roles assigned to a user.
func (c *Client) RolesForUser(ctx context.Context, userID string) ([]domain.SecurityRole, error) {
	records, err := FetchAll(ctx, c.transport, c.logger, fmt.Sprintf(userRolesQueryFmt, userID))
	if err != nil {
		return nil, err
	}
	return mapRecords(records, normalizeRole), nil
}

// TeamsForUser returns the teams a user is a member of.
func (c *Client) TeamsForUser(ctx context.Context, userID string) ([]domain.Team, error) {
	records, err := FetchAll(ctx, c.transport, c.logger, fmt.Sprintf(userTeamsQueryFmt, userID))
	if err != nil {
		return nil, err
	}
	return mapRecords(records, normalizeTeam), nil
}

// QueuesForUser returns the queues a user is a member of.
func (c *Client) QueuesForUser(ctx context.Context, userID string) ([]domain.Queue, error) {
	records, err := FetchAll(ctx, c.transport, c.logger, fmt.Sprintf(userQueuesQueryFmt, userID))
	if err != nil {
		return nil, err
	}
	return mapRecords(records, normalizeQueue), nil
}

// RolesForTeam returns the security roles assigned to a team.
func (c *Client) RolesForTeam(ctx context.Context, teamID string) ([]domain.SecurityRole, error) {
	records, err := FetchAll(ctx, c.transport, c.logger, fmt.Sprintf(teamRolesQueryFmt, teamID))
	if err != nil {
		return nil, err
	}
	return mapRecords(records, normalizeRole), nil
}

// MembersForTeam returns the users that are members of a team.
func (c *Client) MembersForTeam(ctx context.Context, teamID string) ([]domain.User, error) {
	records, err := FetchAll(ctx, c.transport, c.logger, fmt.Sprintf(teamMembersQueryFmt, teamID))
	if err != nil {
		return nil, err
	}
	return mapRecords(records, normalizeUser), nil
}

func mapRecords[T any](records []Record, normalize func(Record) T) []T {
	out := make([]T, len(records))
	for i, r := range records {
		out[i] = normalize(r)
	}
	return out
}
