// Package testutil provides shared fakes for tests across the codebase: an
// in-memory directory, a recording host, and an HTTP fake of the remote
// data service.
package testutil

import (
	"context"
	"sync"

	"secview/internal/domain"
	"secview/internal/host"
)

// MockDirectory implements domain.Directory from in-memory fixture maps.
// Optional Fn hooks override individual methods for error injection or
// blocking.
type MockDirectory struct {
	UsersData []domain.User
	TeamsData []domain.Team

	RolesByUser   map[string][]domain.SecurityRole
	TeamsByUser   map[string][]domain.Team
	QueuesByUser  map[string][]domain.Queue
	RolesByTeam   map[string][]domain.SecurityRole
	MembersByTeam map[string][]domain.User

	UsersFn          func(ctx context.Context) ([]domain.User, error)
	TeamsFn          func(ctx context.Context) ([]domain.Team, error)
	RolesForUserFn   func(ctx context.Context, id string) ([]domain.SecurityRole, error)
	TeamsForUserFn   func(ctx context.Context, id string) ([]domain.Team, error)
	QueuesForUserFn  func(ctx context.Context, id string) ([]domain.Queue, error)
	RolesForTeamFn   func(ctx context.Context, id string) ([]domain.SecurityRole, error)
	MembersForTeamFn func(ctx context.Context, id string) ([]domain.User, error)
}

var _ domain.Directory = (*MockDirectory)(nil)

func (m *MockDirectory) Users(ctx context.Context) ([]domain.User, error) {
	if m.UsersFn != nil {
		return m.UsersFn(ctx)
	}
	return m.UsersData, nil
}

func (m *MockDirectory) Teams(ctx context.Context) ([]domain.Team, error) {
	if m.TeamsFn != nil {
		return m.TeamsFn(ctx)
	}
	return m.TeamsData, nil
}

func (m *MockDirectory) RolesForUser(ctx context.Context, id string) ([]domain.SecurityRole, error) {
	if m.RolesForUserFn != nil {
		return m.RolesForUserFn(ctx, id)
	}
	return m.RolesByUser[id], nil
}

func (m *MockDirectory) TeamsForUser(ctx context.Context, id string) ([]domain.Team, error) {
	if m.TeamsForUserFn != nil {
		return m.TeamsForUserFn(ctx, id)
	}
	return m.TeamsByUser[id], nil
}

func (m *MockDirectory) QueuesForUser(ctx context.Context, id string) ([]domain.Queue, error) {
	if m.QueuesForUserFn != nil {
		return m.QueuesForUserFn(ctx, id)
	}
	return m.QueuesByUser[id], nil
}

func (m *MockDirectory) RolesForTeam(ctx context.Context, id string) ([]domain.SecurityRole, error) {
	if m.RolesForTeamFn != nil {
		return m.RolesForTeamFn(ctx, id)
	}
	return m.RolesByTeam[id], nil
}

func (m *MockDirectory) MembersForTeam(ctx context.Context, id string) ([]domain.User, error) {
	if m.MembersForTeamFn != nil {
		return m.MembersForTeamFn(ctx, id)
	}
	return m.MembersByTeam[id], nil
}

// MockHost implements host.Host, recording every delivery for assertions.
type MockHost struct {
	mu sync.Mutex

	SavedFiles    map[string][]byte
	Clipboard     []string
	Notifications []host.Notification

	SaveFileErr     error
	CopyErr         error
	NotificationErr error
}

var _ host.Host = (*MockHost)(nil)

// NewMockHost creates an empty recording host.
func NewMockHost() *MockHost {
	return &MockHost{SavedFiles: map[string][]byte{}}
}

func (m *MockHost) SaveFile(_ context.Context, suggestedName string, content []byte) error {
	if m.SaveFileErr != nil {
		return m.SaveFileErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SavedFiles[suggestedName] = content
	return nil
}

func (m *MockHost) CopyToClipboard(_ context.Context, content string) error {
	if m.CopyErr != nil {
		return m.CopyErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clipboard = append(m.Clipboard, content)
	return nil
}

func (m *MockHost) ShowNotification(_ context.Context, n host.Notification) error {
	if m.NotificationErr != nil {
		return m.NotificationErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = append(m.Notifications, n)
	return nil
}

// LastNotification returns the last recorded notification, or nil.
func (m *MockHost) LastNotification() *host.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Notifications) == 0 {
		return nil
	}
	return &m.Notifications[len(m.Notifications)-1]
}
