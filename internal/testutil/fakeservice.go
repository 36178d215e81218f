package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FakeService emulates the remote data service over HTTP: the list and
// association endpoints used by the client, server-side pagination with
// absolute continuation links (including the data API version prefix, so
// the client's link stripping is exercised), and a request counter for
// pagination assertions.
type FakeService struct {
	Server *httptest.Server

	// PageSize splits list responses into continuation pages. Zero means
	// everything in one page.
	PageSize int

	// FailPaths maps a path suffix to an HTTP status; matching requests
	// fail with that status.
	FailPaths map[string]int

	Users []map[string]any
	Teams []map[string]any

	RolesByUser   map[string][]map[string]any
	TeamsByUser   map[string][]map[string]any
	QueuesByUser  map[string][]map[string]any
	RolesByTeam   map[string][]map[string]any
	MembersByTeam map[string][]map[string]any

	requests atomic.Int64
}

// NewFakeService starts the fake. Callers own the returned server and must
// Close it (t.Cleanup works well).
func NewFakeService() *FakeService {
	f := &FakeService{
		FailPaths:     map[string]int{},
		RolesByUser:   map[string][]map[string]any{},
		TeamsByUser:   map[string][]map[string]any{},
		QueuesByUser:  map[string][]map[string]any{},
		RolesByTeam:   map[string][]map[string]any{},
		MembersByTeam: map[string][]map[string]any{},
	}

	r := chi.NewRouter()
	r.Route("/api/data/v9.2", func(r chi.Router) {
		r.Get("/systemusers", func(w http.ResponseWriter, req *http.Request) {
			f.servePaged(w, req, "systemusers", f.Users)
		})
		r.Get("/teams", func(w http.ResponseWriter, req *http.Request) {
			f.servePaged(w, req, "teams", f.Teams)
		})
		r.Get("/systemusers({id})/systemuserroles_association", func(w http.ResponseWriter, req *http.Request) {
			f.serveAssociation(w, req, f.RolesByUser)
		})
		r.Get("/systemusers({id})/teammembership_association", func(w http.ResponseWriter, req *http.Request) {
			f.serveAssociation(w, req, f.TeamsByUser)
		})
		r.Get("/systemusers({id})/queuemembership_association", func(w http.ResponseWriter, req *http.Request) {
			f.serveAssociation(w, req, f.QueuesByUser)
		})
		r.Get("/teams({id})/teamroles_association", func(w http.ResponseWriter, req *http.Request) {
			f.serveAssociation(w, req, f.RolesByTeam)
		})
		r.Get("/teams({id})/teammembership_association", func(w http.ResponseWriter, req *http.Request) {
			f.serveAssociation(w, req, f.MembersByTeam)
		})
	})

	f.Server = httptest.NewServer(r)
	return f
}

// Close shuts the underlying server down.
func (f *FakeService) Close() { f.Server.Close() }

// URL returns the service root the transport should be pointed at.
func (f *FakeService) URL() string { return f.Server.URL }

// RequestCount returns how many requests the fake has served.
func (f *FakeService) RequestCount() int64 { return f.requests.Load() }

// ResetRequestCount zeroes the request counter.
func (f *FakeService) ResetRequestCount() { f.requests.Store(0) }

func (f *FakeService) servePaged(w http.ResponseWriter, req *http.Request, entity string, records []map[string]any) {
	f.requests.Add(1)
	if f.failIfConfigured(w, req) {
		return
	}

	skip := 0
	if v := req.URL.Query().Get("$skiptoken"); v != "" {
		skip, _ = strconv.Atoi(v)
	}

	page := records[min(skip, len(records)):]
	body := map[string]any{}
	if f.PageSize > 0 && len(page) > f.PageSize {
		page = page[:f.PageSize]
		// Absolute link with the version prefix, as the real service
		// emits it.
		body["@odata.nextLink"] = fmt.Sprintf("%s/api/data/v9.2/%s?$skiptoken=%d",
			f.Server.URL, entity, skip+f.PageSize)
	}
	body["value"] = page
	writeJSON(w, body)
}

func (f *FakeService) serveAssociation(w http.ResponseWriter, req *http.Request, byID map[string][]map[string]any) {
	f.requests.Add(1)
	if f.failIfConfigured(w, req) {
		return
	}
	records := byID[chi.URLParam(req, "id")]
	if records == nil {
		records = []map[string]any{}
	}
	writeJSON(w, map[string]any{"value": records})
}

func (f *FakeService) failIfConfigured(w http.ResponseWriter, req *http.Request) bool {
	for suffix, status := range f.FailPaths {
		if pathHasSuffix(req.URL.Path, suffix) {
			http.Error(w, `{"error":{"message":"injected failure"}}`, status)
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func pathHasSuffix(path, suffix string) bool {
	return len(path) >= len(suffix) && path[len(path)-len(suffix):] == suffix
}

// Fixture constructors keep test setup terse. Each returns the raw record
// shape the fake serves, with a generated id.

// UserRecord builds a raw user record with a fresh id.
func UserRecord(fullName, domainName string, disabled bool) map[string]any {
	return map[string]any{
		"systemuserid": uuid.NewString(),
		"fullname":     fullName,
		"domainname":   domainName,
		"isdisabled":   disabled,
	}
}

// AppUserRecord builds a raw application-identity user record.
func AppUserRecord(fullName, domainName string) map[string]any {
	r := UserRecord(fullName, domainName, false)
	r["applicationid"] = uuid.NewString()
	return r
}

// TeamRecord builds a raw team record with a fresh id.
func TeamRecord(name string, teamType int, isDefault bool) map[string]any {
	return map[string]any{
		"teamid":    uuid.NewString(),
		"name":      name,
		"teamtype":  teamType,
		"isdefault": isDefault,
	}
}

// RoleRecord builds a raw security-role record with a fresh id.
func RoleRecord(name string, managed bool) map[string]any {
	return map[string]any{
		"roleid":    uuid.NewString(),
		"name":      name,
		"ismanaged": managed,
	}
}

// QueueRecord builds a raw queue record with a fresh id.
func QueueRecord(name string, typeCode int) map[string]any {
	return map[string]any{
		"queueid":       uuid.NewString(),
		"name":          name,
		"queuetypecode": typeCode,
	}
}

// WithBusinessUnit attaches an expanded business-unit lookup to a record.
func WithBusinessUnit(r map[string]any, id, name string) map[string]any {
	r["businessunitid"] = map[string]any{"businessunitid": id, "name": name}
	return r
}
