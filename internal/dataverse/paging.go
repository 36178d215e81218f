package dataverse

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"

	"secview/internal/domain"
)

// versionPrefix matches the data API prefix a continuation link carries when
// the service returns it as an absolute URL.
var versionPrefix = regexp.MustCompile(`^/api/data/v\d+\.\d+/`)

// FetchAll issues the query at relativePath and follows continuation links
// until the result set is exhausted, returning all records in page-arrival
// order. Exactly one request is issued per page; empty pages are legal. Any
// page failure abandons the whole fetch.
func FetchAll(ctx context.Context, t Transport, logger *slog.Logger, relativePath string) ([]Record, error) {
	var all []Record

	path := relativePath
	for path != "" {
		page, err := t.QueryData(ctx, path)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Value...)

		path, err = relativizeContinuation(page.NextLink)
		if err != nil {
			return nil, err
		}
		if path != "" {
			logger.Debug("following continuation", "path", path)
		}
	}

	logger.Debug("fetch complete", "path", relativePath, "records", len(all))
	return all, nil
}

// relativizeContinuation strips the scheme, host, and data API version
// prefix from a continuation link so it can be reissued against the fixed
// service root. Links that are already relative pass through unchanged.
func relativizeContinuation(next string) (string, error) {
	if next == "" {
		return "", nil
	}
	u, err := url.Parse(next)
	if err != nil {
		return "", domain.ErrTransport(err, "invalid continuation link %q", next)
	}
	if !u.IsAbs() {
		return next, nil
	}
	path := versionPrefix.ReplaceAllString(u.Path, "")
	path = trimLeadingSlash(path)
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path, nil
}

func trimLeadingSlash(s string) string {
	if len(s) > 0 && s[0] == '/' {
		return s[1:]
	}
	return s
}
