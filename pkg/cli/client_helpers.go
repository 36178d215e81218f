package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"secview/internal/dataverse"
	"secview/internal/domain"
)

// newDirectory validates the connection settings and builds the directory
// client. When no token is configured and stdin is a terminal, the operator
// is prompted for one without echo.
func newDirectory(state *appState) (domain.Directory, error) {
	cfg := state.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Token == "" {
		token, err := promptToken()
		if err != nil {
			return nil, err
		}
		cfg.Token = token
	}

	transport, err := dataverse.NewHTTPTransport(dataverse.HTTPTransportConfig{
		ServiceURL:        cfg.ServiceURL,
		APIVersion:        cfg.APIVersion,
		Token:             cfg.Token,
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
		Logger:            state.logger,
	})
	if err != nil {
		return nil, err
	}
	return dataverse.NewClient(transport, state.logger), nil
}

func promptToken() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", domain.ErrValidation("no token configured: set SECVIEW_TOKEN, --token, or a profile token")
	}
	fmt.Fprint(os.Stderr, "Access token: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if len(raw) == 0 {
		return "", domain.ErrValidation("empty token")
	}
	return string(raw), nil
}

// filterFlags are the list/export filter options shared by several commands.
type filterFlags struct {
	status       string
	userType     string
	businessUnit string
	search       string
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.status, "status", string(domain.StatusEnabled),
		"User status filter: all, enabled, disabled")
	fs.StringVar(&f.userType, "type", string(domain.UserTypeHumans),
		"User type filter: all, users, applications")
	fs.StringVar(&f.businessUnit, "business-unit", domain.BusinessUnitAll,
		"Business unit id filter, or 'all'")
	fs.StringVar(&f.search, "search", "",
		"Case-insensitive substring filter over names")
}

func (f *filterFlags) toFilters() (domain.Filters, error) {
	filters := domain.Filters{
		Status:       domain.StatusFilter(f.status),
		UserType:     domain.UserTypeFilter(f.userType),
		BusinessUnit: f.businessUnit,
		Text:         f.search,
	}
	if err := filters.Validate(); err != nil {
		return domain.Filters{}, err
	}
	return filters, nil
}
