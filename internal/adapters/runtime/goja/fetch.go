package goja

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bnema/dx/internal/domain"
)

const (
	DefaultFetchTimeout = 15 * time.Second
	maxModuleSize       = 32 << 20
)

var ErrUnsupportedScheme = errors.New("unsupported module scheme")

// Registries are the base URLs that npm: and jsr: specifiers are fetched
// from. The package path is appended verbatim.
type Registries struct {
	NPM string
	JSR string
}

type Fetcher struct {
	client     *http.Client
	registries Registries
}

func NewFetcher(client *http.Client, registries Registries) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}

	return &Fetcher{client: client, registries: registries}
}

// Location maps a resolved specifier to the URL its source is fetched from.
func (f *Fetcher) Location(specifier string) (string, error) {
	switch {
	case strings.HasPrefix(specifier, domain.NPMScheme):
		return registryURL(f.registries.NPM, "npm", strings.TrimPrefix(specifier, domain.NPMScheme))
	case strings.HasPrefix(specifier, domain.JSRScheme):
		return registryURL(f.registries.JSR, "jsr", strings.TrimPrefix(specifier, domain.JSRScheme))
	}

	u, err := url.Parse(specifier)
	if err != nil {
		return "", fmt.Errorf("parse module specifier %q: %w", specifier, err)
	}

	switch u.Scheme {
	case "http", "https", "file":
		return u.String(), nil
	default:
		return "", fmt.Errorf("%w %q in %s", ErrUnsupportedScheme, u.Scheme, specifier)
	}
}

func registryURL(base, registry, pkg string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("no %s registry configured for %s:%s", registry, registry, pkg)
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return base + strings.TrimPrefix(pkg, "/"), nil
}

// Fetch returns the source stored at location.
func (f *Fetcher) Fetch(ctx context.Context, location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parse module location %q: %w", location, err)
	}

	switch u.Scheme {
	case "file":
		data, err := os.ReadFile(u.Path)
		if err != nil {
			return "", fmt.Errorf("read module %s: %w", u.Path, err)
		}
		return string(data), nil
	case "http", "https":
		return f.fetchHTTP(ctx, location)
	default:
		return "", fmt.Errorf("%w %q in %s", ErrUnsupportedScheme, u.Scheme, location)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, location string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", location, err)
	}
	req.Header.Set("Accept", "application/javascript, text/javascript, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: http %d", location, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxModuleSize+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", location, err)
	}
	if len(body) > maxModuleSize {
		return "", fmt.Errorf("fetch %s: module larger than %d bytes", location, maxModuleSize)
	}

	return string(body), nil
}
