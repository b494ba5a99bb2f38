// Package asset fetches shader source text by path.
package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"
)

var ErrAssetFetch = errors.New("asset fetch failed")

// AssetFetchError reports a text resource that could not be retrieved.
type AssetFetchError struct {
	Path string
	Err  error
}

func (e *AssetFetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Path, e.Err)
}

func (e *AssetFetchError) Unwrap() error {
	return e.Err
}

func (e *AssetFetchError) Is(target error) bool {
	return target == ErrAssetFetch
}

// Source returns the full text stored under a path.
type Source interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// FS reads assets from a file system such as assets.FS or os.DirFS.
type FS struct {
	FS fs.FS
}

func NewFS(fsys fs.FS) *FS {
	return &FS{FS: fsys}
}

func (s *FS) Fetch(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &AssetFetchError{Path: name, Err: err}
	}
	data, err := fs.ReadFile(s.FS, strings.TrimPrefix(name, "/"))
	if err != nil {
		return "", &AssetFetchError{Path: name, Err: err}
	}
	return string(data), nil
}

// HTTP fetches assets relative to BaseURL. In the browser build the request
// goes through the page's fetch API.
type HTTP struct {
	Client  *http.Client
	BaseURL string
}

func NewHTTP(baseURL string) *HTTP {
	return &HTTP{Client: http.DefaultClient, BaseURL: baseURL}
}

func (s *HTTP) resolve(name string) (string, error) {
	if s.BaseURL == "" {
		return "/" + strings.TrimPrefix(name, "/"), nil
	}
	base, err := url.Parse(s.BaseURL)
	if err != nil {
		return "", err
	}
	base.Path = path.Join("/", base.Path, name)
	return base.String(), nil
}

func (s *HTTP) Fetch(ctx context.Context, name string) (string, error) {
	target, err := s.resolve(name)
	if err != nil {
		return "", &AssetFetchError{Path: name, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &AssetFetchError{Path: name, Err: err}
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &AssetFetchError{Path: name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &AssetFetchError{Path: name, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AssetFetchError{Path: name, Err: err}
	}
	return string(data), nil
}

// Pair is the vertex and fragment source of one program.
type Pair struct {
	Vertex   string
	Fragment string
}

// LoadPair fetches both sources concurrently and returns only when both are
// available. The first failure cancels the other fetch.
func LoadPair(ctx context.Context, src Source, logger *slog.Logger, vertexPath, fragmentPath string) (Pair, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var pair Pair
	g, gctx := errgroup.WithContext(ctx)
	fetch := func(name string, dst *string) func() error {
		return func() error {
			text, err := src.Fetch(gctx, name)
			if err != nil {
				var fetchErr *AssetFetchError
				if !errors.As(err, &fetchErr) {
					err = &AssetFetchError{Path: name, Err: err}
				}
				return err
			}
			if strings.TrimSpace(text) == "" {
				return &AssetFetchError{Path: name, Err: errors.New("empty resource")}
			}
			*dst = text
			return nil
		}
	}
	g.Go(fetch(vertexPath, &pair.Vertex))
	g.Go(fetch(fragmentPath, &pair.Fragment))

	if err := g.Wait(); err != nil {
		logger.Debug("shader fetch failed", "err", err)
		return Pair{}, err
	}
	logger.Debug("shaders fetched",
		"vertex", vertexPath, "vertex_bytes", len(pair.Vertex),
		"fragment", fragmentPath, "fragment_bytes", len(pair.Fragment),
	)
	return pair, nil
}
