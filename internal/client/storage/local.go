package storage

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/vibecart/internal/client/repositories/localstorage"
)

// LocalStorage is a key/value view bound to one origin.
type LocalStorage struct {
	repo   localstorage.Repository
	origin string
}

// NewLocalStorage binds repo to the origin of baseURL (scheme://host[:port]).
func NewLocalStorage(repo localstorage.Repository, baseURL string) *LocalStorage {
	return &LocalStorage{repo: repo, origin: Origin(baseURL)}
}

// Origin normalises a URL to scheme://host[:port], lower-cased. Inputs that
// do not parse as absolute URLs are used as-is without a trailing slash.
func Origin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.TrimRight(raw, "/")
	}
	return strings.ToLower(u.Scheme + "://" + u.Host)
}

func (s *LocalStorage) Origin() string { return s.origin }

// GetItem returns the stored value and whether it exists.
func (s *LocalStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	return s.repo.Get(ctx, s.origin, key)
}

func (s *LocalStorage) SetItem(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, s.origin, key, value)
}

func (s *LocalStorage) RemoveItem(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, s.origin, key)
}

func (s *LocalStorage) Keys(ctx context.Context) ([]string, error) {
	return s.repo.Keys(ctx, s.origin)
}

func (s *LocalStorage) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx, s.origin)
}
