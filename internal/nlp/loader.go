package nlp

import "context"

// CachingLoader decorates a Loader so every loaded tagger is wrapped in the
// sqlite tag cache. A cache that cannot be opened is skipped silently; the
// cache is an optimization, not a requirement.
type CachingLoader struct {
	inner Loader
	dsn   string
}

// NewCachingLoader wraps inner with a tag cache stored at dsn.
func NewCachingLoader(inner Loader, dsn string) *CachingLoader {
	return &CachingLoader{inner: inner, dsn: dsn}
}

// Load implements Loader.
func (l *CachingLoader) Load() (Tagger, error) {
	tagger, err := l.inner.Load()
	if err != nil {
		return nil, err
	}

	cache, err := NewTagCache(context.Background(), l.dsn, tagger)
	if err != nil {
		return tagger, nil
	}
	return cache, nil
}

// Fetch implements Loader.
func (l *CachingLoader) Fetch() error {
	return l.inner.Fetch()
}
