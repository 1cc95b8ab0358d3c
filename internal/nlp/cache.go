package nlp

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

const tagCacheSchema = `
CREATE TABLE IF NOT EXISTS tagged_sentences (
	sentence_hash TEXT PRIMARY KEY,
	tokens        TEXT NOT NULL,
	created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

// TagCache wraps a Tagger with a durable sqlite cache of token sequences so
// reruns over the same history skip the tagging work. Cache lookups and
// writes are best-effort: a broken cache degrades to direct tagging and
// never fails the run.
type TagCache struct {
	db    *sql.DB
	inner Tagger
}

// NewTagCache opens (or creates) the cache database at dsn.
func NewTagCache(ctx context.Context, dsn string, inner Tagger) (*TagCache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open tag cache: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, tagCacheSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tag cache schema: %w", err)
	}

	return &TagCache{db: db, inner: inner}, nil
}

// Tag implements Tagger, serving hits from the cache and delegating misses
// to the wrapped tagger in a single batch.
func (c *TagCache) Tag(sentences []string) ([][]Token, error) {
	results := make([][]Token, len(sentences))

	var misses []string
	var missIndexes []int
	for i, sentence := range sentences {
		if tokens, ok := c.lookup(sentence); ok {
			results[i] = tokens
			continue
		}
		misses = append(misses, sentence)
		missIndexes = append(missIndexes, i)
	}

	if len(misses) == 0 {
		return results, nil
	}

	tagged, err := c.inner.Tag(misses)
	if err != nil {
		return nil, err
	}

	for i, tokens := range tagged {
		results[missIndexes[i]] = tokens
		c.store(misses[i], tokens)
	}

	return results, nil
}

func (c *TagCache) lookup(sentence string) ([]Token, bool) {
	var raw string
	err := c.db.QueryRowContext(context.Background(),
		"SELECT tokens FROM tagged_sentences WHERE sentence_hash = ?",
		sentenceHash(sentence),
	).Scan(&raw)
	if err != nil {
		return nil, false
	}

	var tokens []Token
	if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
		return nil, false
	}
	return tokens, true
}

func (c *TagCache) store(sentence string, tokens []Token) {
	raw, err := json.Marshal(tokens)
	if err != nil {
		return
	}
	_, _ = c.db.ExecContext(context.Background(),
		"INSERT OR REPLACE INTO tagged_sentences (sentence_hash, tokens) VALUES (?, ?)",
		sentenceHash(sentence), string(raw),
	)
}

// Close releases the cache database.
func (c *TagCache) Close() error {
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("failed to close tag cache: %w", err)
		}
	}
	return nil
}

func sentenceHash(sentence string) string {
	sum := sha256.Sum256([]byte(ModelName + "\x00" + sentence))
	return hex.EncodeToString(sum[:])
}
