// Package database holds the word-pair catalog. The engine only sees the
// Catalog interface; production uses the pgx-backed Service, tests and
// DB-less deployments use the in-memory catalog.
package database

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scythe504/undercover-backend/internal"
)

// Catalog supplies one random word pair per game start.
type Catalog interface {
	RandomWordPair(ctx context.Context) (internal.WordPair, error)
}

// SeedPairs is the starter catalog content.
var SeedPairs = []internal.WordPair{
	{CivilianWord: "apple", UndercoverWord: "pear"},
	{CivilianWord: "cat", UndercoverWord: "tiger"},
	{CivilianWord: "car", UndercoverWord: "truck"},
	{CivilianWord: "doctor", UndercoverWord: "nurse"},
	{CivilianWord: "ocean", UndercoverWord: "lake"},
}

const schema = `
CREATE TABLE IF NOT EXISTS word_pairs (
	id SERIAL PRIMARY KEY,
	civilian_word TEXT NOT NULL,
	undercover_word TEXT NOT NULL,
	UNIQUE (civilian_word, undercover_word)
)`

// Service is the postgres-backed catalog.
type Service struct {
	pool *pgxpool.Pool
}

// New connects to connString and ensures the schema exists.
func New(ctx context.Context, connString string) (*Service, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect word catalog: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure word_pairs schema: %w", err)
	}
	return &Service{pool: pool}, nil
}

func (s *Service) Close() {
	s.pool.Close()
}

// Seed inserts the starter pairs, ignoring ones already present.
func (s *Service) Seed(ctx context.Context) error {
	for _, p := range SeedPairs {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO word_pairs (civilian_word, undercover_word)
			 VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			p.CivilianWord, p.UndercoverWord)
		if err != nil {
			return fmt.Errorf("seed word pair %q/%q: %w", p.CivilianWord, p.UndercoverWord, err)
		}
	}
	return nil
}

// RandomWordPair draws uniformly from the catalog.
func (s *Service) RandomWordPair(ctx context.Context) (internal.WordPair, error) {
	var pair internal.WordPair
	err := s.pool.QueryRow(ctx,
		`SELECT civilian_word, undercover_word FROM word_pairs
		 ORDER BY random() LIMIT 1`).
		Scan(&pair.CivilianWord, &pair.UndercoverWord)
	if err != nil {
		return internal.WordPair{}, fmt.Errorf("draw word pair: %w", err)
	}
	return pair, nil
}

// Count returns the catalog size.
func (s *Service) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM word_pairs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count word pairs: %w", err)
	}
	return n, nil
}

// MemoryCatalog serves pairs from a fixed slice. Used when DATABASE_URL is
// unset and in engine tests.
type MemoryCatalog struct {
	pairs []internal.WordPair
}

func NewMemoryCatalog(pairs []internal.WordPair) *MemoryCatalog {
	if len(pairs) == 0 {
		pairs = SeedPairs
	}
	cp := make([]internal.WordPair, len(pairs))
	copy(cp, pairs)
	return &MemoryCatalog{pairs: cp}
}

func (m *MemoryCatalog) RandomWordPair(ctx context.Context) (internal.WordPair, error) {
	return m.pairs[rand.Intn(len(m.pairs))], nil
}
