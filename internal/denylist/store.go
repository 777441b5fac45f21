package denylist

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ppiankov/notallowed/internal/cache"
)

// store owns the lazily loaded entry list of every category.
type store struct {
	sources Sources
	lists   cache.Cache
	// compiled holds lookup structures derived from lists; dropped on change.
	compiled map[Category]*compiledList
	log      *zap.Logger

	mu sync.RWMutex
}

func newStore(sources Sources, lists cache.Cache, log *zap.Logger) *store {
	return &store{
		sources:  sources,
		lists:    lists,
		compiled: make(map[Category]*compiledList),
		log:      log,
	}
}

// list returns the compiled list for c, loading it on first use.
func (s *store) list(c Category) (*compiledList, error) {
	s.mu.RLock()
	cl, ok := s.compiled[c]
	s.mu.RUnlock()
	if ok {
		return cl, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if cl, ok := s.compiled[c]; ok {
		return cl, nil
	}

	entries, err := s.loadLocked(c)
	if err != nil {
		return nil, err
	}

	cl = compile(c, entries)
	s.compiled[c] = cl
	return cl, nil
}

// load reads the backing source of c unless it is already cached.
func (s *store) load(c Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.loadLocked(c)
	return err
}

// entries returns a copy of the cached list of c.
func (s *store) entries(c Category) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked(c)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(entries))
	copy(out, entries)
	return out, nil
}

// merge appends values verbatim after making sure the baseline list is loaded.
func (s *store) merge(c Category, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked(c)
	if err != nil {
		return err
	}

	if len(values) == 0 {
		return nil
	}

	// Copy so lists handed out earlier are never written through.
	merged := make([]string, 0, len(entries)+len(values))
	merged = append(merged, entries...)
	merged = append(merged, values...)

	s.lists.Set(cache.ListKey(c.String()), merged)
	delete(s.compiled, c)

	s.log.Debug("merged entries",
		zap.Stringer("category", c),
		zap.Int("added", len(values)),
		zap.Int("total", len(merged)),
	)
	return nil
}

// reset drops every cached list; the next access reloads from source.
func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lists.Clear()
	clear(s.compiled)
}

func (s *store) loadLocked(c Category) ([]string, error) {
	key := cache.ListKey(c.String())
	if entries, found := s.lists.Get(key); found {
		return entries, nil
	}

	src, ok := s.sources[c]
	if !ok {
		s.log.Debug("no source bound, using empty list", zap.Stringer("category", c))
		s.lists.Set(key, []string{})
		return []string{}, nil
	}

	entries, err := src.Lines()
	if err != nil {
		s.log.Warn("failed to load list",
			zap.Stringer("category", c),
			zap.String("source", src.String()),
			zap.Error(err),
		)
		cat := c
		return nil, &SourceReadError{Category: &cat, Location: src.String(), Err: err}
	}
	if entries == nil {
		entries = []string{}
	}

	s.lists.Set(key, entries)
	s.log.Debug("loaded list",
		zap.Stringer("category", c),
		zap.String("source", src.String()),
		zap.Int("entries", len(entries)),
	)
	return entries, nil
}
