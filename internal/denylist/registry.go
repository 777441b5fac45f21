package denylist

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/notallowed/internal/cache"
)

// Registry answers denylist predicates over lazily loaded category lists.
// It is safe for concurrent use.
type Registry struct {
	store *store
	log   *zap.Logger
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	log   *zap.Logger
	cache cache.Cache
}

// WithLogger sets the logger used for load and merge events.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithCache sets the cache holding loaded lists. It must not be shared
// between registries.
func WithCache(c cache.Cache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

// New creates a registry reading lists from sources. A category without a
// source behaves as an empty list.
func New(sources Sources, opts ...Option) *Registry {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = cache.NewMemoryCache()
	}

	bound := make(Sources, len(sources))
	for c, src := range sources {
		bound[c] = src
	}

	return &Registry{
		store: newStore(bound, o.cache, o.log),
		log:   o.log,
	}
}

// Is reports whether any of values is banned in category c.
// An empty values list is never banned.
func (r *Registry) Is(c Category, values ...string) (bool, error) {
	_, found, err := r.Find(c, values...)
	return found, err
}

// Find returns the first of values banned in category c.
func (r *Registry) Find(c Category, values ...string) (Match, bool, error) {
	if !c.valid() {
		return Match{}, false, fmt.Errorf("%w: %s", ErrUnsupportedCategory, c)
	}
	if len(values) == 0 {
		return Match{}, false, nil
	}

	cl, err := r.store.list(c)
	if err != nil {
		return Match{}, false, err
	}

	for _, v := range values {
		if i := cl.find(v); i >= 0 {
			return Match{Category: c, Value: v, Entry: cl.entries[i]}, true, nil
		}
	}

	return Match{}, false, nil
}

// IsWord reports whether any of values contains a banned word or phrase.
func (r *Registry) IsWord(values ...string) (bool, error) {
	return r.Is(Word, values...)
}

// IsUsername reports whether any of values is a banned username.
func (r *Registry) IsUsername(values ...string) (bool, error) {
	return r.Is(Username, values...)
}

// IsEmail reports whether any of values is a banned address or belongs to a banned domain.
func (r *Registry) IsEmail(values ...string) (bool, error) {
	return r.Is(Email, values...)
}

// IsBankAccount reports whether any of values is a banned bank account.
func (r *Registry) IsBankAccount(values ...string) (bool, error) {
	return r.Is(BankAccount, values...)
}

// IsIP reports whether any of values is a banned IP address.
func (r *Registry) IsIP(values ...string) (bool, error) {
	return r.Is(IP, values...)
}

// IsAny reports whether values are banned in at least one of categories.
// Categories are checked in the given order and the first hit stops the
// search; unlisted categories are neither loaded nor evaluated.
func (r *Registry) IsAny(values []string, categories ...Category) (bool, error) {
	_, found, err := r.FindAny(values, categories...)
	return found, err
}

// FindAny is IsAny returning the match.
func (r *Registry) FindAny(values []string, categories ...Category) (Match, bool, error) {
	for _, c := range categories {
		m, found, err := r.Find(c, values...)
		if err != nil {
			return Match{}, false, err
		}
		if found {
			return m, true, nil
		}
	}
	return Match{}, false, nil
}

// IsAll reports whether every one of values is banned in at least one of
// categories. An empty values list yields true.
func (r *Registry) IsAll(values []string, categories ...Category) (bool, error) {
	for _, v := range values {
		found, err := r.IsAny([]string{v}, categories...)
		if err != nil {
			return false, err
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

// Load reads the list of c from its source unless already loaded.
func (r *Registry) Load(c Category) error {
	if !c.valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedCategory, c)
	}
	return r.store.load(c)
}

// Entries returns a copy of the list of c, loading it first if needed.
func (r *Registry) Entries(c Category) ([]string, error) {
	if !c.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCategory, c)
	}
	return r.store.entries(c)
}

// Merge appends values to the list of c. The list is loaded from its source
// first so the baseline is kept. Values are stored verbatim and folded only
// when compared.
func (r *Registry) Merge(c Category, values ...string) error {
	if !c.valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedCategory, c)
	}
	return r.store.merge(c, values)
}

// MergeNamed is Merge with the category given by name, e.g. "usernames".
func (r *Registry) MergeNamed(name string, values ...string) error {
	c, err := ParseCategory(name)
	if err != nil {
		return err
	}
	return r.Merge(c, values...)
}

// MergeFromSource reads src and merges its entries into the list of c.
// Nothing is merged when src cannot be read.
func (r *Registry) MergeFromSource(c Category, src Source) error {
	if !c.valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedCategory, c)
	}

	values, err := src.Lines()
	if err != nil {
		return &SourceReadError{Location: src.String(), Err: err}
	}

	return r.Merge(c, values...)
}

// MergeFile merges the entries of a list file into the list of c.
func (r *Registry) MergeFile(c Category, path string) error {
	return r.MergeFromSource(c, FileSource{Path: path})
}

// Reset drops every loaded list and runtime addition. The next access
// reloads from source.
func (r *Registry) Reset() {
	r.store.reset()
	r.log.Debug("denylist reset")
}
