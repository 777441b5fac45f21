package cache

// Cache defines the interface for caching loaded entry lists
type Cache interface {
	Get(key string) ([]string, bool)
	Set(key string, entries []string)
	Delete(key string)
	Clear()
	Len() int
}

// ListKey generates a cache key for a named list
func ListKey(name string) string {
	return "notallowed:v1:" + name
}
