package tenancy

import (
	"sort"
)

// Registry is the set of entity types exempt from isolation enforcement:
// identity, session and global configuration records that have no tenant
// owner. It is an allow-list for exemption; an entity type the registry has
// never heard of is enforced.
//
// The set is built once at process start and never mutated, so lookups need
// no locking.
type Registry struct {
	skip map[string]struct{}
}

// NewRegistry builds a registry from the skip-listed entity type names.
func NewRegistry(skipListed ...string) *Registry {
	skip := make(map[string]struct{}, len(skipListed))
	for _, name := range skipListed {
		skip[name] = struct{}{}
	}

	return &Registry{skip: skip}
}

// Skipped reports whether the entity type is exempt from enforcement.
func (r *Registry) Skipped(entity string) bool {
	if r == nil {
		return false
	}

	_, ok := r.skip[entity]

	return ok
}

// SkipListed returns the skip-listed entity type names, sorted. Used for the
// startup log only.
func (r *Registry) SkipListed() []string {
	names := make([]string, 0, len(r.skip))
	for name := range r.skip {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
