// Package defaults holds the layered settings registry that component property
// declarations consult for their default values.
//
// Values are looked up per component name with the reserved GlobalBucket as
// fallback:
//
//	store.Get("button", "size") // button.size ?? defaults.size ?? nil
//
// Writes merge shallowly and never fail. There is no removal operation.
package defaults

import (
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// GlobalBucket is the reserved component name holding fallback values for every component.
const GlobalBucket = "defaults"

// Bucket maps option names to values.
type Bucket map[string]any

// Store is the settings registry. The zero value is not usable, create one with NewStore
// and hand it to whoever instantiates components.
type Store struct {
	mu         sync.RWMutex
	global     Bucket
	components map[string]Bucket
}

// NewStore creates an empty registry with an empty defaults bucket.
func NewStore() *Store {
	return &Store{
		global:     Bucket{},
		components: map[string]Bucket{},
	}
}

// Get returns the value of key for component, falling back to the defaults bucket.
// Nil values count as unset. Missing values yield nil.
func (s *Store) Get(component, key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if component != GlobalBucket {
		if v, ok := s.components[component][key]; ok && v != nil {
			return v
		}
	}

	if v, ok := s.global[key]; ok && v != nil {
		return v
	}

	return nil
}

// Resolve is the function form of Store.Get.
func Resolve(store *Store, component, key string) any {
	if store == nil {
		return nil
	}
	return store.Get(component, key)
}

// Set merges value into the bucket of component and reports true.
//
// For a regular component the existing bucket is replaced by the union of old
// and new keys, new keys winning. For GlobalBucket the values are copied into
// the existing defaults bucket in place. Values that are not string-keyed maps
// are ignored.
func (s *Store) Set(component string, value any) bool {
	values, ok := asBucket(value)
	if !ok {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if component == GlobalBucket {
		maps.Copy(s.global, values)
		return true
	}

	s.components[component] = lo.Assign(s.components[component], values)

	return true
}

// SetDefaults merges values into the defaults bucket.
func (s *Store) SetDefaults(values Bucket) bool {
	return s.Set(GlobalBucket, values)
}

// Bucket returns a copy of the effective options of component: the defaults
// bucket overlaid with the component's own non-nil values. An unconfigured
// component sees the defaults.
func (s *Store) Bucket(component string) Bucket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := maps.Clone(s.global)
	if component == GlobalBucket {
		return out
	}

	for k, v := range s.components[component] {
		if v != nil {
			out[k] = v
		}
	}

	return out
}

// Has reports whether component has its own bucket. GlobalBucket always exists.
func (s *Store) Has(component string) bool {
	if component == GlobalBucket {
		return true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.components[component]
	return ok
}

// Components returns the names of all configured components, sorted.
func (s *Store) Components() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.components))
}

// Snapshot returns a copy of every bucket as written, without fallback applied.
// The defaults bucket is included under GlobalBucket.
func (s *Store) Snapshot() map[string]Bucket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Bucket, len(s.components)+1)
	out[GlobalBucket] = maps.Clone(s.global)
	for name, bucket := range s.components {
		out[name] = maps.Clone(bucket)
	}

	return out
}

// asBucket converts object-like values into a Bucket. Maps with string keys of
// any value type qualify, everything else does not.
func asBucket(value any) (Bucket, bool) {
	switch v := value.(type) {
	case Bucket:
		return v, true
	case map[string]any:
		return v, true
	case nil:
		return nil, false
	}

	if reflect.TypeOf(value).Kind() != reflect.Map {
		return nil, false
	}

	var out Bucket
	if err := mapstructure.Decode(value, &out); err != nil {
		return nil, false
	}

	return out, true
}
