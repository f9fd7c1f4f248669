package plan

import (
	"sort"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/vk/cellflow/internal/op"
)

// Planner resolves plans and caches them. A plan depends only on the
// definition and on the parameter lists of the overridden implementations,
// never on bag contents, so repeated instances of the same shape share one
// resolution. The cache is safe for concurrent use; cached plans never
// expire for the life of the Planner.
type Planner struct {
	cache *gocache.Cache
}

// NewPlanner returns an empty Planner.
func NewPlanner() *Planner {
	return &Planner{cache: gocache.New(gocache.NoExpiration, 0)}
}

// PlanFor returns the cached plan for the instance's shape, resolving it on
// first use.
func (pl *Planner) PlanFor(in *op.Instance) (*Plan, error) {
	key := cacheKey(in.Definition(), in.Overrides())
	if cached, ok := pl.cache.Get(key); ok {
		return cached.(*Plan), nil
	}
	p, err := Resolve(in.Definition(), in.Overrides())
	if err != nil {
		return nil, err
	}
	pl.cache.Set(key, p, gocache.NoExpiration)
	return p, nil
}

// cacheKey identifies a plan by definition identity plus the shape of the
// overrides. Override parameter lists are part of the key because an override
// may change a cell's parameter list and therefore the graph; two instances
// overriding the same cells with same-shaped implementations share a plan.
func cacheKey(def *op.Definition, overrides map[string]*op.Impl) string {
	names := make([]string, 0, len(overrides))
	for name, impl := range overrides {
		if impl != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(def.ID().String())
	for _, name := range names {
		sb.WriteByte('|')
		sb.WriteString(name)
		sb.WriteByte('(')
		sb.WriteString(strings.Join(overrides[name].Params, ","))
		sb.WriteByte(')')
	}
	return sb.String()
}
