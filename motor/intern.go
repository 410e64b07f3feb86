package motor

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/pb33f/glam/motor/model"
)

const internShardCount = 256

// StringTable interns repeated facet strings (brands, types, categories, tags)
// so a catalog of thousands of products shares one copy of each value.
type StringTable struct {
	shards [internShardCount]*stringTableShard
	once   [internShardCount]sync.Once
}

type stringTableShard struct {
	table map[string]string
	mu    sync.RWMutex
}

func NewStringTable() *StringTable {
	return &StringTable{}
}

// uses 256 shards with xxhash distribution to minimize lock contention
func (st *StringTable) Intern(s string) string {
	if s == "" {
		return ""
	}

	shardIdx := xxhash.Sum64String(s) % internShardCount
	shard := st.shard(shardIdx)

	shard.mu.RLock()
	if interned, exists := shard.table[s]; exists {
		shard.mu.RUnlock()
		return interned
	}
	shard.mu.RUnlock()

	// double-checked locking: another goroutine may have interned s between the locks
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if interned, exists := shard.table[s]; exists {
		return interned
	}

	shard.table[s] = s
	return s
}

// Size returns the number of distinct strings held.
func (st *StringTable) Size() int {
	total := 0
	for i := range st.shards {
		shard := st.shard(uint64(i))
		shard.mu.RLock()
		total += len(shard.table)
		shard.mu.RUnlock()
	}
	return total
}

func (st *StringTable) shard(idx uint64) *stringTableShard {
	st.once[idx].Do(func() {
		st.shards[idx] = &stringTableShard{
			table: make(map[string]string),
		}
	})
	return st.shards[idx]
}

// InternProducts rewrites the facet fields of products in place with interned copies.
// Callers pass freshly decoded slices they own.
func (st *StringTable) InternProducts(products []model.Product) {
	for i := range products {
		p := &products[i]
		p.Brand = st.Intern(p.Brand)
		p.ProductType = st.Intern(p.ProductType)
		p.Category = st.Intern(p.Category)
		p.PriceSign = st.Intern(p.PriceSign)
		p.Currency = st.Intern(p.Currency)
		for j, tag := range p.TagList {
			p.TagList[j] = st.Intern(tag)
		}
	}
}
