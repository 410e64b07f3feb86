package motor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pb33f/glam/motor/model"
)

// Snapshot is an immutable view of one catalog load. A new load produces a new
// snapshot, the session swaps the pointer in a single assignment.
type Snapshot struct {
	Catalog  []model.Product
	Facets   *FacetIndex
	LoadedAt time.Time
	Duration time.Duration
}

// LoadResult is produced by Session.Load.
type LoadResult struct {
	Seq      uint64
	Snapshot *Snapshot
}

// SearchResult is produced by Session.Search.
type SearchResult struct {
	Seq       uint64
	Selection Selection
	Products  []model.Product
	Duration  time.Duration
}

// Session owns the current catalog and facet index for one interactive run.
// Loads and searches are tagged with monotonically increasing sequence numbers so
// that only the most recently issued request of each kind is applied.
type Session struct {
	client    CatalogClient
	logger    *slog.Logger
	snapshot  atomic.Pointer[Snapshot]
	installMu sync.Mutex
	loadSeq   atomic.Uint64
	searchSeq atomic.Uint64
}

var emptySnapshot = &Snapshot{
	Catalog: []model.Product{},
	Facets:  BuildFacetIndex(nil),
}

func NewSession(client CatalogClient, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		client: client,
		logger: logger,
	}
}

// Client returns the catalog client the session fetches through.
func (s *Session) Client() CatalogClient {
	return s.client
}

// Snapshot returns the current catalog snapshot, never nil.
func (s *Session) Snapshot() *Snapshot {
	if snap := s.snapshot.Load(); snap != nil {
		return snap
	}
	return emptySnapshot
}

// Load fetches the full catalog, rebuilds facets and installs the result. On failure
// the previous snapshot stays in place. A load overtaken by a newer one returns ErrSuperseded.
func (s *Session) Load(ctx context.Context) (LoadResult, error) {
	seq := s.loadSeq.Add(1)
	start := time.Now()

	products, err := s.client.FetchAll(ctx)
	if err != nil {
		return LoadResult{Seq: seq}, fmt.Errorf("load catalog: %w", err)
	}

	snap := &Snapshot{
		Catalog:  products,
		Facets:   BuildFacetIndex(products),
		LoadedAt: time.Now(),
		Duration: time.Since(start),
	}

	s.installMu.Lock()
	if s.loadSeq.Load() != seq {
		s.installMu.Unlock()
		s.logger.DebugContext(ctx, "discarding superseded catalog load", "seq", seq)
		return LoadResult{Seq: seq}, ErrSuperseded
	}
	s.snapshot.Store(snap)
	s.installMu.Unlock()

	s.logger.InfoContext(ctx, "catalog loaded",
		"products", len(products),
		"brands", len(snap.Facets.Brands),
		"types", len(snap.Facets.Types),
		"duration", snap.Duration.Round(time.Millisecond))

	return LoadResult{Seq: seq, Snapshot: snap}, nil
}

// Search applies sel against the current snapshot, querying the remote API for
// brand/type constraints.
func (s *Session) Search(ctx context.Context, sel Selection) (SearchResult, error) {
	seq := s.searchSeq.Add(1)
	start := time.Now()

	products, err := Filter(ctx, sel, s.Snapshot().Catalog, s.client.FetchFiltered)
	if err != nil {
		return SearchResult{Seq: seq, Selection: sel}, err
	}

	if !s.IsCurrentSearch(seq) {
		s.logger.DebugContext(ctx, "discarding superseded search", "seq", seq, "selection", sel.String())
		return SearchResult{Seq: seq, Selection: sel}, ErrSuperseded
	}

	result := SearchResult{
		Seq:       seq,
		Selection: sel,
		Products:  products,
		Duration:  time.Since(start),
	}

	s.logger.DebugContext(ctx, "search complete",
		"seq", seq,
		"selection", sel.String(),
		"results", len(products),
		"duration", result.Duration.Round(time.Millisecond))

	return result, nil
}

// IsCurrentSearch reports whether seq is the most recently issued search.
func (s *Session) IsCurrentSearch(seq uint64) bool {
	return s.searchSeq.Load() == seq
}

// IsCurrentLoad reports whether seq is the most recently issued load.
func (s *Session) IsCurrentLoad(seq uint64) bool {
	return s.loadSeq.Load() == seq
}

// InvalidateSearches makes every in-flight search stale, used when results are cleared.
func (s *Session) InvalidateSearches() {
	s.searchSeq.Add(1)
}
