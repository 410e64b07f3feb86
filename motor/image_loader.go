package motor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/pb33f/glam/motor/model"
)

const defaultResultBuffer = 64

// RowVisibility reports whether a grid row is inside the viewport.
type RowVisibility struct {
	Index   int
	Visible bool
}

// ThumbnailRenderer turns raw image bytes into a displayable string.
type ThumbnailRenderer func(data []byte) (string, error)

// ThumbnailResult is delivered for every image assigned by the background worker.
type ThumbnailResult struct {
	Generation uint64
	Index      int
	Thumbnail  Thumbnail
}

// LoaderStats tracks image loader activity
type LoaderStats struct {
	Requested    int64 // fetches queued or started
	Loaded       int64 // images assigned to a slot
	Failed       int64 // fetch or decode failures, slot left untouched
	StaleDropped int64 // results discarded because the result set was replaced
	Superseded   int64 // pending requests replaced by a newer one for the same row
}

// loaderAtomicStats holds loader statistics with atomic operations
type loaderAtomicStats struct {
	requested    int64
	loaded       int64
	failed       int64
	staleDropped int64
	superseded   int64
}

// ImageLoaderOptions configures an ImageLoader
type ImageLoaderOptions struct {
	Slots        ThumbnailSlots
	Renderer     ThumbnailRenderer
	ResultBuffer int
	Logger       *slog.Logger
}

type imageJob struct {
	generation uint64
	index      int
	url        string
}

// ImageLoader fetches thumbnails for visible rows, one request at a time.
//
// Work is keyed by row index: enqueueing a row that is still pending replaces the
// older request. Every result set gets a new generation (see Reset); results from
// an older generation are discarded and never reach the slots.
type ImageLoader struct {
	client   CatalogClient
	slots    ThumbnailSlots
	renderer ThumbnailRenderer
	logger   *slog.Logger

	mu         sync.Mutex
	generation atomic.Uint64
	pending    map[int]imageJob
	order      []int

	wake      chan struct{}
	stop      chan struct{}
	results   chan ThumbnailResult
	startOnce sync.Once
	stopOnce  sync.Once

	stats loaderAtomicStats
}

func NewImageLoader(client CatalogClient, opts ImageLoaderOptions) *ImageLoader {
	slots := opts.Slots
	if slots == nil {
		slots = NewMemorySlots()
	}

	buffer := opts.ResultBuffer
	if buffer <= 0 {
		buffer = defaultResultBuffer
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ImageLoader{
		client:   client,
		slots:    slots,
		renderer: opts.Renderer,
		logger:   logger,
		pending:  make(map[int]imageJob),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		results:  make(chan ThumbnailResult, buffer),
	}
}

// Generation returns the current result-set generation.
func (l *ImageLoader) Generation() uint64 {
	return l.generation.Load()
}

// Reset starts a new generation: pending work is dropped, slots are cleared, and
// any in-flight fetch for the old result set will be discarded on arrival.
func (l *ImageLoader) Reset() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	gen := l.generation.Add(1)
	l.pending = make(map[int]imageJob)
	l.order = l.order[:0]
	l.slots.Clear()
	return gen
}

// Slots exposes the thumbnails assigned in the current generation.
func (l *ImageLoader) Slots() ThumbnailSlots {
	return l.slots
}

// Results streams thumbnails assigned by the background worker. The channel is
// closed once the worker stops.
func (l *ImageLoader) Results() <-chan ThumbnailResult {
	return l.results
}

// LoadVisible fetches images for every visible row below rowCount, sequentially,
// and calls assign for each success. Rows whose URL is empty or whose fetch fails
// are left untouched. If the result set is replaced mid-way, the remaining rows
// are skipped. Returns the number of rows assigned.
func (l *ImageLoader) LoadVisible(ctx context.Context, rowCount int, rows []RowVisibility,
	resolve func(index int) string, assign func(index int, data []byte)) int {

	gen := l.generation.Load()
	assigned := 0

	for _, row := range rows {
		if ctx.Err() != nil || l.generation.Load() != gen {
			break
		}
		if !row.Visible || row.Index < 0 || row.Index >= rowCount {
			continue
		}

		url := model.NormalizeImageURL(resolve(row.Index))
		if url == "" {
			continue
		}

		atomic.AddInt64(&l.stats.requested, 1)
		result, ok := l.load(ctx, imageJob{generation: gen, index: row.Index, url: url})
		if !ok {
			continue
		}

		if assign != nil {
			assign(row.Index, result.Thumbnail.Data)
		}
		assigned++
	}

	return assigned
}

// Enqueue schedules a background fetch for a row of the given generation.
// Returns false when there is nothing to fetch or the generation is stale.
func (l *ImageLoader) Enqueue(generation uint64, index int, rawURL string) bool {
	url := model.NormalizeImageURL(rawURL)
	if url == "" || index < 0 {
		return false
	}

	l.mu.Lock()
	if generation != l.generation.Load() {
		l.mu.Unlock()
		atomic.AddInt64(&l.stats.staleDropped, 1)
		return false
	}
	if _, exists := l.pending[index]; exists {
		atomic.AddInt64(&l.stats.superseded, 1)
	} else {
		l.order = append(l.order, index)
	}
	l.pending[index] = imageJob{generation: generation, index: index, url: url}
	l.mu.Unlock()

	atomic.AddInt64(&l.stats.requested, 1)

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Pending returns the number of queued rows not yet fetched.
func (l *ImageLoader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Start launches the single background worker. Calling it more than once has no effect.
func (l *ImageLoader) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		go l.run(ctx)
	})
}

// Close stops the background worker.
func (l *ImageLoader) Close() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

func (l *ImageLoader) run(ctx context.Context) {
	defer close(l.results)

	for {
		job, ok := l.next()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-l.stop:
				return
			case <-l.wake:
				continue
			}
		}

		result, ok := l.load(ctx, job)
		if !ok {
			continue
		}

		select {
		case l.results <- result:
		case <-ctx.Done():
			return
		case <-l.stop:
			return
		}
	}
}

func (l *ImageLoader) next() (imageJob, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for len(l.order) > 0 {
		index := l.order[0]
		l.order = l.order[1:]
		if job, ok := l.pending[index]; ok {
			delete(l.pending, index)
			return job, true
		}
	}
	return imageJob{}, false
}

// load fetches and assigns one image. Failures and stale results leave the slot untouched.
func (l *ImageLoader) load(ctx context.Context, job imageJob) (ThumbnailResult, bool) {
	data, ok := l.client.FetchImageBytes(ctx, job.url)
	if !ok {
		atomic.AddInt64(&l.stats.failed, 1)
		return ThumbnailResult{}, false
	}

	thumb := Thumbnail{URL: job.url, Data: data}
	if l.renderer != nil {
		rendered, err := l.renderer(data)
		if err != nil {
			atomic.AddInt64(&l.stats.failed, 1)
			return ThumbnailResult{}, false
		}
		thumb.Rendered = rendered
	}

	l.mu.Lock()
	if job.generation != l.generation.Load() {
		l.mu.Unlock()
		atomic.AddInt64(&l.stats.staleDropped, 1)
		return ThumbnailResult{}, false
	}
	l.slots.Put(job.index, thumb)
	l.mu.Unlock()

	atomic.AddInt64(&l.stats.loaded, 1)
	return ThumbnailResult{Generation: job.generation, Index: job.index, Thumbnail: thumb}, true
}

// Stats returns current loader statistics
func (l *ImageLoader) Stats() LoaderStats {
	return LoaderStats{
		Requested:    atomic.LoadInt64(&l.stats.requested),
		Loaded:       atomic.LoadInt64(&l.stats.loaded),
		Failed:       atomic.LoadInt64(&l.stats.failed),
		StaleDropped: atomic.LoadInt64(&l.stats.staleDropped),
		Superseded:   atomic.LoadInt64(&l.stats.superseded),
	}
}
