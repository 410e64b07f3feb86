package motor

import "sync"

// Thumbnail is a fetched image assigned to a grid row.
type Thumbnail struct {
	URL      string
	Data     []byte
	Rendered string
}

// ThumbnailSlots holds the image assigned to each row of the current result set.
// There is no eviction, the loader clears every slot when the result set is replaced.
type ThumbnailSlots interface {
	// Get retrieves the thumbnail for a row
	Get(index int) (Thumbnail, bool)

	// Put assigns a thumbnail to a row
	Put(index int, thumb Thumbnail)

	// Clear removes every assignment
	Clear()

	// Size returns the current number of filled slots
	Size() int
}

// MemorySlots stores thumbnails in process memory.
type MemorySlots struct {
	mu   sync.RWMutex
	data map[int]Thumbnail
}

var _ ThumbnailSlots = (*MemorySlots)(nil)

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{
		data: make(map[int]Thumbnail),
	}
}

func (s *MemorySlots) Get(index int) (Thumbnail, bool) {
	s.mu.RLock()
	thumb, ok := s.data[index]
	s.mu.RUnlock()
	return thumb, ok
}

func (s *MemorySlots) Put(index int, thumb Thumbnail) {
	s.mu.Lock()
	s.data[index] = thumb
	s.mu.Unlock()
}

func (s *MemorySlots) Clear() {
	s.mu.Lock()
	s.data = make(map[int]Thumbnail)
	s.mu.Unlock()
}

func (s *MemorySlots) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
