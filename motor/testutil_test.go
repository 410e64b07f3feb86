package motor

import (
	"context"
	"net/http/httptest"
	"sync"

	"github.com/pb33f/glam/catgen"
	"github.com/pb33f/glam/motor/model"
)

// newCatalogServer starts a mock catalog API over a generated catalog and returns
// a client pointed at it, plus a cleanup function
func newCatalogServer(count int, seed int64) (*HTTPCatalogClient, []model.Product, func()) {
	server := httptest.NewUnstartedServer(nil)
	base := "http://" + server.Listener.Addr().String()

	products := catgen.Generate(catgen.GenerateOptions{
		ProductCount:      count,
		Seed:              seed,
		ImageBaseURL:      base + "/images",
		MissingImageRatio: catgen.DefaultGenerateOptions.MissingImageRatio,
		MissingBrandRatio: catgen.DefaultGenerateOptions.MissingBrandRatio,
	})
	server.Config.Handler = catgen.NewHandler(products, nil)
	server.Start()

	opts := DefaultClientOptions()
	opts.BaseURL = server.URL + "/api/v1/products"
	client := NewCatalogClient(opts)

	return client, products, server.Close
}

// stubClient is an in-memory CatalogClient for session and loader tests
type stubClient struct {
	mu sync.Mutex

	catalog   []model.Product
	loadErr   error
	filterErr error
	images    map[string][]byte

	// optional hooks, called before answering
	onFilter func(brand, productType string)
	onImage  func(url string)

	filterCalls [][2]string
	imageCalls  []string
}

func (s *stubClient) FetchAll(ctx context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]model.Product(nil), s.catalog...), nil
}

func (s *stubClient) FetchFiltered(ctx context.Context, brand, productType string) ([]model.Product, error) {
	s.mu.Lock()
	s.filterCalls = append(s.filterCalls, [2]string{brand, productType})
	hook := s.onFilter
	s.mu.Unlock()

	if hook != nil {
		hook(brand, productType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filterErr != nil {
		return nil, s.filterErr
	}

	var matched []model.Product
	for _, p := range s.catalog {
		if brand != "" && p.Brand != brand {
			continue
		}
		if productType != "" && p.ProductType != productType {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

func (s *stubClient) FetchImageBytes(ctx context.Context, url string) ([]byte, bool) {
	s.mu.Lock()
	s.imageCalls = append(s.imageCalls, url)
	hook := s.onImage
	s.mu.Unlock()

	if hook != nil {
		hook(url)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.images[url]
	return data, ok
}

func (s *stubClient) imageRequests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.imageCalls...)
}

func (s *stubClient) filterRequests() [][2]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][2]string(nil), s.filterCalls...)
}
