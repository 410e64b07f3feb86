package catgen

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/pb33f/glam/motor/model"
)

// CatalogPath is the route the mock API serves the catalog on.
const CatalogPath = "/api/v1/products.json"

// DefaultSwatchSize is the edge length of generated product images.
const DefaultSwatchSize = 64

// Handler serves a catalog the way the public makeup API does: the full array on
// CatalogPath, narrowed by exact brand and product_type query parameters, plus
// generated swatch images under /images/{id}.png.
type Handler struct {
	products   []model.Product
	swatchSize int
	logger     *slog.Logger
	mux        *http.ServeMux
}

// NewHandler builds the mock API over products
func NewHandler(products []model.Product, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		products:   products,
		swatchSize: DefaultSwatchSize,
		logger:     logger,
		mux:        http.NewServeMux(),
	}
	h.mux.HandleFunc("GET "+CatalogPath, h.handleProducts)
	h.mux.HandleFunc("GET /images/{file}", h.handleImage)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	brand := query.Get("brand")
	productType := query.Get("product_type")

	matched := lo.Filter(h.products, func(p model.Product, _ int) bool {
		if brand != "" && p.Brand != brand {
			return false
		}
		if productType != "" && p.ProductType != productType {
			return false
		}
		return true
	})

	h.logger.Debug("catalog request", "brand", brand, "product_type", productType, "matched", len(matched))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(matched); err != nil {
		h.logger.Error("failed to write catalog response", "error", err)
	}
}

func (h *Handler) handleImage(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	id, err := strconv.Atoi(strings.TrimSuffix(file, ".png"))
	if err != nil || !strings.HasSuffix(file, ".png") {
		http.NotFound(w, r)
		return
	}

	data, err := SwatchPNG(id, h.swatchSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}
