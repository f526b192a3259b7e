// Package httpapi serves the storefront as JSON over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/F-Fleron-G/bestbuy2/internal/checkout"
	"github.com/F-Fleron-G/bestbuy2/internal/commerce"
	"github.com/F-Fleron-G/bestbuy2/internal/product"
	"github.com/F-Fleron-G/bestbuy2/internal/store"
)

type Handler struct {
	svc    *checkout.Service
	logger *zap.Logger
}

func New(svc *checkout.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Router mounts every endpoint with request logging and panic recovery.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/products", h.ListProducts)
	r.Get("/inventory/total", h.TotalQuantity)
	r.Post("/orders", h.PlaceOrder)
	r.Get("/healthz", h.Health)
	return r
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type ProductResponse struct {
	ID           string          `json:"id"`
	Kind         product.Kind    `json:"kind"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	StockTracked bool            `json:"stock_tracked"`
	MaxPerOrder  int             `json:"max_per_order,omitempty"`
	Promotion    string          `json:"promotion,omitempty"`
}

type TotalResponse struct {
	Total int `json:"total"`
}

type OrderLineRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type OrderRequest struct {
	Lines []OrderLineRequest `json:"lines"`
}

type ReceiptLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Promotion string          `json:"promotion,omitempty"`
}

type ReceiptResponse struct {
	OrderID string                `json:"order_id"`
	Lines   []ReceiptLineResponse `json:"lines"`
	Total   decimal.Decimal       `json:"total"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err string, message string) {
	writeJSON(w, status, ErrorResponse{Error: err, Message: message})
}

// writeEngineError maps a rejection onto 400, 404 or 409. Anything that is
// not an engine rejection is a 500.
func writeEngineError(w http.ResponseWriter, err error) {
	var e *commerce.Error
	if !errors.As(err, &e) {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	status := http.StatusConflict
	switch e.Kind.Status() {
	case commerce.StatusInvalidArgument:
		status = http.StatusBadRequest
	case commerce.StatusNotFound:
		status = http.StatusNotFound
	}
	writeError(w, status, e.Kind.String(), e.Message)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	infos := h.svc.Catalog(r.Context())
	out := make([]ProductResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, ProductResponse{
			ID:           info.ID.String(),
			Kind:         info.Kind,
			Name:         info.Name,
			Price:        info.Price,
			Quantity:     info.Quantity,
			StockTracked: info.StockTracked,
			MaxPerOrder:  info.MaxPerOrder,
			Promotion:    info.Promotion,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) TotalQuantity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TotalResponse{Total: h.svc.TotalQuantity(r.Context())})
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body")
		return
	}

	requests := make([]checkout.Request, 0, len(req.Lines))
	for _, l := range req.Lines {
		requests = append(requests, checkout.Request{Name: l.Product, Quantity: l.Quantity})
	}

	receipt, err := h.svc.PlaceOrder(r.Context(), requests)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receiptResponse(receipt))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func receiptResponse(r *store.Receipt) ReceiptResponse {
	lines := make([]ReceiptLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, ReceiptLineResponse{
			ProductID: l.ProductID.String(),
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total,
			Promotion: l.Promotion,
		})
	}
	return ReceiptResponse{OrderID: r.OrderID.String(), Lines: lines, Total: r.Total}
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
