package web

import (
	"bytes"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/filestore"
	"github.com/vbonduro/officepantry/internal/pricing"
)

type productView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	CurrentPrice string `json:"currentPrice"`
	CostPrice    string `json:"costPrice"`
	Margin       string `json:"margin"`
	Stock        int    `json:"stock"`
	Status       string `json:"status"`
	Icon         string `json:"icon"`
}

func newProductView(p *domain.Product) productView {
	return productView{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		CurrentPrice: p.CurrentPrice.StringFixed(2),
		CostPrice:    p.CostPrice.StringFixed(2),
		Margin:       p.Margin().StringFixed(1),
		Stock:        p.Stock,
		Status:       string(p.Status),
		Icon:         p.Icon,
	}
}

type changeView struct {
	ProductID     int64  `json:"productId"`
	ProductName   string `json:"productName"`
	Category      string `json:"category"`
	OldPrice      string `json:"oldPrice"`
	NewPrice      string `json:"newPrice"`
	Change        string `json:"change"`
	ChangePercent string `json:"changePercent"`
}

func newChangeView(c pricing.Change) changeView {
	return changeView{
		ProductID:     c.ProductID,
		ProductName:   c.ProductName,
		Category:      c.Category,
		OldPrice:      c.OldPrice.StringFixed(2),
		NewPrice:      c.NewPrice.StringFixed(2),
		Change:        c.Diff.StringFixed(2),
		ChangePercent: c.Percent.StringFixed(1),
	}
}

func newChangeViews(changes []pricing.Change) []changeView {
	out := make([]changeView, 0, len(changes))
	for _, c := range changes {
		out = append(out, newChangeView(c))
	}
	return out
}

type priceUpdateView struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	ProductID   int64     `json:"productId"`
	ProductName string    `json:"productName"`
	OldPrice    string    `json:"oldPrice"`
	NewPrice    string    `json:"newPrice"`
	Reason      string    `json:"reason"`
	Method      string    `json:"method,omitempty"`
	Value       string    `json:"value,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func newPriceUpdateView(u *domain.PriceUpdate) priceUpdateView {
	v := priceUpdateView{
		ID:          u.ID,
		Type:        string(u.Type),
		ProductID:   u.ProductID,
		ProductName: u.ProductName,
		OldPrice:    u.OldPrice.StringFixed(2),
		NewPrice:    u.NewPrice.StringFixed(2),
		Reason:      u.Reason,
		Method:      u.Method,
		Notes:       u.Notes,
		Timestamp:   u.Timestamp,
	}
	if u.Type == domain.UpdateBulk {
		v.Value = u.Value.String()
	}
	return v
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	products, err := s.svc.Pricing.ListProducts(r.Context(), pricing.ProductFilter{
		Category: v.Get("category"),
		Status:   v.Get("status"),
		Search:   v.Get("search"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, newProductView(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": out})
}

type singlePriceRequest struct {
	NewPrice decimal.Decimal `json:"newPrice"`
	Reason   string          `json:"reason"`
	Notes    string          `json:"notes"`
}

func (s *Server) decodeSingle(w http.ResponseWriter, r *http.Request) (int64, pricing.Single, bool) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return 0, pricing.Single{}, false
	}
	var req singlePriceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, pricing.Single{}, false
	}
	return id, pricing.Single{NewPrice: req.NewPrice, Reason: req.Reason, Notes: req.Notes}, true
}

func (s *Server) handlePreviewPrice(w http.ResponseWriter, r *http.Request) {
	id, in, ok := s.decodeSingle(w, r)
	if !ok {
		return
	}
	c, err := s.svc.Pricing.PreviewSingle(r.Context(), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newChangeView(c))
}

func (s *Server) handleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	id, in, ok := s.decodeSingle(w, r)
	if !ok {
		return
	}
	c, err := s.svc.Pricing.UpdatePrice(r.Context(), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newChangeView(c))
}

type bulkPriceRequest struct {
	All        bool            `json:"all"`
	Categories []string        `json:"categories"`
	Method     string          `json:"method"`
	Value      decimal.Decimal `json:"value"`
}

func (s *Server) decodeBulk(w http.ResponseWriter, r *http.Request) (pricing.Bulk, bool) {
	var req bulkPriceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return pricing.Bulk{}, false
	}
	return pricing.Bulk{
		Selection: pricing.Selection{All: req.All, Categories: req.Categories},
		Method:    pricing.Method(req.Method),
		Value:     req.Value,
	}, true
}

func (s *Server) handlePreviewBulk(w http.ResponseWriter, r *http.Request) {
	b, ok := s.decodeBulk(w, r)
	if !ok {
		return
	}
	changes, err := s.svc.Pricing.PreviewBulk(r.Context(), b)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"changes": newChangeViews(changes)})
}

func (s *Server) handleApplyBulk(w http.ResponseWriter, r *http.Request) {
	b, ok := s.decodeBulk(w, r)
	if !ok {
		return
	}
	changes, err := s.svc.Pricing.ApplyBulk(r.Context(), b)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"changes": newChangeViews(changes), "count": len(changes)})
}

func (s *Server) handlePriceHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updates, err := s.svc.Pricing.History(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]priceUpdateView, 0, len(updates))
	for _, u := range updates {
		out = append(out, newPriceUpdateView(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{"updates": out})
}

func (s *Server) handleClearPriceHistory(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.Pricing.ClearHistory(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"cleared": n})
}

func (s *Server) handleExportPriceHistory(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.svc.Pricing.ExportHistory(r.Context(), &buf); err != nil {
		s.fail(w, r, err)
		return
	}
	writeAttachment(w, filestore.ContentTypeCSV, "price-updates.csv", &buf)
}
