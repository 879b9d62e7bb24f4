// Package handlers provides HTTP handlers for chart data.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/stockchart/internal/domain"
	"github.com/aristath/stockchart/internal/modules/charts"
	"github.com/aristath/stockchart/internal/modules/controls"
	"github.com/aristath/stockchart/internal/modules/dataset"
)

const (
	contentTypeMsgpack = "application/msgpack"
	contentTypeSVG     = "image/svg+xml"
)

// Reloader reloads the live dataset
type Reloader interface {
	Reload(ctx context.Context) (*domain.Dataset, error)
}

// Handler provides HTTP handlers for chart endpoints
type Handler struct {
	surface       *controls.Surface
	reloader      Reloader
	reloadTimeout time.Duration
	log           zerolog.Logger
}

// NewHandler creates a new charts handler. A positive reloadTimeout bounds
// each POST /api/dataset/reload.
func NewHandler(surface *controls.Surface, reloader Reloader, reloadTimeout time.Duration, log zerolog.Logger) *Handler {
	return &Handler{
		surface:       surface,
		reloader:      reloader,
		reloadTimeout: reloadTimeout,
		log:           log.With().Str("handler", "charts").Logger(),
	}
}

// RecordDTO is the wire form of a record
type RecordDTO struct {
	Date  string `json:"date" msgpack:"date"`
	Stock string `json:"stock" msgpack:"stock"`
	Price string `json:"price" msgpack:"price"`
}

// RecordsResponse is the body of GET /api/records
type RecordsResponse struct {
	DatasetID string      `json:"dataset_id" msgpack:"dataset_id"`
	Count     int         `json:"count" msgpack:"count"`
	Records   []RecordDTO `json:"records" msgpack:"records"`
}

// HandleGetSymbols handles GET /api/symbols
func (h *Handler) HandleGetSymbols(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.surface.Symbols()
	if err != nil {
		h.writeDatasetError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, symbols)
}

// HandleGetRecords handles GET /api/records
func (h *Handler) HandleGetRecords(w http.ResponseWriter, r *http.Request) {
	in, err := inputsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.surface.Filter(in)
	if err != nil {
		h.writeDatasetError(w, err)
		return
	}

	resp := RecordsResponse{
		DatasetID: view.DatasetID,
		Count:     view.Count(),
		Records:   make([]RecordDTO, 0, view.Count()),
	}
	for _, rec := range view.Records {
		resp.Records = append(resp.Records, RecordDTO{
			Date:  rec.Date.Format(domain.DateLayout),
			Stock: rec.Stock,
			Price: rec.Price.String(),
		})
	}

	if strings.Contains(r.Header.Get("Accept"), contentTypeMsgpack) {
		data, err := msgpack.Marshal(resp)
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to encode msgpack response")
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentTypeMsgpack)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// HandleGetChart handles GET /api/chart and returns an SVG fragment
func (h *Handler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	in, err := inputsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.surface.Filter(in)
	if err != nil {
		h.writeDatasetError(w, err)
		return
	}

	etag := viewETag(view, in.SMA)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	scene := h.surface.Charts().Render(view.Records, in.SMA)

	w.Header().Set("Content-Type", contentTypeSVG)
	w.Header().Set("X-Record-Count", strconv.Itoa(view.Count()))
	w.WriteHeader(http.StatusOK)
	if err := charts.WriteSVG(w, scene); err != nil {
		h.log.Error().Err(err).Msg("Failed to write SVG response")
	}
}

// HandleGetChartPNG handles GET /api/chart.png
func (h *Handler) HandleGetChartPNG(w http.ResponseWriter, r *http.Request) {
	in, err := inputsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.surface.Filter(in)
	if err != nil {
		h.writeDatasetError(w, err)
		return
	}

	title := view.Criterion.Stock
	if title == "" {
		title = "All stocks"
	}

	// Render into a buffer so a failure can still produce an error status
	var buf bytes.Buffer
	if err := h.surface.Charts().ExportPNG(&buf, view.Records, in.SMA, title); err != nil {
		if errors.Is(err, charts.ErrNotEnoughData) {
			http.Error(w, "At least two records with distinct dates are required", http.StatusUnprocessableEntity)
			return
		}
		h.log.Error().Err(err).Msg("Failed to export chart")
		http.Error(w, "Failed to export chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// HandleGetSummary handles GET /api/summary
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	in, err := inputsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.surface.Filter(in)
	if err != nil {
		h.writeDatasetError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, h.surface.Charts().Summarize(view.Records))
}

// HandleGetSeries handles GET /api/series?group=day|week|month
func (h *Handler) HandleGetSeries(w http.ResponseWriter, r *http.Request) {
	groupBy, err := charts.ParseGroupBy(r.URL.Query().Get("group"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	in, err := inputsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.surface.Filter(in)
	if err != nil {
		h.writeDatasetError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, h.surface.Charts().Series(view.Records, groupBy))
}

// HandleReloadDataset handles POST /api/dataset/reload
func (h *Handler) HandleReloadDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.reloadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.reloadTimeout)
		defer cancel()
	}

	ds, err := h.reloader.Reload(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Dataset reload failed")
		h.writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": err.Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id": ds.ID(),
		"source":     ds.Source(),
		"records":    ds.Len(),
		"symbols":    ds.Symbols(),
		"loaded_at":  ds.LoadedAt().UTC().Format(time.RFC3339),
	})
}

// inputsFromQuery reads the control values from the query string
func inputsFromQuery(r *http.Request) (controls.Inputs, error) {
	return controls.InputsFromQuery(r.URL.Query())
}

// viewETag identifies a rendered view by dataset and effective criterion
func viewETag(view *controls.View, sma int) string {
	c := view.Criterion
	key := fmt.Sprintf("%s|%s|%s|%s|%d",
		view.DatasetID, c.Stock, formatDay(c.Start), formatDay(c.End), sma)
	return `"` + uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String() + `"`
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func (h *Handler) writeDatasetError(w http.ResponseWriter, err error) {
	if errors.Is(err, dataset.ErrNotLoaded) {
		http.Error(w, "Dataset not loaded", http.StatusServiceUnavailable)
		return
	}
	h.log.Error().Err(err).Msg("Failed to read dataset")
	http.Error(w, "Failed to read dataset", http.StatusInternalServerError)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
