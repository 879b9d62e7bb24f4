package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/aristath/stockchart/internal/modules/controls"
	"github.com/aristath/stockchart/internal/modules/dataset"
)

type selectedInputs struct {
	Stock string
	Start string
	End   string
	SMA   int
}

type pageData struct {
	Title     string
	DatasetID string
	Symbols   []string
	Selected  selectedInputs
	Count     int
	Chart     template.HTML
}

// handlePage serves the chart page. Query parameters preselect the controls;
// without them the full dataset is shown.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	in, err := controls.InputsFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := s.surface.Change(in)
	if err != nil {
		if errors.Is(err, dataset.ErrNotLoaded) {
			http.Error(w, "Dataset not loaded", http.StatusServiceUnavailable)
			return
		}
		s.log.Error().Err(err).Msg("Failed to render initial chart")
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}

	symbols, err := s.surface.Symbols()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list symbols")
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}

	// Keep an unknown preselected symbol visible so the selector matches the chart
	if stock := view.Criterion.Stock; stock != "" && !slices.Contains(symbols, stock) {
		symbols = append(symbols, stock)
	}

	data := pageData{
		Title:     s.title,
		DatasetID: view.DatasetID,
		Symbols:   symbols,
		Selected: selectedInputs{
			Stock: view.Criterion.Stock,
			Start: formatInputDate(view.Criterion.Start),
			End:   formatInputDate(view.Criterion.End),
			SMA:   in.SMA,
		},
		Count: view.Count(),
		// Generated by charts.WriteSVG, which escapes all text
		Chart: template.HTML(view.Scene.SVG()),
	}

	var buf bytes.Buffer
	if err := s.page.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.log.Error().Err(err).Msg("Failed to execute page template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Error().Err(err).Msg("Failed to write page response")
	}
}

func formatInputDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":         "healthy",
		"service":        "stockchart",
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
	}

	status := http.StatusOK
	if ds, err := s.store.Current(); err != nil {
		response["status"] = "degraded"
		response["dataset"] = map[string]interface{}{"error": err.Error()}
		status = http.StatusServiceUnavailable
	} else {
		response["dataset"] = map[string]interface{}{
			"id":        ds.ID(),
			"source":    ds.Source(),
			"records":   ds.Len(),
			"symbols":   len(ds.Symbols()),
			"loaded_at": ds.LoadedAt().UTC().Format(time.RFC3339),
		}
	}

	response["system"] = s.getSystemStats()

	if s.scheduler != nil {
		response["jobs"] = s.scheduler.Entries()
	}

	s.writeJSON(w, status, response)
}

// getSystemStats reports host CPU and RAM usage and this process's memory
func (s *Server) getSystemStats() map[string]interface{} {
	stats := map[string]interface{}{}

	// Short sampling interval keeps the health check fast
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get CPU percentage")
	} else if len(cpuPercent) > 0 {
		stats["cpu_percent"] = cpuPercent[0]
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get memory statistics")
	} else {
		stats["ram_percent"] = memStat.UsedPercent
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err == nil {
		if info, err := proc.MemoryInfo(); err == nil {
			stats["process_rss_mb"] = float64(info.RSS) / 1024 / 1024
		}
	}

	return stats
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
