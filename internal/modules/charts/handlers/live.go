package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/stockchart/internal/modules/controls"
)

const liveWriteWait = 10 * time.Second

// LiveRequest is one control change sent over the live channel
type LiveRequest struct {
	Stock string `json:"stock"`
	Start string `json:"start"`
	End   string `json:"end"`
	Range string `json:"range,omitempty"`
	SMA   int    `json:"sma,omitempty"`
}

// LiveResponse answers a LiveRequest
type LiveResponse struct {
	SVG       string `json:"svg,omitempty"`
	Count     int    `json:"count"`
	DatasetID string `json:"dataset_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HandleLive handles GET /api/chart/live. Each message is rendered to
// completion and answered before the next one is read.
func (h *Handler) HandleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to accept WebSocket")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	ctx := r.Context()
	log := h.log.With().Str("remote", r.RemoteAddr).Logger()
	log.Debug().Msg("Live channel opened")

	for {
		var req LiveRequest
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				log.Debug().Int("status", int(status)).Msg("Live channel closed")
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			log.Warn().Err(err).Msg("Unexpected live channel read error")
			conn.Close(websocket.StatusUnsupportedData, "invalid message")
			return
		}

		resp := h.renderLive(req)

		writeCtx, cancel := context.WithTimeout(ctx, liveWriteWait)
		err := wsjson.Write(writeCtx, conn, resp)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("Failed to write live response")
			return
		}
	}
}

func (h *Handler) renderLive(req LiveRequest) LiveResponse {
	view, err := h.surface.Change(controls.Inputs{
		Stock:     req.Stock,
		StartDate: req.Start,
		EndDate:   req.End,
		Range:     req.Range,
		SMA:       req.SMA,
	})
	if err != nil {
		return LiveResponse{Error: err.Error()}
	}
	return LiveResponse{
		SVG:       view.Scene.SVG(),
		Count:     view.Count(),
		DatasetID: view.DatasetID,
	}
}
