// Package assistant exposes the dialogue engine over HTTP: the per-message
// entry point, session reset, transcript display and the saved-orders
// export.
package assistant

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"order-assistant/internal/common/httpx"
	"order-assistant/internal/common/logger"
	"order-assistant/internal/dialogue"
	"order-assistant/internal/ledger"
)

type Handler struct {
	engine *dialogue.Engine
	ledger ledger.Ledger
	lg     *logger.Logger
}

func NewHandler(engine *dialogue.Engine, led ledger.Ledger, lg *logger.Logger) *Handler {
	return &Handler{engine: engine, ledger: led, lg: lg}
}

// Run serves the API until ctx is cancelled.
func Run(ctx context.Context, port int, h *Handler) error {
	srv := httpx.New(":"+strconv.Itoa(port), h.Router())
	return srv.Run(ctx)
}

func (h *Handler) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", h.createSession)
	mux.HandleFunc("POST /sessions/{id}/reset", h.resetSession)
	mux.HandleFunc("POST /sessions/{id}/messages", h.postMessage)
	mux.HandleFunc("GET /sessions/{id}/transcript", h.getTranscript)
	mux.HandleFunc("GET /orders", h.listOrders)
	mux.HandleFunc("GET /orders/export", h.exportOrders)
	return mux
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	Reply string `json:"reply"`
}

// createSession starts a fresh session under a generated ID and returns
// the missed-call auto-reply.
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	reply, err := h.engine.Reset(r.Context(), id)
	if err != nil {
		h.lg.Error("create_session_failed", err, nil)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: id, Reply: reply})
}

func (h *Handler) resetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	reply, err := h.engine.Reset(r.Context(), id)
	if err != nil {
		h.lg.Error("reset_session_failed", err, map[string]any{"session_id": id})
		http.Error(w, "failed to reset session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, Reply: reply})
}

func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	reply, err := h.engine.HandleMessage(r.Context(), id, req.Text)
	if err != nil {
		h.lg.Error("message_failed", err, map[string]any{"session_id": id})
		http.Error(w, "failed to process message, please try again", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Reply: reply})
}

func (h *Handler) getTranscript(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	turns, err := h.engine.Transcript(r.Context(), id)
	if err != nil {
		h.lg.Error("transcript_failed", err, map[string]any{"session_id": id})
		http.Error(w, "failed to load transcript", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, turns)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ledger.LoadAll(r.Context())
	if err != nil {
		h.lg.Error("list_orders_failed", err, nil)
		http.Error(w, "failed to load orders", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// exportOrders streams the ledger as a downloadable CSV file.
func (h *Handler) exportOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ledger.LoadAll(r.Context())
	if err != nil {
		h.lg.Error("export_orders_failed", err, nil)
		http.Error(w, "failed to load orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Customer Name", "Order Items", "Pickup Time", "Timestamp"})
	for _, o := range orders {
		_ = cw.Write([]string{o.CustomerName, o.OrderedItems, o.PickupTime, o.Timestamp.Format(ledger.TimestampLayout)})
	}
	cw.Flush()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
