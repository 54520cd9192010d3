// Package handler exposes the prompt service over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nbenliogludev/seaware-booking-agent/internal/extract"
	"github.com/nbenliogludev/seaware-booking-agent/internal/reservation"
	"github.com/nbenliogludev/seaware-booking-agent/internal/service"
)

const maxBodyBytes = 1 << 20

// Renderer is satisfied by *service.PromptService.
type Renderer interface {
	Render(ctx context.Context, raw []byte) (*service.Rendered, error)
}

type PromptHandler struct {
	svc Renderer
	log *slog.Logger
}

func NewPromptHandler(svc Renderer, log *slog.Logger) *PromptHandler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &PromptHandler{svc: svc, log: log}
}

type errorResponse struct {
	Error  string                   `json:"error"`
	Fields []reservation.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return io.ReadAll(r.Body)
}

// CreatePrompt handles POST /prompts and answers with the rendered script
// and the extracted views as JSON.
func (h *PromptHandler) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	out, ok := h.render(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// CreatePromptText handles POST /prompts/text and answers with the bare script.
func (h *PromptHandler) CreatePromptText(w http.ResponseWriter, r *http.Request) {
	out, ok := h.render(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Render-Id", out.ID.String())
	w.Header().Set("X-Prompt-Cached", strconv.FormatBool(out.Cached))
	w.WriteHeader(http.StatusCreated)
	_, _ = io.WriteString(w, out.Prompt)
}

func (h *PromptHandler) render(w http.ResponseWriter, r *http.Request) (*service.Rendered, bool) {
	body, err := readBody(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body exceeds 1 MiB")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}

	out, err := h.svc.Render(r.Context(), body)
	if err != nil {
		h.writeRenderError(w, err)
		return nil, false
	}
	return out, true
}

func (h *PromptHandler) writeRenderError(w http.ResponseWriter, err error) {
	var verr *reservation.ValidationError
	var serr *extract.StructuralIndexError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  reservation.ErrValidation.Error(),
			Fields: verr.Fields,
		})
	case errors.As(err, &serr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  extract.ErrStructuralIndex.Error(),
			Fields: []reservation.FieldError{{Path: serr.Path, Message: "must not be empty"}},
		})
	default:
		h.log.Error("render prompt", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to render prompt")
	}
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
