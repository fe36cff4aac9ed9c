package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"
	orchestratorx "github.com/tanpawarit/insurance-callcenter-agent/agent/agents/orchestrator"
	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
	promptx "github.com/tanpawarit/insurance-callcenter-agent/agent/prompt"
	sessionx "github.com/tanpawarit/insurance-callcenter-agent/agent/session"
	toolx "github.com/tanpawarit/insurance-callcenter-agent/agent/tool"
)

const maxBodyBytes = 1 << 20

type Pinger interface {
	Ping(ctx context.Context) error
}

type Messenger interface {
	HandleMessage(ctx context.Context, sessionID string, text string) (orchestratorx.Reply, error)
}

type Handler struct {
	db        Pinger
	sessions  *sessionx.Manager
	messenger Messenger
	prompts   promptx.PromptSet
}

// NewHandler wires the API. messenger may be nil when no model is
// configured; the tool endpoints keep working.
func NewHandler(db Pinger, sessions *sessionx.Manager, messenger Messenger) *Handler {
	return &Handler{
		db:        db,
		sessions:  sessions,
		messenger: messenger,
		prompts:   promptx.LoadPromptSet(),
	}
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks"`
	Sessions int               `json:"sessions"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	status, code := "healthy", http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		checks["postgres"] = "unavailable: " + err.Error()
		status, code = "degraded", http.StatusServiceUnavailable
	} else {
		checks["postgres"] = "ok"
	}
	if h.messenger == nil {
		checks["agent"] = "disabled"
	} else {
		checks["agent"] = "ok"
	}

	WriteJSON(w, code, HealthResponse{Status: status, Checks: checks, Sessions: h.sessions.Count()})
}

func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string][]*schema.ToolInfo{"tools": toolx.Catalog()})
}

type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	conv := h.sessions.Start()
	WriteJSON(w, http.StatusCreated, StartSessionResponse{
		SessionID: conv.ID,
		Message:   h.prompts.Welcome,
	})
}

func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(chi.URLParam(r, "sessionID")); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	conv, err := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, conv.Snapshot())
}

type CallToolRequest struct {
	Args map[string]any `json:"args"`
}

func (h *Handler) CallTool(w http.ResponseWriter, r *http.Request) {
	conv, err := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeErr(w, r, err)
		return
	}

	name := chi.URLParam(r, "tool")
	if _, ok := toolx.Lookup(name); !ok {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("unknown tool %q", name))
		return
	}

	var req CallToolRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		writeErr(w, r, err)
		return
	}

	end := conv.BeginTurn()
	defer end()

	res, err := toolx.NewExecutor(conv.Tools)(r.Context(), name, req.Args)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

type MessageRequest struct {
	Text string `json:"text"`
}

func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	if h.messenger == nil {
		WriteError(w, http.StatusServiceUnavailable, "conversation agent is not configured")
		return
	}

	var req MessageRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeErr(w, r, err)
		return
	}

	reply, err := h.messenger.HandleMessage(r.Context(), chi.URLParam(r, "sessionID"), req.Text)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, reply)
}

// decodeBody reads a JSON body into v. An empty body is an error unless
// optional is set.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	if r.Body == nil || r.Body == http.NoBody {
		if optional {
			return nil
		}
		return fmt.Errorf("%w: request body is required", contractx.ErrValidation)
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			if optional {
				return nil
			}
			return fmt.Errorf("%w: request body is required", contractx.ErrValidation)
		}
		return fmt.Errorf("%w: invalid request body: %v", contractx.ErrValidation, err)
	}
	return nil
}
