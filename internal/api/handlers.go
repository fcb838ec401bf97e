package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/chris-regnier/dailylink/internal/daily"
	"github.com/chris-regnier/dailylink/internal/day"
	"github.com/chris-regnier/dailylink/internal/logging"
	"github.com/chris-regnier/dailylink/internal/notebook"
	"github.com/chris-regnier/dailylink/internal/sink"
	"github.com/chris-regnier/dailylink/internal/slash"
	"github.com/go-chi/chi/v5"
)

// Handler holds API route handlers.
type Handler struct {
	dispatch  *slash.Dispatcher
	selector  *notebook.Selector
	notebooks notebook.Source
	now       func() time.Time
	log       logging.Logger
}

// NewHandler creates a new Handler.
func NewHandler(d *slash.Dispatcher, sel *notebook.Selector, notebooks notebook.Source, log logging.Logger) *Handler {
	if log == nil {
		log = logging.Nop()
	}
	return &Handler{dispatch: d, selector: sel, notebooks: notebooks, now: time.Now, log: log}
}

// CommandResponse describes one slash command.
type CommandResponse struct {
	ID     string   `json:"id"`
	Filter []string `json:"filter"`
	Label  string   `json:"label"`
	Hint   string   `json:"hint"`
}

// LinkResponse is the text a command inserted.
type LinkResponse struct {
	Text    string `json:"text"`
	Command string `json:"command,omitempty"`
	Date    string `json:"date,omitempty"`
}

// SelectRequest is the body of PUT /notebooks/selected.
type SelectRequest struct {
	ID string `json:"id"`
}

// ListCommands handles GET /commands.
func (h *Handler) ListCommands(w http.ResponseWriter, r *http.Request) {
	cmds := h.dispatch.Commands()
	out := make([]CommandResponse, len(cmds))
	for i, c := range cmds {
		out[i] = CommandResponse{ID: c.ID, Filter: c.Filter, Label: c.Label, Hint: c.Hint}
	}
	writeJSON(w, http.StatusOK, map[string]any{"commands": out})
}

// InvokeCommand handles POST /slash/{id}.
func (h *Handler) InvokeCommand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == slash.IDPick {
		writeJSON(w, http.StatusBadRequest, errorBody("the date picker needs an interactive host; use POST /date/{date}"))
		return
	}
	rec := &sink.Recorder{}
	if err := h.dispatch.Invoke(r.Context(), id, rec, nil); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LinkResponse{Text: rec.Last(), Command: id})
}

// InsertDate handles POST /date/{date}. The date accepts the same forms as
// the date command: today, tomorrow, yesterday, +N, -N or YYYY-MM-DD.
func (h *Handler) InsertDate(w http.ResponseWriter, r *http.Request) {
	date, err := day.ParseDate(chi.URLParam(r, "date"), h.now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	text, err := h.dispatch.Link(r.Context(), date)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LinkResponse{Text: text, Date: date.Format(day.DateLayout)})
}

// ListNotebooks handles GET /notebooks. Closed notebooks are not listed.
func (h *Handler) ListNotebooks(w http.ResponseWriter, r *http.Request) {
	opts, err := h.selector.Options(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notebooks": opts})
}

// SelectNotebook handles PUT /notebooks/selected.
func (h *Handler) SelectNotebook(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.ID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}

	all, err := h.notebooks.ListNotebooks(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	found := false
	for _, nb := range notebook.Selectable(all) {
		if nb.ID == req.ID {
			found = true
			break
		}
	}
	if !found {
		writeJSON(w, http.StatusNotFound, errorBody("notebook not found or closed"))
		return
	}

	if err := h.selector.Save(r.Context(), req.ID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, slash.ErrUnknownCommand):
		status = http.StatusNotFound
	case errors.Is(err, notebook.ErrNotConfigured):
		status = http.StatusConflict
	case errors.Is(err, notebook.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, daily.ErrCreationFailed):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		h.log.Error("api request failed", "err", err)
	}
	writeJSON(w, status, errorBody(err.Error()))
}
