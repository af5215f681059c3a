// Package site serves the server-rendered squad maker pages.
package site

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/okian/squadmaker/internal/adapters/http/api"
	"github.com/okian/squadmaker/internal/domain/balance"
	"github.com/okian/squadmaker/internal/domain/types"
	"github.com/okian/squadmaker/pkg/logger"
)

// Error constants
var (
	ErrTemplate = errors.New("site template failed")
)

type homeView struct {
	Title       string
	Param       string
	NumSquads   string
	Error       string
	WaitingList []types.Player
}

type squadsView struct {
	Title       string
	Squads      []types.Squad
	WaitingList []types.Player
}

type pageView struct {
	Title string
}

// Handler renders the home, squads and not-found pages.
type Handler struct {
	deps   api.Dependencies
	pages  map[string]*template.Template
	logger logger.Logger
}

// NewHandler parses the embedded templates.
func NewHandler(deps api.Dependencies, log logger.Logger) (*Handler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{deps: deps, pages: pages, logger: log}, nil
}

// Register attaches the site routes to mux. "/" doubles as the not-found page.
func (h *Handler) Register(mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", api.MetricsMiddleware(h.HandleHome, "home"))
	mux.HandleFunc("/squad-maker", api.MetricsMiddleware(h.HandleSquads, "squad-maker"))
}

// HandleHome lists every player as the initial waiting list.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		h.render(w, r, http.StatusNotFound, pageNotFound, pageView{Title: "Not found"})
		return
	}
	h.renderHome(w, r, http.StatusOK, "", "")
}

// HandleSquads builds squads. Invalid input re-renders the home page with
// the message and a 400 status.
func (h *Handler) HandleSquads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.render(w, r, http.StatusNotFound, pageNotFound, pageView{Title: "Not found"})
		return
	}

	raw := r.URL.Query().Get(api.NumSquadsParam)
	n, err := api.ParseNumSquads(raw)
	if err == nil {
		var res balance.Result
		res, err = h.deps.MakeSquads(r.Context(), n)
		if err == nil {
			view := types.NewSquadsResponse(res)
			h.render(w, r, http.StatusOK, pageSquads, squadsView{
				Title:       "Squads",
				Squads:      view.Squads,
				WaitingList: view.WaitingList,
			})
			return
		}
	}

	if errors.Is(err, balance.ErrInvalidRequest) {
		h.logger.Info(r.Context(), "got an invalid squad request", logger.Error(err))
		h.renderHome(w, r, http.StatusBadRequest, raw, api.UserMessage(err))
		return
	}
	h.renderError(w, r, err)
}

func (h *Handler) renderHome(w http.ResponseWriter, r *http.Request, status int, numSquads, message string) {
	players, err := h.deps.Players(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, status, pageHome, homeView{
		Param:       api.NumSquadsParam,
		NumSquads:   numSquads,
		Error:       message,
		WaitingList: types.NewPlayers(players),
	})
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error(r.Context(), "failed to serve page", logger.String("path", r.URL.Path), logger.Error(err))
	h.render(w, r, http.StatusInternalServerError, pageError, pageView{Title: "Error"})
}

// render buffers the page and only then writes the status and body.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error(r.Context(), "failed to render page", logger.String("page", page), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
