package main

import (
	"embed"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/goliatone/go-metabox/pkg/hooks"
	"github.com/goliatone/go-metabox/pkg/orchestrator"
	"github.com/goliatone/go-metabox/pkg/panel"
	"github.com/goliatone/go-metabox/pkg/payload"
	"github.com/goliatone/go-metabox/pkg/render/pongo"
)

//go:embed templates/*.tmpl
var pageFS embed.FS

// createdField marks a form rendered for a content item that has never been saved.
const createdField = "_created"

type server struct {
	screen    string
	registrar *hooks.Registry
	gen       *orchestrator.Orchestrator
	pages     *pongo.Engine
	logger    *slog.Logger
}

func newServer(screen string, registrar *hooks.Registry, gen *orchestrator.Orchestrator, logger *slog.Logger, pageOpts ...pongo.Option) (*server, error) {
	pages, err := pongo.New(append([]pongo.Option{pongo.WithFS(pageFS)}, pageOpts...)...)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &server{
		screen:    screen,
		registrar: registrar,
		gen:       gen,
		pages:     pages,
		logger:    logger,
	}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "OK")
	})

	r.Route("/content", func(r chi.Router) {
		r.Post("/", s.createContent)
		r.Get("/{id}", s.editContent)
		r.Post("/{id}", s.saveContent)
		r.Get("/{id}/values", s.contentValues)
	})
	return r
}

func (s *server) createContent(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	s.logger.Info("content created", "content_id", id)
	http.Redirect(w, r, "/content/"+id+"?created=1", http.StatusSeeOther)
}

func (s *server) editContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	query := r.URL.Query()

	var panels strings.Builder
	if err := s.registrar.Display(r.Context(), &panels, s.screen, id); err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := s.pages.RenderTemplate("templates/page", map[string]any{
		"title":      "Content " + id,
		"content_id": id,
		"created":    query.Get("created") == "1",
		"saved":      query.Get("saved") == "1",
		"panels":     panels.String(),
	}, w)
	if err != nil {
		s.logger.Error("render page", "content_id", id, "error", err)
	}
}

func (s *server) saveContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form, err := payload.FromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, _ := form.Value(createdField)
	err = s.registrar.Save(r.Context(), panel.SaveRequest{
		ContentID: id,
		Update:    created != "1",
		Payload:   form,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("content saved", "content_id", id)
	http.Redirect(w, r, "/content/"+id+"?saved=1", http.StatusSeeOther)
}

func (s *server) contentValues(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	out := make(map[string]map[string]any)
	for _, p := range s.gen.Panels() {
		values, err := p.Values(r.Context(), id)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		out[p.Config().ID] = values
	}
	render.JSON(w, r, out)
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	render.Status(r, http.StatusInternalServerError)
	render.PlainText(w, r, http.StatusText(http.StatusInternalServerError))
}
