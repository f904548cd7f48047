// Package web serves the advisor form and a small JSON API over HTTP.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sant0-9/advisor/internal/advisor"
	"github.com/sant0-9/advisor/internal/config"
	"github.com/sant0-9/advisor/internal/persona"
)

//go:embed templates/index.html
var templateFS embed.FS

const maxBodyBytes = 64 << 10

// Asker sends a question to the model under a persona.
type Asker interface {
	Ask(ctx context.Context, text, personaID, credential string) advisor.Result
}

// CredentialSource resolves the API key before every request.
type CredentialSource interface {
	Resolve(ctx context.Context) (string, bool)
}

type Server struct {
	cfg    *config.Config
	asker  Asker
	creds  CredentialSource
	page   *template.Template
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New(cfg *config.Config, asker Asker, creds CredentialSource) (*Server, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Server{
		cfg:    cfg,
		asker:  asker,
		creds:  creds,
		page:   page,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}, nil
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/", s.handleIndex)
	r.Post("/ask", s.handleAskForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/personas", s.handlePersonas)
		r.Post("/ask", s.handleAskJSON)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      6 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

type pageData struct {
	Personas []persona.Persona
	Selected string
	Question string
	Warning  string
	Error    string
	Expert   string
	Model    string
	Answer   template.HTML
}

// defaultPersona is the configured persona, or the first of the catalog.
func (s *Server) defaultPersona() string {
	if _, ok := persona.Get(s.cfg.Persona); ok {
		return s.cfg.Persona
	}
	return persona.Default().ID
}

// personaFor fills in the default for an omitted persona. Unknown ids are kept
// and get the fallback prompt.
func (s *Server) personaFor(id string) string {
	if strings.TrimSpace(id) == "" {
		return s.defaultPersona()
	}
	return id
}

func (s *Server) newPage(selected string) pageData {
	return pageData{Personas: persona.All(), Selected: s.personaFor(selected)}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, s.newPage(""))
}

func (s *Server) handleAskForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	personaID := s.personaFor(r.PostFormValue("persona"))
	text := r.PostFormValue("question")

	data := s.newPage(personaID)
	data.Question = text

	if strings.TrimSpace(text) == "" {
		data.Warning = advisor.EmptyInputWarning
		s.renderPage(w, http.StatusOK, data)
		return
	}

	credential, ok := s.creds.Resolve(r.Context())
	if !ok {
		data.Error = advisor.MissingCredentialHelp(s.cfg)
		s.renderPage(w, http.StatusOK, data)
		return
	}

	res := s.asker.Ask(r.Context(), text, personaID, credential)
	if !res.OK() {
		slog.Warn("ask failed", "persona", personaID, "error", res.Err)
		data.Error = res.Display()
		s.renderPage(w, http.StatusOK, data)
		return
	}

	data.Expert = persona.DisplayName(personaID)
	data.Model = res.Model
	data.Answer = s.renderMarkdown(res.Text)
	s.renderPage(w, http.StatusOK, data)
}

// renderMarkdown converts the reply to sanitized HTML, falling back to escaped text.
func (s *Server) renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(text), &buf); err != nil {
		slog.Debug("markdown render", "error", err)
		return template.HTML("<pre>" + template.HTMLEscapeString(text) + "</pre>")
	}
	return template.HTML(s.policy.SanitizeBytes(buf.Bytes()))
}

func (s *Server) renderPage(w http.ResponseWriter, code int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		slog.Error("render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}

type personaJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handlePersonas(w http.ResponseWriter, _ *http.Request) {
	all := persona.All()
	out := make([]personaJSON, 0, len(all))
	for _, p := range all {
		out = append(out, personaJSON{ID: p.ID, Name: p.Name, Description: p.Description})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"personas": out,
		"default":  s.defaultPersona(),
	})
}

type askRequest struct {
	Persona  string `json:"persona"`
	Question string `json:"question"`
}

type usageJSON struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type askResponse struct {
	Persona string    `json:"persona"`
	Model   string    `json:"model,omitempty"`
	Answer  string    `json:"answer"`
	Usage   usageJSON `json:"usage"`
}

func (s *Server) handleAskJSON(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	req.Persona = s.personaFor(req.Persona)

	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, errors.New(advisor.EmptyInputWarning))
		return
	}

	credential, ok := s.creds.Resolve(r.Context())
	if !ok {
		writeError(w, http.StatusServiceUnavailable, advisor.ErrMissingCredential)
		return
	}

	res := s.asker.Ask(r.Context(), req.Question, req.Persona, credential)
	if !res.OK() {
		slog.Warn("ask failed", "persona", req.Persona, "error", res.Err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": res.Display()})
		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		Persona: req.Persona,
		Model:   res.Model,
		Answer:  res.Text,
		Usage: usageJSON{
			PromptTokens:     res.Usage.PromptTokens,
			CompletionTokens: res.Usage.CompletionTokens,
			TotalTokens:      res.Usage.TotalTokens,
		},
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
