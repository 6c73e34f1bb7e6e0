// Package server exposes the writer modes over HTTP for editor integrations.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"paper_writing_agents/history"
	"paper_writing_agents/llm"
	"paper_writing_agents/project"
	"paper_writing_agents/writer"
)

type Server struct {
	client      llm.Client
	projectsDir string
	log         *zap.Logger
}

func New(client llm.Client, projectsDir string, logger *zap.Logger) (*Server, error) {
	if client == nil {
		return nil, errors.New("llm client required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{client: client, projectsDir: projectsDir, log: logger}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects/", s.handleProject)
	return s.logMiddleware(mux)
}

// --- Handlers ---

type writeResp struct {
	Project   string `json:"project"`
	PlainText string `json:"plain_text"`
	LaTeX     string `json:"latex"`
	Version   int    `json:"version,omitempty"`
}

type historyEntryResp struct {
	Kind      string `json:"kind"`
	Seq       int    `json:"seq"`
	Timestamp string `json:"timestamp"`
	Mode      string `json:"mode,omitempty"`
	Body      string `json:"body"`
}

// handleProject routes /api/projects/{name}/{action}.
func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/projects/")
	name, action, ok := strings.Cut(rest, "/")
	if !ok || name == "" {
		http.NotFound(w, r)
		return
	}
	if strings.ContainsAny(name, `/\`) || name == ".." {
		http.Error(w, "invalid project name", http.StatusBadRequest)
		return
	}

	proj := project.At(filepath.Join(s.projectsDir, name))
	if _, err := os.Stat(proj.Root); errors.Is(err, os.ErrNotExist) {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	switch action {
	case "paragraph":
		s.handleWrite(w, r, proj, func(ctx context.Context, wr *writer.Writer) (writer.Result, error) {
			return wr.NewParagraph(ctx)
		})
	case "revise":
		s.handleWrite(w, r, proj, func(ctx context.Context, wr *writer.Writer) (writer.Result, error) {
			return wr.ReviseParagraph(ctx)
		})
	case "history":
		s.handleHistory(w, r, proj)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request, proj *project.Project,
	op func(context.Context, *writer.Writer) (writer.Result, error)) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	res, err := op(ctx, writer.New(proj, s.client, s.log))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, writeResp{
		Project:   proj.Name(),
		PlainText: res.PlainText,
		LaTeX:     res.LaTeX,
		Version:   res.Version,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, proj *project.Project) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	store := history.NewStore(proj.WritingHistoryFile(),
		history.KindPlain, history.KindVersioned, history.KindRevision)
	entries, err := store.All()
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]historyEntryResp, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryResp{
			Kind:      string(e.Kind),
			Seq:       e.Seq,
			Timestamp: e.Timestamp,
			Mode:      e.Mode,
			Body:      e.Body,
		})
	}
	writeJSON(w, out)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, writer.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, os.ErrNotExist):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}
