// Package api exposes the controller over a local REST surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pbaille/lifestore/internal/analysis"
	"github.com/pbaille/lifestore/internal/app"
	"github.com/pbaille/lifestore/internal/domain"
	"github.com/pbaille/lifestore/internal/export"
	"github.com/pbaille/lifestore/internal/theme"
)

// Server handles HTTP requests for the local app
type Server struct {
	ctrl      *app.Controller
	registry  *theme.Registry
	assetsDir string
	addr      string
	logger    *zap.Logger
}

// New creates a new API server
func New(ctrl *app.Controller, registry *theme.Registry, assetsDir, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{ctrl: ctrl, registry: registry, assetsDir: assetsDir, addr: addr, logger: logger}
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Analysis lifecycle
	mux.HandleFunc("POST /analyze", s.analyze)
	mux.HandleFunc("GET /state", s.state)
	mux.HandleFunc("POST /reset", s.reset)

	// Themes
	mux.HandleFunc("GET /themes", s.listThemes)
	mux.HandleFunc("PUT /theme/{id}", s.selectTheme)
	mux.HandleFunc("GET /artifact", s.artifact)
	mux.HandleFunc("POST /export", s.export)

	// History
	mux.HandleFunc("GET /history", s.listHistory)
	mux.HandleFunc("DELETE /history/{timestamp}", s.removeHistory)

	// Meme images referenced by rendered artifacts
	mux.Handle("GET "+export.AssetPrefix, http.StripPrefix(export.AssetPrefix, http.FileServer(http.Dir(s.assetsDir))))

	// Health check
	mux.HandleFunc("GET /health", s.health)

	return withCORS(s.withLogging(mux))
}

// Run starts the HTTP server and stops it when ctx is done
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", s.addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var form app.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := s.ctrl.Submit(r.Context(), form)

	var ve *app.ValidationError
	var reqErr *analysis.RequestError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, app.ErrBusy), errors.Is(err, app.ErrNotIdle), errors.Is(err, app.ErrStale):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &reqErr):
		writeError(w, http.StatusBadGateway, reqErr.Message)
	default:
		writeError(w, http.StatusBadGateway, s.ctrl.Snapshot().Error)
	}
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Reset()
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

// ThemeInfo is one row of the theme list
type ThemeInfo struct {
	ID domain.ThemeID `json:"id"`
	theme.Config
}

func (s *Server) listThemes(w http.ResponseWriter, r *http.Request) {
	ids := s.registry.List()
	themes := make([]ThemeInfo, len(ids))
	for i, id := range ids {
		themes[i] = ThemeInfo{ID: id, Config: s.registry.Config(id)}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"themes": themes,
		"active": s.ctrl.Snapshot().Theme,
	})
}

func (s *Server) selectTheme(w http.ResponseWriter, r *http.Request) {
	id := domain.ThemeID(r.PathValue("id"))
	if err := s.ctrl.SelectTheme(id); err != nil {
		status := http.StatusNotFound
		if errors.Is(err, app.ErrNotReady) {
			status = http.StatusConflict
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

func (s *Server) artifact(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.ctrl.Render(&buf); err != nil {
		if errors.Is(err, app.ErrNotReady) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	res, err := s.ctrl.Export(r.Context())

	var exportErr *export.Error
	switch {
	case err == nil:
	case errors.Is(err, app.ErrNotReady), errors.Is(err, export.ErrInProgress):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.As(err, &exportErr):
		writeError(w, http.StatusInternalServerError, exportErr.Notice())
		return
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
	w.WriteHeader(http.StatusOK)
	w.Write(res.PNG)
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": s.ctrl.History(),
	})
}

func (s *Server) removeHistory(w http.ResponseWriter, r *http.Request) {
	ts, err := strconv.ParseInt(r.PathValue("timestamp"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timestamp")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": s.ctrl.RemoveHistory(ts),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
