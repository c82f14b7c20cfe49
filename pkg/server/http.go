package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/bastiangx/teny/internal/logger"
	"github.com/charmbracelet/log"
	"github.com/rs/cors"
)

// maxBodyBytes caps request bodies independently of the text length limit.
const maxBodyBytes = 1 << 20

// NewHTTPHandler serves the ops as JSON:
//
//	POST /api/{op}  body is a Request with long field names
//	GET  /api/health
//	GET  /api/stats
//
// Responses are the bare op result, or {"error", "status"} on failure.
func NewHTTPHandler(h *Handler, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		serveOp(h, w, Request{Op: OpHealth})
	})
	mux.HandleFunc("GET /api/stats", func(w http.ResponseWriter, r *http.Request) {
		serveOp(h, w, Request{Op: OpStats})
	})
	mux.HandleFunc("POST /api/{op}", func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "body must be a JSON object")
			return
		}
		req.Op = r.PathValue("op")
		serveOp(h, w, req)
	})

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
}

func serveOp(h *Handler, w http.ResponseWriter, req Request) {
	result, err := h.Handle(req)
	if err == nil {
		writeJSON(w, http.StatusOK, result)
		return
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		writeError(w, reqErr.Code, reqErr.Message)
		return
	}
	log.Errorf("HTTP %s failed: %v", req.Op, err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Encoding HTTP response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: status})
}

// ListenAndServe runs the HTTP adapter on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, h *Handler, allowedOrigins []string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHTTPHandler(h, allowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          logger.New("http").StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
	}
	errc := make(chan error, 1)
	go func() {
		log.Infof("HTTP listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
