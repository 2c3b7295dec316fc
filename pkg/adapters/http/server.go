package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/viterbi"
	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/aretw0/viterbi/pkg/hmm"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// maxBodyBytes caps request bodies (definitions and observation lists).
const maxBodyBytes = 4 << 20

// Engine defines the subset of *viterbi.Engine the HTTP adapter drives.
type Engine interface {
	Decode(ctx context.Context, name string, symbols []string) (domain.Result, error)
	Models(ctx context.Context) ([]string, error)
	Describe(ctx context.Context, name string) (*domain.Definition, error)
	Save(ctx context.Context, def *domain.Definition) error
	Delete(ctx context.Context, name string) error
	Watch(ctx context.Context) (<-chan string, error)
}

var _ Engine = (*viterbi.Engine)(nil)

// Server serves the decoder over JSON.
type Server struct {
	Engine  Engine
	Logger  *slog.Logger
	Metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetricsHandler mounts h (usually promhttp.Handler()) at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{Engine: engine}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec())
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics)
	}

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/events", server.SubscribeEvents)
	r.Route("/models", func(r chi.Router) {
		r.Get("/", server.ListModels)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", server.withName(server.GetModel))
			r.Put("/", server.withName(server.PutModel))
			r.Delete("/", server.withName(server.DeleteModel))
			r.Post("/decode", server.withName(server.Decode))
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Viterbi API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// withName binds the {name} path parameter.
func (s *Server) withName(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var name string
		err := runtime.BindStyledParameterWithLocation("simple", false, "name", runtime.ParamLocationPath, chi.URLParam(r, "name"), &name)
		if err != nil || name == "" {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter name: %v", err))
			return
		}
		next(w, r, name)
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "viterbi-http",
		"version":     strings.TrimSpace(viterbi.Version),
		"api_version": apiVersion,
	})
}

// ListModels handles the GET /models request.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.Models(r.Context())
	if err != nil {
		s.fail(w, "ListModels", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, ModelList{Models: names})
}

// GetModel handles the GET /models/{name} request.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request, name string) {
	def, err := s.Engine.Describe(r.Context(), name)
	if err != nil {
		s.fail(w, "GetModel", err)
		return
	}
	s.writeJSON(w, http.StatusOK, def)
}

// PutModel handles the PUT /models/{name} request. The path name wins over
// any name in the body.
func (s *Server) PutModel(w http.ResponseWriter, r *http.Request, name string) {
	var def domain.Definition
	if err := s.decodeBody(w, r, &def); err != nil {
		s.Logger.Warn("PutModel: Invalid request body", "error", err)
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	def.Name = name

	if err := s.Engine.Save(r.Context(), &def); err != nil {
		s.fail(w, "PutModel", err)
		return
	}
	s.Logger.Info("model saved", "model", name)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteModel handles the DELETE /models/{name} request.
func (s *Server) DeleteModel(w http.ResponseWriter, r *http.Request, name string) {
	if err := s.Engine.Delete(r.Context(), name); err != nil {
		s.fail(w, "DeleteModel", err)
		return
	}
	s.Logger.Info("model deleted", "model", name)
	w.WriteHeader(http.StatusNoContent)
}

// Decode handles the POST /models/{name}/decode request.
func (s *Server) Decode(w http.ResponseWriter, r *http.Request, name string) {
	var body DecodeRequest
	if err := s.decodeBody(w, r, &body); err != nil {
		s.Logger.Warn("Decode: Invalid request body", "error", err)
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	res, err := s.Engine.Decode(r.Context(), name, body.Observations)
	if err != nil {
		s.fail(w, "Decode", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// SubscribeEvents handles the GET /events request (SSE): one event per
// changed model document.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	events, err := s.Engine.Watch(r.Context())
	if err != nil {
		s.writeError(w, http.StatusNotImplemented, fmt.Errorf("watch error: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected")
			return
		case name, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: model\ndata: %s\n\n", name)
			flusher.Flush()
		}
	}
}

// -- Helpers --

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Debug(op+" rejected", "error", err, "status", status)
	}
	s.writeError(w, status, err)
}

// StatusFor returns the HTTP status code for an engine error.
func StatusFor(err error) int {
	var verr *hmm.ModelValidationError
	var oerr *hmm.InvalidObservationError
	switch {
	case errors.Is(err, domain.ErrModelNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReadOnly):
		return http.StatusMethodNotAllowed
	case errors.As(err, &verr),
		errors.As(err, &oerr),
		errors.Is(err, domain.ErrInvalidDefinition),
		errors.Is(err, domain.ErrUnknownSymbol):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, newErrorResponse(err))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
