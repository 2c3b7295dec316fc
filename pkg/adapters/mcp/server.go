package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/viterbi"
	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// DecodeResponse is the structured output of the decode tool.
type DecodeResponse struct {
	Model        string   `json:"model" jsonschema_description:"Name of the model used"`
	Observations []string `json:"observations" jsonschema_description:"The decoded observation symbols"`
	States       []string `json:"states" jsonschema_description:"Most likely hidden state for each observation"`
	Score        float64  `json:"score" jsonschema_description:"Joint probability of the path and the observations"`
}

// ModelList is the structured output of the list_models tool.
type ModelList struct {
	Models []string `json:"models" jsonschema_description:"Names of the available models"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	Decode(ctx context.Context, name string, symbols []string) (domain.Result, error)
	Models(ctx context.Context) ([]string, error)
	Describe(ctx context.Context, name string) (*domain.Definition, error)
}

var _ Engine = (*viterbi.Engine)(nil)

// Server wraps the Viterbi Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("viterbi-mcp", strings.TrimSpace(viterbi.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
		return nil
	})

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_models
	listTool := mcp.NewTool("list_models",
		mcp.WithDescription("List the names of the Hidden Markov Models available for decoding."),
		mcp.WithOutputSchema[ModelList](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListModels))

	// TOOL: describe_model
	describeTool := mcp.NewTool("describe_model",
		mcp.WithDescription("Get a model definition: its states, symbols and probability tables."),
		mcp.WithString("model", mcp.Required(), mcp.Description("Model name")),
	)
	s.mcpServer.AddTool(describeTool, s.handleDescribeModel)

	// TOOL: decode
	decodeTool := mcp.NewTool("decode",
		mcp.WithDescription("Find the most likely hidden state sequence for a sequence of observations (Viterbi)."),
		mcp.WithString("model", mcp.Required(), mcp.Description("Model name")),
		mcp.WithString("observations", mcp.Required(),
			mcp.Description("Observation symbols, as a JSON array or a comma separated list")),
		mcp.WithOutputSchema[DecodeResponse](),
	)
	s.mcpServer.AddTool(decodeTool, mcp.NewStructuredToolHandler(s.handleDecode))
}

type describeArgs struct {
	Model string `mapstructure:"model"`
}

type decodeArgs struct {
	Model        string `mapstructure:"model"`
	Observations any    `mapstructure:"observations"`
}

func decodeArguments(args map[string]interface{}, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// ParseObservations accepts a JSON array of strings, a []any as sent by
// clients that skip the schema, or a comma/space separated list.
func ParseObservations(v any) ([]string, error) {
	switch obs := v.(type) {
	case nil:
		return nil, errors.New("observations are required")
	case []string:
		return obs, nil
	case []any:
		out := make([]string, len(obs))
		for i, o := range obs {
			out[i] = fmt.Sprint(o)
		}
		return out, nil
	case string:
		clean, err := viterbi.SanitizeInput(obs, 0)
		if err != nil {
			return nil, fmt.Errorf("observations: %w", err)
		}
		trimmed := strings.TrimSpace(clean)
		if strings.HasPrefix(trimmed, "[") {
			var out []string
			if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
				return nil, fmt.Errorf("observations: %w", err)
			}
			return out, nil
		}
		return viterbi.SplitSymbols(trimmed), nil
	default:
		return nil, fmt.Errorf("observations: unsupported type %T", v)
	}
}

// Handler methods for structured tools

func (s *Server) handleListModels(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ModelList, error) {
	names, err := s.engine.Models(ctx)
	if err != nil {
		return ModelList{}, fmt.Errorf("list failed: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return ModelList{Models: names}, nil
}

func (s *Server) handleDescribeModel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args describeArgs
	if err := decodeArguments(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	def, err := s.engine.Describe(ctx, args.Model)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("describe failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(def)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleDecode(ctx context.Context, request mcp.CallToolRequest, raw map[string]interface{}) (DecodeResponse, error) {
	var args decodeArgs
	if err := decodeArguments(raw, &args); err != nil {
		return DecodeResponse{}, err
	}
	symbols, err := ParseObservations(args.Observations)
	if err != nil {
		return DecodeResponse{}, err
	}

	res, err := s.engine.Decode(ctx, args.Model, symbols)
	if err != nil {
		s.logger.Warn("MCP Decode: rejected", "model", args.Model, "error", err)
		return DecodeResponse{}, fmt.Errorf("decode failed: %w", err)
	}

	return DecodeResponse{
		Model:        res.Model,
		Observations: res.Observations,
		States:       res.States,
		Score:        res.Score,
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: viterbi://models
	s.mcpServer.AddResource(mcp.NewResource("viterbi://models", "Available Models",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.engine.Models(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		jsonBytes, _ := json.Marshal(ModelList{Models: names})

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "viterbi://models",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
