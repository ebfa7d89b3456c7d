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

	"github.com/aretw0/goap"
	"github.com/aretw0/goap/pkg/catalogue"
	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/goap/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// CatalogueURI is the resource exposing the served catalogue.
const CatalogueURI = "goap://catalogue"

// PlanResponse aligns with the HTTP adapter and provides a unified structure across adapters.
type PlanResponse struct {
	Found      bool     `json:"found" jsonschema_description:"Whether a plan reaching the goal was found"`
	Cost       float64  `json:"cost" jsonschema_description:"Accumulated cost of the plan (0 when not found)"`
	Actions    []string `json:"actions" jsonschema_description:"Ordered action keys to execute"`
	Iterations int      `json:"iterations" jsonschema_description:"Search iterations used"`
	Reason     string   `json:"reason,omitempty" jsonschema_description:"Why no plan was found"`
}

// Server wraps a Planner and exposes it as an MCP Server.
type Server struct {
	planner   ports.Planner
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(planner ports.Planner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		planner:   planner,
		mcpServer: server.NewMCPServer("goap-mcp", strings.TrimSpace(goap.Version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
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
	// TOOL: find_plan
	findTool := mcp.NewTool("find_plan",
		mcp.WithDescription("Find the cheapest sequence of actions turning the start state into one that satisfies the goal."),
		mcp.WithString("start", mcp.Description("JSON object of numeric facts holding initially, e.g. {\"HasDirtyDishes\": 1}")),
		mcp.WithString("goal", mcp.Required(), mcp.Description("JSON object of numeric facts the plan must reach")),
		mcp.WithOutputSchema[PlanResponse](),
	)
	s.mcpServer.AddTool(findTool, mcp.NewStructuredToolHandler(s.handleFindPlan))

	// TOOL: list_actions
	s.mcpServer.AddTool(mcp.NewTool("list_actions",
		mcp.WithDescription("List the action keys available to the planner."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.planner.Catalogue().Keys())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func parseState(args map[string]interface{}, key string) (domain.State, error) {
	raw, _ := args[key].(string)
	if strings.TrimSpace(raw) == "" {
		return domain.NewState("", nil), nil
	}
	var st domain.State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return domain.State{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return st, nil
}

func (s *Server) handleFindPlan(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PlanResponse, error) {
	start, err := parseState(args, "start")
	if err != nil {
		return PlanResponse{}, err
	}
	goal, err := parseState(args, "goal")
	if err != nil {
		return PlanResponse{}, err
	}

	plan, err := s.planner.FindPlan(ctx, start, goal)
	if errors.Is(err, domain.ErrNoPath) {
		return PlanResponse{Actions: []string{}, Reason: err.Error()}, nil
	}
	if err != nil {
		s.logger.Error("MCP FindPlan failed", "error", err)
		return PlanResponse{}, fmt.Errorf("find plan failed: %w", err)
	}

	return PlanResponse{
		Found:      true,
		Cost:       plan.Cost,
		Actions:    plan.Path.Actions(),
		Iterations: plan.Iterations,
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: goap://catalogue
	s.mcpServer.AddResource(mcp.NewResource(CatalogueURI, "Action Catalogue",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := catalogue.EncodeJSON(s.planner.Catalogue())
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalogue: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      CatalogueURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
