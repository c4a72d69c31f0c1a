package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Server hosts the MCP endpoint over streamable HTTP, with a health check
// for load balancers.
type Server struct {
	mcp    *mcpserver.MCPServer
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// disables authentication, for deployments where the network layer handles
// access (tsnet or localhost).
func New(mcp *mcpserver.MCPServer, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		mcp:    mcp,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)

	streamable := mcpserver.NewStreamableHTTPServer(s.mcp)
	s.router.Route("/mcp", func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Handle("/", streamable)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
