// Package server exposes the legacy colour parser over HTTP.
package server

import (
	"net/http"

	"go.uber.org/zap"

	"legacycolor/htmlcolor"
)

const defaultIndexHTML = `<!DOCTYPE html>
<html><body>
<h1>Legacy colour parser</h1>
<form action="/parse" method="get">
Value: <input name="value" size="40">
<button type="submit">Parse</button>
</form>
<form action="/swatch" method="get">
Swatch: <input name="value" size="40"> Size: <input name="size" size="4" value="64">
<button type="submit">Render</button>
</form>
</body></html>`

const (
	defaultSwatchSize = 64
	maxSwatchSize     = 1024
	maxScanBody       = 2 << 20
)

// Config describes server wiring.
type Config struct {
	IndexHTML  string
	Parser     *htmlcolor.Parser
	Logger     *zap.SugaredLogger
	SwatchSize int
}

// Server exposes the HTTP handlers.
type Server struct {
	cfg     Config
	mux     *http.ServeMux
	handler http.Handler
	parser  *htmlcolor.Parser
	logger  *zap.SugaredLogger
}

// New wires a server, filling unset fields with defaults.
func New(cfg Config) *Server {
	if cfg.IndexHTML == "" {
		cfg.IndexHTML = defaultIndexHTML
	}
	if cfg.Parser == nil {
		cfg.Parser = htmlcolor.NewParser(htmlcolor.DefaultNames())
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.SwatchSize <= 0 {
		cfg.SwatchSize = defaultSwatchSize
	}
	s := &Server{
		cfg:    cfg,
		mux:    http.NewServeMux(),
		parser: cfg.Parser,
		logger: cfg.Logger,
	}
	s.registerRoutes()
	s.handler = withLogging(s.logger, s.mux)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/", s.handleRoot)
	s.mux.HandleFunc("/parse", s.handleParse)
	s.mux.HandleFunc("/scan", s.handleScan)
	s.mux.HandleFunc("/swatch", s.handleSwatch)
	s.mux.HandleFunc("/ping", s.handlePing)
}
