package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"legacycolor/htmlcolor"
	"legacycolor/internal/swatch"
)

type colorResponse struct {
	Input string `json:"input"`
	Color string `json:"color"`
	Hex   string `json:"hex"`
	R     uint8  `json:"r"`
	G     uint8  `json:"g"`
	B     uint8  `json:"b"`
}

type errorResponse struct {
	Input string `json:"input"`
	Error string `json:"error"`
}

type scanEntry struct {
	htmlcolor.AttrColor
	Color string `json:"color,omitempty"`
	Error string `json:"error,omitempty"`
}

type scanResponse struct {
	Attributes []scanEntry `json:"attributes"`
	CSS        string      `json:"css"`
}

func newColorResponse(input string, c htmlcolor.Color) colorResponse {
	return colorResponse{Input: input, Color: c.String(), Hex: c.Hex(), R: c.R, G: c.G, B: c.B}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, s.cfg.IndexHTML)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	value := r.URL.Query().Get("value")
	c, err := s.parser.Parse(value)
	if err != nil {
		s.logger.Debugw("parse rejected", "input", value, "err", err)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Input: value, Error: err.Error()})
		return
	}
	s.logger.Debugw("parsed", "input", value, "color", c.String())
	writeJSON(w, http.StatusOK, newColorResponse(value, c))
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body := http.MaxBytesReader(w, r.Body, maxScanBody)
	defer body.Close()
	attrs, err := s.parser.ScanHTML(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "document too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp := scanResponse{Attributes: make([]scanEntry, 0, len(attrs))}
	for _, a := range attrs {
		e := scanEntry{AttrColor: a}
		if a.Err != nil {
			e.Error = a.Err.Error()
		} else {
			e.Color = a.Color.String()
		}
		resp.Attributes = append(resp.Attributes, e)
	}
	resp.CSS = htmlcolor.Stylesheet(htmlcolor.PresentationalHints(attrs)).String()
	s.logger.Debugw("scanned document", "attributes", len(attrs))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSwatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	value := q.Get("value")
	c, err := s.parser.Parse(value)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Input: value, Error: err.Error()})
		return
	}
	size := s.cfg.SwatchSize
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSwatchSize {
			http.Error(w, "size must be between 1 and "+strconv.Itoa(maxSwatchSize), http.StatusBadRequest)
			return
		}
		size = n
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if err := swatch.Encode(w, swatch.Render(c, size), swatch.FormatPNG); err != nil {
		s.logger.Warnw("swatch encode failed", "input", value, "err", err)
	}
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "pong\n")
}
