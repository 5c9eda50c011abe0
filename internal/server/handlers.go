package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/matzehuels/padviz/pkg/errors"
	"github.com/matzehuels/padviz/pkg/pipeline"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleLayout computes geometry for the posted control-flow tree.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	tree, err := s.runner.Decode(r.Context(), body)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	geometry, err := s.runner.ComputeLayout(r.Context(), tree, pipeline.Options{})
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	data, err := pipeline.MarshalGeometry(geometry)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// handleRender runs the full pipeline and responds with one artifact.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	style := r.URL.Query().Get("style")

	opts := pipeline.Options{
		Formats: []string{format},
		Style:   style,
		Logger:  s.logger,
		Refresh: r.URL.Query().Get("refresh") == "true",
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	body, err := s.readBody(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), body, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if badInput(err) {
			status = http.StatusBadRequest
		}
		s.writeError(w, r, status, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	_, _ = w.Write(result.Artifacts[format])
}

// badInput reports whether err stems from the client's payload rather
// than the server: a structured input code or a JSON syntax failure.
func badInput(err error) bool {
	if errors.Is(err, errors.ErrCodeInvalidInput) || errors.Is(err, errors.ErrCodeInvalidTree) {
		return true
	}
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	return stderrors.As(err, &syn) || stderrors.As(err, &typ)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Error("request failed",
		"status", status,
		"error", err,
		"request_id", RequestID(r.Context()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}
