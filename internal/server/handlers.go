package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/spliceplot/pkg/buildinfo"
	"github.com/matzehuels/spliceplot/pkg/errors"
	spio "github.com/matzehuels/spliceplot/pkg/io"
	"github.com/matzehuels/spliceplot/pkg/pipeline"
	"github.com/matzehuels/spliceplot/pkg/render/canvas"
	"github.com/matzehuels/spliceplot/pkg/render/figure"
	"github.com/matzehuels/spliceplot/pkg/render/figure/grid"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

type gridResponse struct {
	Width  float64            `json:"width"`
	Height float64            `json:"height"`
	Config grid.Config        `json:"config"`
	Panels []figure.PanelInfo `json:"panels"`
}

// handleGrid reports the panel rectangles of the configured grid.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	opts := s.defaults
	if err := applyQuery(&opts, r); err != nil {
		writeError(w, err)
		return
	}
	opts.SetDefaults()
	if err := errors.ValidateCanvas(opts.Width, opts.Height, opts.FontSize); err != nil {
		writeError(w, err)
		return
	}
	if err := pipeline.ValidateCanvasBounds(opts.Width, opts.Height); err != nil {
		writeError(w, err)
		return
	}

	cfg := figure.DefaultConfig()
	if opts.Grid != nil {
		cfg = *opts.Grid
	}
	g, err := grid.New(canvas.New(opts.Width, opts.Height), cfg)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := gridResponse{Width: opts.Width, Height: opts.Height, Config: cfg}
	for _, c := range g.Cells() {
		rect, _ := g.CellRect(c.Col, c.Row)
		resp.Panels = append(resp.Panels, figure.PanelInfo{Cell: c, Role: figure.Role(c), Rect: rect})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRender renders the dataset in the request body and keeps it for
// later renders by hash.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	ds, err := s.runner.Read(r.Context(), body, "request")
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := s.runner.Store(r.Context(), ds); err != nil {
		s.logger.Warn("store dataset", "err", err)
	}
	s.render(w, r, ds)
}

// handleRenderStored renders a dataset uploaded earlier, addressed by the
// hash returned in X-Dataset-Hash.
func (s *Server) handleRenderStored(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	ds, ok, err := s.runner.Lookup(r.Context(), hash)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "dataset %s not found", hash))
		return
	}
	s.render(w, r, ds)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, ds *spio.Dataset) {
	opts := s.defaults
	if err := applyQuery(&opts, r); err != nil {
		writeError(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts, ds)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Dataset-Hash", result.DatasetHash)
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// applyQuery overrides opts with the numeric and boolean query parameters.
func applyQuery(opts *pipeline.Options, r *http.Request) error {
	q := r.URL.Query()
	floats := []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"font_size", &opts.FontSize},
		{"lane_width", &opts.LaneWidth},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s: not a number: %q", f.name, v)
		}
		*f.dst = n
	}
	if v := q.Get("zoom_radius"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "zoom_radius: not an integer: %q", v)
		}
		opts.ZoomRadius = n
	}
	if v := q.Get("acceptor_lanes"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "acceptor_lanes: not a boolean: %q", v)
		}
		opts.AcceptorLanes = &b
	}
	if v := q.Get("refresh"); v != "" {
		opts.Refresh, _ = strconv.ParseBool(v)
	}
	return nil
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// statusOf maps an error code to an HTTP status.
func statusOf(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	if errors.IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(err), errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
