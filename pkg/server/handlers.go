package server

import (
	"io"
	"maps"
	"net/http"

	"github.com/matzehuels/hintlayout/pkg/buildinfo"
	"github.com/matzehuels/hintlayout/pkg/errors"
	"github.com/matzehuels/hintlayout/pkg/flexbox"
	"github.com/matzehuels/hintlayout/pkg/geom"
	"github.com/matzehuels/hintlayout/pkg/observability"
	"github.com/matzehuels/hintlayout/pkg/pipeline"
	"github.com/matzehuels/hintlayout/pkg/placement"
	"github.com/matzehuels/hintlayout/pkg/scenario"
	"github.com/matzehuels/hintlayout/pkg/scroll"
)

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: buildinfo.Version})
}

// PlaceResponse is returned by POST /v1/place.
type PlaceResponse struct {
	RequestID    string            `json:"request_id"`
	Placed       bool              `json:"placed"`
	Result       *placement.Result `json:"result,omitempty"`
	ScenarioHash string            `json:"scenario_hash"`
	CacheHit     bool              `json:"cache_hit"`
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeErr(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	sc, err := scenario.Parse(data, errors.FormatJSON)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	res, err := s.runner.Place(r.Context(), pipeline.Options{
		Scenario: sc,
		Planner:  s.planner,
		Refresh:  r.URL.Query().Get("refresh") == "true",
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}

	resp := PlaceResponse{
		RequestID:    RequestID(r.Context()),
		Placed:       res.Placed,
		ScenarioHash: res.ScenarioHash,
		CacheHit:     res.CacheHit,
	}
	if res.Placed {
		resp.Result = &res.Placement
	}
	writeJSON(w, http.StatusOK, resp)
}

// FlexPart is one named part of a flex request.
type FlexPart struct {
	Name string `json:"name"`
	flexbox.Part
}

// FlexRequest is the body of POST /v1/flex.
type FlexRequest struct {
	Total float64    `json:"total"`
	Parts []FlexPart `json:"parts"`
}

// FlexResponse is returned by POST /v1/flex.
type FlexResponse struct {
	Feasible    bool               `json:"feasible"`
	Allocations map[string]float64 `json:"allocations,omitempty"`
	Ranges      []FlexRange        `json:"ranges,omitempty"`
	Unused      float64            `json:"unused"`
}

// FlexRange is a part's allocation laid out from offset zero.
type FlexRange struct {
	Name  string           `json:"name"`
	Range geom.OffsetRange `json:"range"`
}

func (req FlexRequest) validate() error {
	if err := errors.ValidateNonNegative("total", req.Total); err != nil {
		return err
	}
	if len(req.Parts) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "parts cannot be empty")
	}
	seen := make(map[string]bool, len(req.Parts))
	for i, p := range req.Parts {
		if p.Name == "" {
			return errors.New(errors.ErrCodeInvalidInput, "parts[%d].name cannot be empty", i)
		}
		if seen[p.Name] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate part name %q", p.Name)
		}
		seen[p.Name] = true
		if err := errors.ValidateNonNegative(p.Name+".min", p.Min); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) handleFlex(w http.ResponseWriter, r *http.Request) {
	var req FlexRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErr(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		writeErr(w, r, err)
		return
	}

	parts := make([]flexbox.NamedPart, len(req.Parts))
	names := make([]string, len(req.Parts))
	for i, p := range req.Parts {
		parts[i] = flexbox.NamedPart{Name: p.Name, Part: p.Part}
		names[i] = p.Name
	}
	alloc, ok := flexbox.Distribute(req.Total, parts)
	if !ok {
		writeJSON(w, http.StatusOK, FlexResponse{Feasible: false})
		return
	}

	ranges := flexbox.Slice(alloc.Lengths(names...), 0)
	resp := FlexResponse{
		Feasible:    true,
		Allocations: maps.Clone(alloc),
		Ranges:      make([]FlexRange, len(names)),
		Unused:      req.Total - alloc.Total(),
	}
	for i, name := range names {
		resp.Ranges[i] = FlexRange{Name: name, Range: ranges[i]}
	}
	writeJSON(w, http.StatusOK, resp)
}

// RevealRequest is the body of POST /v1/reveal.
type RevealRequest struct {
	Current float64 `json:"current"`
	Window  float64 `json:"window"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// RevealResponse is returned by POST /v1/reveal.
type RevealResponse struct {
	Scroll float64 `json:"scroll"`
	Delta  float64 `json:"delta"`
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var req RevealRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErr(w, r, err)
		return
	}
	if err := errors.ValidateFinite("current", req.Current); err != nil {
		writeErr(w, r, err)
		return
	}
	if err := errors.ValidateNonNegative("window", req.Window); err != nil {
		writeErr(w, r, err)
		return
	}
	if err := errors.ValidateRange("target", req.Start, req.End); err != nil {
		writeErr(w, r, err)
		return
	}

	next := scroll.ToReveal(req.Current, req.Window, geom.NewOffsetRange(req.Start, req.End))
	writeJSON(w, http.StatusOK, RevealResponse{Scroll: next, Delta: next - req.Current})
}

// StatsResponse is returned by GET /v1/stats.
type StatsResponse struct {
	observability.Stats
	Routes []string `json:"routes"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatsResponse{
		Stats:  s.stats.Snapshot(),
		Routes: s.routeList(),
	})
}
