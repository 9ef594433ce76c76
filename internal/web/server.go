package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ostimeline/internal/applog"
	"ostimeline/internal/dataset"
	"ostimeline/internal/model"
	"ostimeline/internal/timeline"
)

//go:embed static/*
var staticFS embed.FS

//go:embed help.md
var helpMD string

// Server serves the timeline page and its JSON API. It holds no per-user
// state: every request carries the full filter snapshot.
type Server struct {
	ds     *dataset.Dataset
	bounds timeline.Bounds
	addr   string
}

// NewServer creates a server for ds listening on addr (e.g. ":8080").
func NewServer(ds *dataset.Dataset, addr string) *Server {
	minYear, maxYear := ds.Bounds()
	return &Server{
		ds:     ds,
		bounds: timeline.Bounds{Min: minYear, Max: maxYear},
		addr:   addr,
	}
}

// Handler returns the routed mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /", http.FileServer(http.FS(subFS)))

	// API Endpoints
	mux.HandleFunc("GET /api/meta", s.handleMeta)
	mux.HandleFunc("GET /api/timeline", s.handleTimeline)
	mux.HandleFunc("GET /api/toggle", s.handleToggle)
	mux.HandleFunc("GET /api/entry", s.handleEntry)
	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("GET /api/help", s.handleHelp)

	return logRequests(mux)
}

// Start blocks serving HTTP.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	host := s.addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	fmt.Printf("Starting ostimeline web server at http://%s\n", host)
	fmt.Printf("Go to http://%s in your browser.\n", host)
	applog.Log.WithField("addr", s.addr).Info("web server listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		applog.Log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}

type metaResponse struct {
	Types    []model.EntryType `json:"types"`
	Families []model.Family    `json:"families"`
	Bounds   timeline.Bounds   `json:"bounds"`
	Count    int               `json:"count"`
	Version  string            `json:"version"`
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metaResponse{
		Types:    model.Types,
		Families: model.Families,
		Bounds:   s.bounds,
		Count:    s.ds.Len(),
		Version:  model.Version,
	})
}

type timelineResponse struct {
	Count    int               `json:"count"`
	Range    timeline.Range    `json:"range"`
	Types    []model.EntryType `json:"types"`
	Families []model.Family    `json:"families"`
	Summary  string            `json:"summary"`
	Buckets  []timeline.Bucket `json:"buckets"`
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	st, err := s.parseState(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filtered := timeline.Filter(s.ds.Entries(), st)
	writeJSON(w, http.StatusOK, timelineResponse{
		Count:    len(filtered),
		Range:    st.Range,
		Types:    st.Types.Ordered(model.Types),
		Families: st.Families.Ordered(model.Families),
		Summary:  timeline.Describe(st),
		Buckets:  timeline.GroupByDecade(filtered),
	})
}

type toggleResponse struct {
	Facet    string   `json:"facet"`
	Selected []string `json:"selected"`
}

// handleToggle applies one chip click so the page shares the exact
// isolate/reset behaviour of the terminal UI.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	clicked := q.Get("clicked")

	var selected []string
	switch facet := q.Get("facet"); facet {
	case "type":
		cur, err := facetTypes(q, "selected")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c, err := timeline.ParseTypes([]string{clicked})
		if err != nil || c.Len() != 1 {
			http.Error(w, fmt.Sprintf("invalid clicked type %q", clicked), http.StatusBadRequest)
			return
		}
		next := timeline.Toggle(cur, model.Types, c.Ordered(model.Types)[0])
		selected = toStrings(next.Ordered(model.Types))
	case "family":
		cur, err := facetFamilies(q, "selected")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c, err := timeline.ParseFamilies([]string{clicked})
		if err != nil || c.Len() != 1 {
			http.Error(w, fmt.Sprintf("invalid clicked family %q", clicked), http.StatusBadRequest)
			return
		}
		next := timeline.Toggle(cur, model.Families, c.Ordered(model.Families)[0])
		selected = toStrings(next.Ordered(model.Families))
	default:
		http.Error(w, fmt.Sprintf("unknown facet %q", facet), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{Facet: q.Get("facet"), Selected: selected})
}

type entryResponse struct {
	model.Entry
	RelatedEntries []relatedRef `json:"relatedEntries"`
}

type relatedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	e, ok := s.ds.Lookup(id)
	if !ok {
		http.Error(w, fmt.Sprintf("entry %q not found", id), http.StatusNotFound)
		return
	}

	refs := []relatedRef{}
	for _, rel := range s.ds.Related(e) {
		refs = append(refs, relatedRef{ID: rel.ID, Name: rel.Name})
	}
	writeJSON(w, http.StatusOK, entryResponse{Entry: e, RelatedEntries: refs})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	st, err := s.parseState(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filtered := timeline.Filter(s.ds.Entries(), st)
	data, name, err := timeline.Export(filtered, st.Range.From, st.Range.To)
	if err != nil {
		applog.Log.Errorf("export: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(data)
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	// Use the embedded help content
	text := strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(text))
}

// parseState builds a filter snapshot from query parameters:
//
//	q        free text
//	type     repeated; absent means every type, present but empty means none
//	family   same rules as type
//	from, to years, clamped to the dataset bounds
func (s *Server) parseState(q url.Values) (timeline.State, error) {
	st := timeline.DefaultState(s.bounds)
	st.Query = q.Get("q")

	types, err := facetTypes(q, "type")
	if err != nil {
		return st, err
	}
	st.Types = types

	families, err := facetFamilies(q, "family")
	if err != nil {
		return st, err
	}
	st.Families = families

	rng := s.bounds.Full()
	if v := q.Get("from"); v != "" {
		if rng.From, err = strconv.Atoi(v); err != nil {
			return st, fmt.Errorf("invalid from %q", v)
		}
	}
	if v := q.Get("to"); v != "" {
		if rng.To, err = strconv.Atoi(v); err != nil {
			return st, fmt.Errorf("invalid to %q", v)
		}
	}
	st.Range = rng.Clamp(s.bounds)
	return st, nil
}

func facetTypes(q url.Values, key string) (timeline.Set[model.EntryType], error) {
	values, present := q[key]
	if !present {
		return timeline.NewSet(model.Types...), nil
	}
	return timeline.ParseTypes(values)
}

func facetFamilies(q url.Values, key string) (timeline.Set[model.Family], error) {
	values, present := q[key]
	if !present {
		return timeline.NewSet(model.Families...), nil
	}
	return timeline.ParseFamilies(values)
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.Log.Errorf("encode response: %v", err)
	}
}
