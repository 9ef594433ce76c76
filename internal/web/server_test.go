package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ostimeline/internal/dataset"
	"ostimeline/internal/model"
)

func testServer() *Server {
	ds := dataset.New([]model.Entry{
		{ID: "multics", Name: "Multics", Type: model.TypeOperatingSystem, Family: model.FamilyEarly,
			Platform: []model.Platform{model.PlatformMainframe}, YearStart: 1965, YearEnd: model.IntPtr(2000),
			Description: "Time-sharing."},
		{ID: "linux", Name: "Linux Kernel", Type: model.TypeKernel, Family: model.FamilyLinux,
			Platform: []model.Platform{model.PlatformServer}, YearStart: 1991, Description: "Kernel.",
			Related: []string{"minix", "ghost"}},
		{ID: "minix", Name: "MINIX", Type: model.TypeMicrokernel, Family: model.FamilyResearch,
			Platform: []model.Platform{model.PlatformDesktop}, YearStart: 1987, Description: "Teaching OS."},
		{ID: "solaris", Name: "Solaris", Type: model.TypeOperatingSystem, Family: model.FamilySystemV,
			Platform: []model.Platform{model.PlatformServer}, YearStart: 1992, YearEnd: model.IntPtr(2018),
			Description: "Sun's Unix.", Highlights: []string{"ZFS"}},
	})
	return NewServer(ds, ":0")
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestMeta(t *testing.T) {
	rec := get(t, testServer(), "/api/meta")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	meta := decode[metaResponse](t, rec)
	assert.Equal(t, model.Types, meta.Types)
	assert.Equal(t, model.Families, meta.Families)
	assert.Equal(t, 1965, meta.Bounds.Min)
	assert.Equal(t, 2018, meta.Bounds.Max)
	assert.Equal(t, 4, meta.Count)
	assert.Equal(t, model.Version, meta.Version)
}

func TestTimeline(t *testing.T) {
	s := testServer()

	t.Run("defaults", func(t *testing.T) {
		res := decode[timelineResponse](t, get(t, s, "/api/timeline"))
		assert.Equal(t, 4, res.Count)
		require.Len(t, res.Buckets, 3)
		assert.Equal(t, 1960, res.Buckets[0].Decade)
		assert.Equal(t, 1980, res.Buckets[1].Decade)
		assert.Equal(t, 1990, res.Buckets[2].Decade)
		assert.Len(t, res.Types, len(model.Types))
		assert.Equal(t, 1965, res.Range.From)
		assert.Equal(t, 2018, res.Range.To)
	})

	t.Run("empty facet selects nothing", func(t *testing.T) {
		rec := get(t, s, "/api/timeline?type=")
		require.Equal(t, http.StatusOK, rec.Code)
		res := decode[timelineResponse](t, rec)
		assert.Zero(t, res.Count)
		assert.NotNil(t, res.Buckets)
		assert.Empty(t, res.Buckets)
		assert.Empty(t, res.Types)
	})

	t.Run("repeated facet values", func(t *testing.T) {
		res := decode[timelineResponse](t, get(t, s, "/api/timeline?type=kernel&type=Microkernel"))
		assert.Equal(t, 2, res.Count)
		assert.Equal(t, []model.EntryType{model.TypeKernel, model.TypeMicrokernel}, res.Types)
	})

	t.Run("query", func(t *testing.T) {
		res := decode[timelineResponse](t, get(t, s, "/api/timeline?q=zfs"))
		require.Equal(t, 1, res.Count)
		assert.Equal(t, "solaris", res.Buckets[0].Entries[0].ID)
	})

	t.Run("range overlap", func(t *testing.T) {
		res := decode[timelineResponse](t, get(t, s, "/api/timeline?from=1995"))
		assert.Equal(t, 2, res.Count, "multics and solaris are still active in 1995")
	})

	t.Run("range clamps", func(t *testing.T) {
		res := decode[timelineResponse](t, get(t, s, "/api/timeline?from=1900&to=3000"))
		assert.Equal(t, 1965, res.Range.From)
		assert.Equal(t, 2018, res.Range.To)
	})

	t.Run("bad parameters", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/timeline?from=abc").Code)
		assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/timeline?to=1e3").Code)
		assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/timeline?family=Plan9").Code)
	})
}

func TestToggle(t *testing.T) {
	s := testServer()

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"first click isolates", "/api/toggle?facet=type&clicked=Kernel", []string{"Kernel"}},
		{"clicking the isolated chip resets", "/api/toggle?facet=type&clicked=Kernel&selected=Kernel",
			[]string{"Kernel", "Operating System", "RTOS", "Microkernel", "Mobile OS", "Distro"}},
		{"otherwise toggles off", "/api/toggle?facet=type&clicked=RTOS&selected=Kernel&selected=RTOS", []string{"Kernel"}},
		{"otherwise toggles on", "/api/toggle?facet=family&clicked=bsd&selected=Linux", []string{"BSD", "Linux"}},
		{"from nothing", "/api/toggle?facet=family&clicked=Unix&selected=", []string{"Unix"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			res := decode[toggleResponse](t, rec)
			assert.Equal(t, tt.want, res.Selected)
		})
	}

	t.Run("errors", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/toggle?facet=platform&clicked=Server").Code)
		assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/toggle?facet=type&clicked=Toaster").Code)
		assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/toggle?facet=type").Code)
	})
}

func TestEntry(t *testing.T) {
	s := testServer()

	rec := get(t, s, "/api/entry?id=linux")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[entryResponse](t, rec)
	assert.Equal(t, "Linux Kernel", res.Name)
	assert.Equal(t, []relatedRef{{ID: "minix", Name: "MINIX"}}, res.RelatedEntries, "dangling ids are skipped")

	res = decode[entryResponse](t, get(t, s, "/api/entry?id=multics"))
	assert.NotNil(t, res.RelatedEntries)
	assert.Empty(t, res.RelatedEntries)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/entry?id=plan9").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/entry").Code)
}

func TestExport(t *testing.T) {
	s := testServer()

	rec := get(t, s, "/api/export?q=zfs&from=1990")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="os-kernel-timeline-1990-2018.json"`, rec.Header().Get("Content-Disposition"))

	var entries []model.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "solaris", entries[0].ID)

	rec = get(t, s, "/api/export?family=")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/export?from=x").Code)
}

func TestStaticAndHelp(t *testing.T) {
	s := testServer()

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Interactive Timeline")

	rec = get(t, s, "/app.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/toggle")

	rec = get(t, s, "/api/help")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "v"+model.Version)
	assert.NotContains(t, rec.Body.String(), "{{VERSION}}")

	assert.Equal(t, http.StatusMethodNotAllowed,
		func() int {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/meta", nil))
			return rec.Code
		}())
}
