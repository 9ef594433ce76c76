package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ostimeline/internal/model"
)

const validYAML = `
entries:
  - id: unix
    name: Unix (Original)
    type: Operating System
    family: Unix
    platform: [Mini, Workstation]
    yearStart: 1969
    description: Bell Labs.
  - id: solaris
    name: Solaris
    type: Operating System
    family: System V
    platform: [Server]
    yearStart: 1992
    yearEnd: 2018
    description: Sun's SVR4 based Unix.
    highlights: [ZFS, DTrace]
    versions:
      - version: Solaris 10
        year: 2005
        notes: Zones
    related: [unix, missing]
`

func TestDefault(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	t.Run("Loads every curated entry", func(t *testing.T) {
		assert.Equal(t, 92, ds.Len())
	})

	t.Run("Bounds span the dataset", func(t *testing.T) {
		minYear, maxYear := ds.Bounds()
		assert.Equal(t, 1965, minYear)
		assert.Equal(t, 2024, maxYear)
	})

	t.Run("Multics keeps its end year", func(t *testing.T) {
		e, ok := ds.Lookup("multics")
		require.True(t, ok)
		require.NotNil(t, e.YearEnd)
		assert.Equal(t, 2000, *e.YearEnd)
		assert.Equal(t, model.FamilyEarly, e.Family)
	})
}

func TestDecode(t *testing.T) {
	t.Run("Valid document", func(t *testing.T) {
		ds, err := Decode(strings.NewReader(validYAML), "test")
		require.NoError(t, err)
		require.Equal(t, 2, ds.Len())

		solaris, ok := ds.Lookup("solaris")
		require.True(t, ok)
		assert.Equal(t, []model.Platform{model.PlatformServer}, solaris.Platform)
		assert.Equal(t, "Zones", solaris.Versions[0].Notes)
		assert.Equal(t, 2018, solaris.LastYear())
	})

	t.Run("Unknown keys are rejected", func(t *testing.T) {
		doc := strings.Replace(validYAML, "    yearStart: 1969", "    yearStart: 1969\n    vendor: AT&T", 1)
		_, err := Decode(strings.NewReader(doc), "test")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vendor")
	})

	t.Run("Bad enums and duplicates are all reported", func(t *testing.T) {
		doc := `
entries:
  - id: a
    name: A
    type: Hypervisor
    family: Unix
    platform: [Desktop]
    yearStart: 1990
    description: x
  - id: a
    name: A again
    type: Kernel
    family: Plan 9
    platform: []
    yearStart: 1991
    description: y
`
		_, err := Decode(strings.NewReader(doc), "test")
		require.Error(t, err)
		msg := err.Error()
		assert.Contains(t, msg, `unknown type "Hypervisor"`)
		assert.Contains(t, msg, `unknown family "Plan 9"`)
		assert.Contains(t, msg, "platform must not be empty")
		assert.Contains(t, msg, "duplicate id")
	})

	t.Run("Duplicate ids are compared after trimming", func(t *testing.T) {
		doc := `
entries:
  - id: "linux "
    name: First
    type: Kernel
    family: Linux
    platform: [Server]
    yearStart: 1991
    description: x
  - id: linux
    name: Second
    type: Kernel
    family: Linux
    platform: [Server]
    yearStart: 1991
    description: y
`
		ds, err := Decode(strings.NewReader(doc), "test")
		require.Error(t, err)
		assert.Nil(t, ds)
		assert.Contains(t, err.Error(), "entry 2 (linux): duplicate id, first used by entry 1")
	})

	t.Run("Empty document", func(t *testing.T) {
		_, err := Decode(strings.NewReader("entries: []\n"), "test")
		assert.Error(t, err)
	})

	t.Run("End before start is accepted", func(t *testing.T) {
		doc := strings.Replace(validYAML, "yearEnd: 2018", "yearEnd: 1980", 1)
		ds, err := Decode(strings.NewReader(doc), "test")
		require.NoError(t, err)
		e, _ := ds.Lookup("solaris")
		assert.Equal(t, 1980, e.LastYear())
	})
}

func TestLoad(t *testing.T) {
	t.Run("Reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "timeline.yaml")
		require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o644))

		ds, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, ds.Len())
	})

	t.Run("Empty path falls back to embedded data", func(t *testing.T) {
		ds, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 92, ds.Len())
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/timeline.yaml")
		assert.Error(t, err)
	})
}

func TestRelated(t *testing.T) {
	ds, err := Decode(strings.NewReader(validYAML), "test")
	require.NoError(t, err)

	solaris, _ := ds.Lookup("solaris")
	related := ds.Related(solaris)
	require.Len(t, related, 1, "dangling ids are skipped")
	assert.Equal(t, "unix", related[0].ID)

	unix, _ := ds.Lookup("unix")
	assert.Empty(t, ds.Related(unix))
}

func TestNewCopiesInput(t *testing.T) {
	in := []model.Entry{{ID: "x", Name: "X", YearStart: 2000}}
	ds := New(in)
	in[0].Name = "changed"

	e, ok := ds.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "X", e.Name)
}
