package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"ostimeline/internal/applog"
	"ostimeline/internal/model"
)

//go:embed data/timeline.yaml
var embeddedYAML []byte

// DefaultSource names the embedded dataset in logs and errors.
const DefaultSource = "embedded:timeline.yaml"

// Default decodes the dataset compiled into the binary.
func Default() (*Dataset, error) {
	return Decode(bytes.NewReader(embeddedYAML), DefaultSource)
}

// Load reads a dataset file. An empty path selects the embedded dataset.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand dataset path: %w", err)
	}
	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	defer f.Close()
	return Decode(f, expanded)
}

// Decode parses and validates a YAML dataset document. Unknown keys are
// rejected. All validation problems are reported together.
func Decode(r io.Reader, source string) (*Dataset, error) {
	var doc rawDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", source, err)
	}

	entries, err := doc.toEntries()
	if err != nil {
		return nil, fmt.Errorf("invalid dataset %s: %w", source, err)
	}

	ds := New(entries)
	warnDangling(ds)
	applog.Log.WithField("source", source).Debugf("dataset loaded (%d entries)", ds.Len())
	return ds, nil
}

func (doc rawDocument) toEntries() ([]model.Entry, error) {
	if len(doc.Entries) == 0 {
		return nil, errors.New("no entries")
	}

	var errs []error
	seen := make(map[string]int, len(doc.Entries))
	entries := make([]model.Entry, 0, len(doc.Entries))

	for i, raw := range doc.Entries {
		// Ids are stored trimmed, so uniqueness is checked on the trimmed form
		id := strings.TrimSpace(raw.ID)
		label := fmt.Sprintf("entry %d", i+1)
		if id != "" {
			label = fmt.Sprintf("entry %d (%s)", i+1, id)
		}

		problems := raw.validate()
		if first, dup := seen[id]; dup && id != "" {
			problems = append(problems, fmt.Sprintf("duplicate id, first used by entry %d", first+1))
		} else {
			seen[id] = i
		}
		for _, p := range problems {
			errs = append(errs, fmt.Errorf("%s: %s", label, p))
		}
		if len(problems) > 0 {
			continue
		}

		e := raw.toEntry()
		if e.YearEnd != nil && *e.YearEnd < e.YearStart {
			applog.Log.Warnf("%s: yearEnd %d is before yearStart %d", label, *e.YearEnd, e.YearStart)
		}
		entries = append(entries, e)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return entries, nil
}

func (r rawEntry) validate() []string {
	var problems []string
	if strings.TrimSpace(r.ID) == "" {
		problems = append(problems, "id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		problems = append(problems, "description is required")
	}
	if !model.IsType(r.Type) {
		problems = append(problems, fmt.Sprintf("unknown type %q", r.Type))
	}
	if !model.IsFamily(r.Family) {
		problems = append(problems, fmt.Sprintf("unknown family %q", r.Family))
	}
	if len(r.Platform) == 0 {
		problems = append(problems, "platform must not be empty")
	}
	for _, p := range r.Platform {
		if !model.IsPlatform(p) {
			problems = append(problems, fmt.Sprintf("unknown platform %q", p))
		}
	}
	if r.YearStart == 0 {
		problems = append(problems, "yearStart is required")
	}
	for j, v := range r.Versions {
		if strings.TrimSpace(v.Version) == "" {
			problems = append(problems, fmt.Sprintf("versions[%d]: version is required", j))
		}
	}
	return problems
}

func (r rawEntry) toEntry() model.Entry {
	e := model.Entry{
		ID:          strings.TrimSpace(r.ID),
		Name:        strings.TrimSpace(r.Name),
		Type:        model.EntryType(r.Type),
		Family:      model.Family(r.Family),
		YearStart:   r.YearStart,
		YearEnd:     r.YearEnd,
		Description: strings.TrimSpace(r.Description),
		Highlights:  r.Highlights,
		Versions:    r.Versions,
		Related:     r.Related,
	}
	e.Platform = make([]model.Platform, len(r.Platform))
	for i, p := range r.Platform {
		e.Platform[i] = model.Platform(p)
	}
	return e
}

// Dangling references are legal; they are only worth a debug line.
func warnDangling(ds *Dataset) {
	for _, e := range ds.Entries() {
		for _, id := range e.Related {
			if _, ok := ds.Lookup(id); !ok {
				applog.Log.Debugf("entry %s: related id %q not found", e.ID, id)
			}
		}
	}
}

type rawDocument struct {
	Entries []rawEntry `yaml:"entries"`
}

type rawEntry struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Type        string          `yaml:"type"`
	Family      string          `yaml:"family"`
	Platform    []string        `yaml:"platform"`
	YearStart   int             `yaml:"yearStart"`
	YearEnd     *int            `yaml:"yearEnd"`
	Description string          `yaml:"description"`
	Highlights  []string        `yaml:"highlights"`
	Versions    []model.Release `yaml:"versions"`
	Related     []string        `yaml:"related"`
}
