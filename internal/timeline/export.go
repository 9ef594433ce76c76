package timeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ostimeline/internal/model"
)

// ExportFilename is the suggested download name for a range.
func ExportFilename(from, to int) string {
	return fmt.Sprintf("os-kernel-timeline-%d-%d.json", from, to)
}

// Export serializes the filtered list as an indented JSON array. Output is
// byte-for-byte stable for the same input.
func Export(list []model.Entry, from, to int) ([]byte, string, error) {
	if list == nil {
		list = []model.Entry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return nil, "", fmt.Errorf("encode export: %w", err)
	}
	return buf.Bytes(), ExportFilename(from, to), nil
}

// WriteExport exports list into dir under the suggested filename and
// returns the path written.
func WriteExport(dir string, list []model.Entry, r Range) (string, error) {
	data, name, err := Export(list, r.From, r.To)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
