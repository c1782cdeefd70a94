// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"
)

// Export formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ExportEntry is a record with its payload decoded, for YAML and JSON export.
type ExportEntry struct {
	ID        string    `json:"id" yaml:"id"`
	Kind      Kind      `json:"kind" yaml:"kind"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Label     string    `json:"label" yaml:"label"`
	Count     int       `json:"count" yaml:"count"`
	Result    any       `json:"result" yaml:"result"`
}

// Export writes the records of kind (all kinds when empty) to w in format.
func (s *Store) Export(ctx context.Context, w io.Writer, kind Kind, format string) error {
	records, err := s.List(ctx, kind)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	switch format {
	case FormatYAML, "":
		return ExportYAML(w, records)
	case FormatJSON:
		return ExportJSON(w, records)
	case FormatCSV:
		return ExportCSV(w, records)
	default:
		return fmt.Errorf("unknown export format %q (want yaml, json or csv)", format)
	}
}

// ExportYAML writes records with decoded payloads as a YAML list.
func ExportYAML(w io.Writer, records []Record) error {
	entries, err := exportEntries(records)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes records with decoded payloads as an indented JSON array.
func ExportJSON(w io.Writer, records []Record) error {
	entries, err := exportEntries(records)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// ExportCSV writes one email,source_url row per address found in single
// and batch records. Repeated pairs are written once.
func ExportCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"email", "source_url"}); err != nil {
		return err
	}
	seen := make(map[EmailRow]struct{})
	for _, r := range records {
		if r.Kind == KindSearch {
			continue
		}
		rows, err := r.EmailRows()
		if err != nil {
			return err
		}
		for _, row := range rows {
			if _, ok := seen[row]; ok {
				continue
			}
			seen[row] = struct{}{}
			if err := cw.Write([]string{row.Email, row.SourceURL}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportEntries(records []Record) ([]ExportEntry, error) {
	entries := make([]ExportEntry, len(records))
	for i, r := range records {
		v, err := r.Decode()
		if err != nil {
			return nil, err
		}
		entries[i] = ExportEntry{
			ID:        r.ID,
			Kind:      r.Kind,
			CreatedAt: r.CreatedAt,
			Label:     r.Label,
			Count:     r.Count,
			Result:    v,
		}
	}
	return entries, nil
}
