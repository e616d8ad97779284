package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Meta    *RunMetadata `json:"meta"`
	Columns []Column     `json:"columns"`
	Rows    [][]float64  `json:"rows"`
}

// ExportJSON writes the metadata and states of a run as one JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, table *Table) error {
	data := ExportData{
		Meta:    meta,
		Columns: table.Columns,
		Rows:    table.Rows,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportRun loads a stored run and writes it with ExportJSON.
func (s *Store) ExportRun(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	table, err := s.LoadStates(runID)
	if err != nil {
		return err
	}
	return ExportJSON(w, meta, table)
}
