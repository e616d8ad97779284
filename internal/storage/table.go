package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/physical/internal/expr"
	"github.com/san-kum/physical/internal/units"
)

// Column is one CSV column together with the units read from its header.
type Column struct {
	Name string          `json:"name"`
	Dim  units.Dimension `json:"-"`
	Unit string          `json:"unit"`
}

// Table is the contents of states.csv.
type Table struct {
	Columns []Column
	Rows    [][]float64
	index   map[string]int
}

// ParseColumn splits a header such as "victim.x [meter]" into its name
// and dimension.
func ParseColumn(header string) (Column, error) {
	name, unit := strings.TrimSpace(header), ""
	if i := strings.LastIndex(header, " ["); i >= 0 && strings.HasSuffix(header, "]") {
		name = strings.TrimSpace(header[:i])
		unit = header[i+2 : len(header)-1]
	}
	dim, err := expr.ParseDimension(unit)
	if err != nil {
		return Column{}, fmt.Errorf("column %q: %w", header, err)
	}
	return Column{Name: name, Dim: dim, Unit: unit}, nil
}

func (s *Store) LoadStates(runID string) (*Table, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header", csvPath)
	}

	t := &Table{index: make(map[string]int)}
	for i, h := range records[0] {
		col, err := ParseColumn(h)
		if err != nil {
			return nil, err
		}
		t.Columns = append(t.Columns, col)
		t.index[col.Name] = i
	}

	t.Rows = make([][]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		row := make([]float64, len(records[i]))
		for j, field := range records[i] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", csvPath, i+1, err)
			}
			row[j] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func (t *Table) Len() int { return len(t.Rows) }

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Series returns a column as Scalars carrying the column's units.
func (t *Table) Series(name string) ([]units.Scalar, error) {
	i, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	out := make([]units.Scalar, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = units.NewScalar(row[i], t.Columns[i].Dim)
	}
	return out, nil
}

func (t *Table) Times() ([]units.Scalar, error) {
	return t.Series("time")
}

// Positions reassembles the path of one body from its x, y and z columns.
func (t *Table) Positions(body string) ([]units.Vector, error) {
	return t.vectors(body, "x", "y", "z")
}

func (t *Table) Velocities(body string) ([]units.Vector, error) {
	return t.vectors(body, "vx", "vy", "vz")
}

func (t *Table) vectors(body string, axes ...string) ([]units.Vector, error) {
	idx := make([]int, len(axes))
	for k, a := range axes {
		i, ok := t.Column(body + "." + a)
		if !ok {
			return nil, fmt.Errorf("no column %q", body+"."+a)
		}
		idx[k] = i
	}
	dim := t.Columns[idx[0]].Dim
	for _, i := range idx[1:] {
		if !t.Columns[i].Dim.Equal(dim) {
			return nil, fmt.Errorf("body %s: components have different units", body)
		}
	}

	out := make([]units.Vector, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = units.NewVectorDim(row[idx[0]], row[idx[1]], row[idx[2]], dim)
	}
	return out, nil
}
