package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/physical/internal/expr"
	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is written to metadata.json. Quantities are stored in the
// expression language, e.g. "0.01 second", so they keep their units.
type RunMetadata struct {
	ID         string            `json:"id"`
	Model      string            `json:"model"`
	Timestamp  time.Time         `json:"timestamp"`
	Seed       int64             `json:"seed"`
	Dt         string            `json:"dt"`
	Duration   string            `json:"duration"`
	Integrator string            `json:"integrator"`
	Bodies     []string          `json:"bodies"`
	Steps      int               `json:"steps"`
	Halted     bool              `json:"halted,omitempty"`
	Metrics    map[string]string `json:"metrics"`
}

// Quantity parses one of the stored quantity strings.
func (m *RunMetadata) Quantity(src string) (units.Scalar, error) {
	q, err := expr.Eval(src)
	if err != nil {
		return units.Scalar{}, err
	}
	switch q := q.(type) {
	case units.Scalar:
		return q, nil
	case units.Raw:
		return units.NewScalar(float64(q), units.Dimensionless), nil
	}
	return units.Scalar{}, fmt.Errorf("%q: %w", src, units.ErrTypeMismatch)
}

// Metric returns a stored metric with its units.
func (m *RunMetadata) Metric(name string) (units.Scalar, error) {
	src, ok := m.Metrics[name]
	if !ok {
		return units.Scalar{}, fmt.Errorf("run %s has no metric %q", m.ID, name)
	}
	return m.Quantity(src)
}

// RunInfo describes how a result was produced.
type RunInfo struct {
	Model      string
	Integrator string
	Dt         units.Scalar
	Duration   units.Scalar
	Seed       int64
}

var ErrEmptyResult = errors.New("storage: result has no states")

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	if len(result.States) == 0 {
		return "", ErrEmptyResult
	}

	runID, runDir, err := s.newRunDir(info.Model)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      info.Model,
		Timestamp:  time.Now(),
		Seed:       info.Seed,
		Dt:         expr.Format(info.Dt),
		Duration:   expr.Format(info.Duration),
		Integrator: info.Integrator,
		Steps:      result.StepsTaken,
		Halted:     result.Halted,
		Metrics:    make(map[string]string, len(result.Metrics)),
	}
	for _, b := range result.States[0] {
		meta.Bodies = append(meta.Bodies, b.Name)
	}
	for name, v := range result.Metrics {
		meta.Metrics[name] = expr.Format(v)
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, "states.csv"), result); err != nil {
		return "", err
	}
	return runID, nil
}

// newRunDir creates <base>/<model>_<unix>, adding a counter when two runs
// start in the same second.
func (s *Store) newRunDir(model string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runID := base
	for n := 2; ; n++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStates(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	first := result.States[0]
	header := []string{column("time", result.Times[0].Dimension())}
	for _, b := range first {
		for _, axis := range []string{"x", "y", "z"} {
			header = append(header, column(b.Name+"."+axis, b.Pos.Dimension()))
		}
		for _, axis := range []string{"vx", "vy", "vz"} {
			header = append(header, column(b.Name+"."+axis, b.Vel.Dimension()))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, state := range result.States {
		if len(state) != len(first) {
			return fmt.Errorf("state %d has %d bodies, want %d", i, len(state), len(first))
		}
		row := make([]string, 0, len(header))
		row = append(row, formatValue(result.Times[i].Value()))
		for j, b := range state {
			if !b.Pos.Dimension().Equal(first[j].Pos.Dimension()) || !b.Vel.Dimension().Equal(first[j].Vel.Dimension()) {
				return fmt.Errorf("state %d: body %s changed units", i, b.Name)
			}
			p, v := b.Pos.Vec3(), b.Vel.Vec3()
			for k := 0; k < 3; k++ {
				row = append(row, formatValue(p[k]))
			}
			for k := 0; k < 3; k++ {
				row = append(row, formatValue(v[k]))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// column renders a CSV header such as "victim.x [meter]".
func column(name string, dim units.Dimension) string {
	if u := dim.String(); u != "" {
		return name + " [" + u + "]"
	}
	return name
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}
