// Package storage persists finished runs on disk. Each run gets its own
// directory under the base, holding metadata.json and result.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/quantsim/internal/config"
	"github.com/san-kum/quantsim/internal/quantity"
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

type RunMetadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method"`
	StepSize  float64   `json:"step_size"`
	RelTol    float64   `json:"rel_tolerance"`
	AbsTol    float64   `json:"abs_tolerance"`
	MaxSteps  int       `json:"max_steps"`
	Rows      int       `json:"rows"`
	Columns   []string  `json:"columns"`
	Report    string    `json:"report"`
}

// Save writes one finished run. The run ID is the definition name plus
// a nanosecond timestamp, so rapid successive saves never collide.
func (s *Store) Save(cfg *config.Config, report string, result quantity.Frame) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Name, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	sv := cfg.Solver.WithDefaults()
	meta := RunMetadata{
		ID:        runID,
		Name:      cfg.Name,
		Timestamp: time.Now(),
		Method:    sv.Method,
		StepSize:  sv.StepSize,
		RelTol:    sv.RelTol,
		AbsTol:    sv.AbsTol,
		MaxSteps:  sv.MaxSteps,
		Rows:      result.Duration(),
		Columns:   result.Columns(),
		Report:    report,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "result.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	cols := result.Columns()
	if err := w.Write(cols); err != nil {
		return "", err
	}
	row := make([]string, len(cols))
	for i := 0; i < result.Duration(); i++ {
		for j, c := range cols {
			// Shortest round-tripping representation, so a loaded
			// result is bit-identical to the saved one.
			row[j] = strconv.FormatFloat(result[c][i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns the metadata of every stored run. Entries that are not
// run directories, or whose metadata is unreadable, are skipped.
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadResult reads a stored result back into a frame. Unlike List it is
// strict: a malformed file is an error, not something to skip.
func (s *Store) LoadResult(runID string) (quantity.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "result.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("storage: run %s has an empty result file", runID)
	}

	header := records[0]
	frame := make(quantity.Frame, len(header))
	for _, col := range header {
		frame[col] = make([]float64, 0, len(records)-1)
	}
	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("storage: run %s row %d has %d fields, want %d",
				runID, i+1, len(record), len(header))
		}
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: run %s row %d column %s: %w",
					runID, i+1, header[j], err)
			}
			frame[header[j]] = append(frame[header[j]], v)
		}
	}

	return frame, nil
}
