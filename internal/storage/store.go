// Package storage records lecture runs: what was shown, when, and with
// which settings.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
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
	ID          string             `json:"id"`
	Scene       string             `json:"scene"`
	Preset      string             `json:"preset,omitempty"`
	Theme       string             `json:"theme"`
	Advance     string             `json:"advance"`
	Timestamp   time.Time          `json:"timestamp"`
	Transitions int                `json:"transitions"`
	Holds       int                `json:"holds"`
	Duration    float64            `json:"duration"`
	Error       string             `json:"error,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// MetricNames returns the keys of Metrics in sorted order.
func (m RunMetadata) MetricNames() []string {
	names := make([]string, 0, len(m.Metrics))
	for k := range m.Metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

var csvHeader = []string{"seq", "segment", "kind", "time", "run_time", "drawables", "effects"}

// Save writes meta and the recorded frames under a new run directory and
// returns the run id. ID, Timestamp and the counters of meta are filled in
// from rec.
func (s *Store) Save(meta RunMetadata, rec *Recorder) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Scene, now.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for i := 2; exists(runDir); i++ {
		runID = fmt.Sprintf("%s_%d-%d", meta.Scene, now.Unix(), i)
		runDir = filepath.Join(s.baseDir, runID)
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	frames := rec.Frames()
	meta.ID = runID
	meta.Timestamp = now
	meta.Transitions = len(frames)
	meta.Holds = rec.Holds()
	meta.Duration = rec.Duration()

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

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Seq),
			f.Segment,
			f.Kind,
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.FormatFloat(f.RunTime, 'f', 6, 64),
			strconv.Itoa(f.Drawables),
			f.Effects,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []FrameRecord{}, nil
	}

	frames := make([]FrameRecord, 0, len(records)-1)
	for _, rec := range records[1:] {
		seq, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		t, _ := strconv.ParseFloat(rec[3], 64)
		rt, _ := strconv.ParseFloat(rec[4], 64)
		n, _ := strconv.Atoi(rec[5])
		frames = append(frames, FrameRecord{
			Seq:       seq,
			Segment:   rec[1],
			Kind:      rec[2],
			Time:      t,
			RunTime:   rt,
			Drawables: n,
			Effects:   rec[6],
		})
	}
	return frames, nil
}

type ExportData struct {
	RunMetadata
	Frames []FrameRecord `json:"frames"`
}

// ExportJSON writes a run with its frames as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Frames: frames})
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
