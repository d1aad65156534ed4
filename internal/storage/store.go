// Package storage keeps rendered runs on disk: one directory per run with
// its metadata, the per-frame animation progress and the encoded frames.
package storage

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/barmotion/internal/render"
)

var ErrRunExists = errors.New("run already exists")

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
	ID          string    `json:"id"`
	Composition string    `json:"composition"`
	Fingerprint string    `json:"fingerprint"`
	Timestamp   time.Time `json:"timestamp"`
	Format      string    `json:"format"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	FPS         int       `json:"fps"`
	From        int       `json:"from"`
	To          int       `json:"to"`
	Motion      string    `json:"motion"`
	SettleFrame int       `json:"settle_frame,omitempty"`
	Rendered    int       `json:"rendered"`
	CacheHits   int       `json:"cache_hits"`
	ElapsedMs   float64   `json:"elapsed_ms"`
	Files       []string  `json:"files"`
}

// ProgressRow is one line of progress.csv.
type ProgressRow struct {
	Frame    int
	Progress float64
	// TopWidth is the pixel width of the longest bar.
	TopWidth float64
}

// Run is an open run directory. It is a render.Sink.
type Run struct {
	dir        string
	meta       RunMetadata
	keepFrames bool
	file       *os.File
	csv        *csv.Writer
	closed     bool
}

// Begin creates the run directory. With keepFrames false only progress is
// recorded and encoded frames are dropped. An existing run is never
// overwritten.
func (s *Store) Begin(meta RunMetadata, keepFrames bool) (*Run, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Composition, meta.Timestamp.UnixNano())
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.Mkdir(dir, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunExists, meta.ID)
		}
		return nil, err
	}

	f, err := os.Create(filepath.Join(dir, "progress.csv"))
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"frame", "progress", "top_width"}); err != nil {
		f.Close()
		os.RemoveAll(dir)
		return nil, err
	}
	return &Run{dir: dir, meta: meta, keepFrames: keepFrames, file: f, csv: w}, nil
}

func (r *Run) ID() string { return r.meta.ID }

func (r *Run) Dir() string { return r.dir }

func (r *Run) WriteFrame(ctx context.Context, f render.Frame) error {
	top := 0.0
	for _, b := range f.Bars {
		top = max(top, b.Width)
	}
	row := []string{
		strconv.Itoa(f.Number),
		strconv.FormatFloat(f.Progress, 'f', 6, 64),
		strconv.FormatFloat(top, 'f', 3, 64),
	}
	if err := r.csv.Write(row); err != nil {
		return err
	}

	if !r.keepFrames || len(f.Data) == 0 {
		return nil
	}
	return r.WriteFile(fmt.Sprintf("frame-%04d.%s", f.Number, f.Format), f.Data)
}

// WriteFile stores an extra artifact such as an assembled animation.
func (r *Run) WriteFile(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(r.dir, name), data, 0644); err != nil {
		return err
	}
	r.meta.Files = append(r.meta.Files, name)
	return nil
}

// Abort closes a run that will not be finished and removes its directory.
// It does nothing once the run is finished.
func (r *Run) Abort() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.file.Close()
	return os.RemoveAll(r.dir)
}

// Finish records the run statistics and writes metadata.json.
func (r *Run) Finish(st render.Stats) error {
	if r.closed {
		return fmt.Errorf("run %s is closed", r.meta.ID)
	}
	r.closed = true
	r.csv.Flush()
	if err := r.csv.Error(); err != nil {
		r.file.Close()
		return err
	}
	if err := r.file.Close(); err != nil {
		return err
	}

	r.meta.Rendered = st.Rendered
	r.meta.CacheHits = st.CacheHits
	r.meta.ElapsedMs = float64(st.Elapsed.Microseconds()) / 1000

	metaFile, err := os.Create(filepath.Join(r.dir, "metadata.json"))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	return enc.Encode(r.meta)
}

// List returns finished runs, newest first.
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
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
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

func (s *Store) LoadProgress(runID string) ([]ProgressRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "progress.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []ProgressRow{}, nil
	}

	rows := make([]ProgressRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 3 {
			continue
		}
		n, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		p, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		w, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			continue
		}
		rows = append(rows, ProgressRow{Frame: n, Progress: p, TopWidth: w})
	}
	return rows, nil
}

// ReadFile returns a stored artifact of a run.
func (s *Store) ReadFile(runID, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.baseDir, runID, filepath.Base(name)))
}

type exportData struct {
	Run      RunMetadata   `json:"run"`
	Progress []ProgressRow `json:"progress"`
}

// ExportJSON writes a run's metadata and progress as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	rows, err := s.LoadProgress(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData{Run: *meta, Progress: rows})
}
