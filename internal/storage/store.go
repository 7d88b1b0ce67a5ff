package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/logofall/internal/field"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

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
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Particles int                `json:"particles"`
	Size      float64            `json:"size"`
	SpeedMin  float64            `json:"speed_min"`
	SpeedMax  float64            `json:"speed_max"`
	Viewport  field.Viewport     `json:"viewport"`
	Scenario  string             `json:"scenario,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Frame is one recorded snapshot.
type Frame struct {
	Index     int              `json:"frame"`
	Particles []field.Particle `json:"particles"`
}

// Recorder is a field observer that keeps every frame in memory.
type Recorder struct {
	frames []Frame
	every  int
}

// NewRecorder keeps one frame out of every `every`; values below 1 keep all.
func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{every: every}
}

func (r *Recorder) OnFrame(frame int, ps []field.Particle) {
	if frame%r.every != 0 {
		return
	}
	cp := make([]field.Particle, len(ps))
	copy(cp, ps)
	r.frames = append(r.frames, Frame{Index: frame, Particles: cp})
}

func (r *Recorder) Frames() []Frame { return r.frames }

// Save writes metadata.json and frames.csv into a new run directory and
// returns the run id.
func (s *Store) Save(meta RunMetadata, frames []Frame) (string, error) {
	name := meta.Preset
	if name == "" {
		name = "field"
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.ID = fmt.Sprintf("%s_%d", name, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeFrames(csvFile, frames); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeFrames(out io.Writer, frames []Frame) error {
	w := csv.NewWriter(out)

	header := []string{"frame", "index", "label", "image_ref", "x", "y", "fall_speed", "highlighted"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, fr := range frames {
		for i, p := range fr.Particles {
			row := []string{
				strconv.Itoa(fr.Index),
				strconv.Itoa(i),
				p.Label,
				p.ImageRef,
				strconv.FormatFloat(p.Position.X, 'f', 6, 64),
				strconv.FormatFloat(p.Position.Y, 'f', 6, 64),
				strconv.FormatFloat(p.FallSpeed, 'f', 6, 64),
				strconv.FormatBool(p.Highlighted),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	frames := make([]Frame, 0)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 8 {
			continue
		}

		idx, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		x, errX := strconv.ParseFloat(record[4], 64)
		y, errY := strconv.ParseFloat(record[5], 64)
		speed, errS := strconv.ParseFloat(record[6], 64)
		hl, errH := strconv.ParseBool(record[7])
		if errX != nil || errY != nil || errS != nil || errH != nil {
			continue
		}

		if len(frames) == 0 || frames[len(frames)-1].Index != idx {
			frames = append(frames, Frame{Index: idx})
		}
		cur := &frames[len(frames)-1]
		cur.Particles = append(cur.Particles, field.Particle{
			Logo:        field.Logo{Label: record[2], ImageRef: record[3]},
			Position:    field.Vec2{X: x, Y: y},
			FallSpeed:   speed,
			Highlighted: hl,
		})
	}

	return frames, nil
}
