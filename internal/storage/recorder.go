package storage

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/san-kum/physdeck/internal/stage"
)

// FrameRecord is one published transition, flattened for CSV.
type FrameRecord struct {
	Seq       int     `json:"seq"`
	Segment   string  `json:"segment"`
	Kind      string  `json:"kind"`
	Time      float64 `json:"time"` // presentation time at which the transition starts
	RunTime   float64 `json:"run_time"`
	Drawables int     `json:"drawables"`
	Effects   string  `json:"effects"`
}

// Recorder is a stage.Observer that keeps a log of every transition.
type Recorder struct {
	mu     sync.Mutex
	frames []FrameRecord
	clock  float64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Observe(tr stage.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frames = append(r.frames, FrameRecord{
		Seq:       tr.Seq,
		Segment:   tr.Segment,
		Kind:      tr.Kind.String(),
		Time:      r.clock,
		RunTime:   tr.RunTime,
		Drawables: len(tr.After),
		Effects:   summarize(tr.Effects),
	})
	r.clock += tr.RunTime
	return nil
}

// Frames returns a copy of everything recorded so far.
func (r *Recorder) Frames() []FrameRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]FrameRecord(nil), r.frames...)
}

// Duration is the total animated and waited time, excluding holds.
func (r *Recorder) Duration() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clock
}

// Holds counts hold transitions.
func (r *Recorder) Holds() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.frames {
		if f.Kind == stage.TransitionHold.String() {
			n++
		}
	}
	return n
}

// summarize renders effects as "fade-in:2 write:1", sorted by kind.
func summarize(effects []stage.Effect) string {
	counts := make(map[string]int)
	for _, e := range effects {
		counts[e.Kind.String()]++
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k + ":" + strconv.Itoa(counts[k])
	}
	return strings.Join(parts, " ")
}
