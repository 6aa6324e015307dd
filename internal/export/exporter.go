package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/physdeck/internal/stage"
	"github.com/san-kum/physdeck/internal/viz"
)

// SVGExporter is a stage.Observer that writes the settled frame at every
// hold. A segment that ends without a hold gets its last frame written
// before the clear.
type SVGExporter struct {
	Dir   string
	Theme viz.Theme
	Font  string
	Scale float64

	files []string
	held  bool
}

func NewSVGExporter(dir string, theme viz.Theme, font string) (*SVGExporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &SVGExporter{Dir: dir, Theme: theme, Font: font, Scale: DefaultScale}, nil
}

func (e *SVGExporter) Observe(tr stage.Transition) error {
	switch tr.Kind {
	case stage.TransitionHold:
		e.held = true
		return e.write(tr.Segment, tr.After)
	case stage.TransitionClear:
		defer func() { e.held = false }()
		if !e.held && len(tr.Before) > 0 {
			return e.write(tr.Segment, tr.Before)
		}
	case stage.TransitionAnimate:
		e.held = false
	}
	return nil
}

func (e *SVGExporter) write(segment string, frame []stage.Drawable) error {
	name := fmt.Sprintf("%03d_%s.svg", len(e.files)+1, segment)
	path := filepath.Join(e.Dir, name)
	if err := os.WriteFile(path, []byte(FrameToSVG(frame, e.Theme, e.Font, e.Scale)), 0644); err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	e.files = append(e.files, path)
	return nil
}

// Files lists the written files in order.
func (e *SVGExporter) Files() []string { return e.files }
