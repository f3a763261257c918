package geoplot

import (
	"encoding/json"
	"fmt"

	"github.com/tanema/gween/ease"
)

// centerDuration is how long a center step scrolls, in seconds.
const centerDuration = 0.5

// scriptStep is a single action of a viewer script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Lat    float64 `json:"lat,omitempty"`
	Lon    float64 `json:"lon,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Steps  int     `json:"steps,omitempty"`
}

// scriptFile is the top-level JSON structure of a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = []string{"screenshot", "click", "drag", "wait", "zoom", "center", "basemap"}

// Script drives the viewer with synthetic input for unattended runs, e.g.
// capturing screenshots of several views of the same session. Once every
// step has run the viewer terminates.
//
// A script is JSON:
//
//	{"steps": [
//	  {"action": "zoom", "x": 400, "y": 300, "steps": 2},
//	  {"action": "wait", "frames": 30},
//	  {"action": "screenshot", "label": "zoomed"},
//	  {"action": "drag", "fromX": 400, "fromY": 300, "toX": 200, "toY": 300, "frames": 10},
//	  {"action": "center", "lat": 55.68, "lon": 12.57},
//	  {"action": "basemap"},
//	  {"action": "screenshot", "label": "panned"}
//	]}
//
// Coordinates are screen pixels, except center, which scrolls the map to a
// lat/lon. A Script is immutable and may be reused
// across sessions.
type Script struct {
	steps []scriptStep
}

// LoadScript parses and validates a JSON script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &Script{steps: f.Steps}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "screenshot":
		if st.Label == "" {
			return invalidArg("LoadScript", "label", st.Label, "screenshot needs a label")
		}
	case "wait", "drag":
		if st.Frames < 0 {
			return invalidArg("LoadScript", "frames", st.Frames, "must not be negative")
		}
	case "zoom":
		if st.Steps == 0 {
			return invalidArg("LoadScript", "steps", st.Steps, "zoom needs a non-zero step count")
		}
	case "center":
		if st.Lat < -90 || st.Lat > 90 || st.Lon < -180 || st.Lon > 180 {
			return invalidArg("LoadScript", "lat/lon", fmt.Sprintf("%g,%g", st.Lat, st.Lon), "out of range")
		}
	case "click", "basemap":
	default:
		return invalidArg("LoadScript", "action", st.Action, fmt.Sprintf("must be one of %v", scriptActions))
	}
	return nil
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// scriptRunner is the playback state of a Script within one viewer.
type scriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

func newScriptRunner(s *Script) *scriptRunner {
	return &scriptRunner{steps: s.steps}
}

// step advances the runner by one tick. Called from Viewer.Update before
// the pointer is read.
func (r *scriptRunner) step(v *Viewer) {
	if r.done {
		return
	}
	// Wait for pending injections and scrolling to finish before advancing.
	if r.busy(v) {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		v.shots = append(v.shots, st.Label)
	case "click":
		v.inject.click(st.X, st.Y)
	case "drag":
		v.inject.drag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "zoom":
		v.inject.wheel(st.X, st.Y, st.Steps)
	case "center":
		x, y := mercator(st.Lat, st.Lon)
		v.cam.ScrollTo(x, y, centerDuration, ease.InOutQuad)
	case "basemap":
		v.applyActions(inputActions{toggleBasemap: true})
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.busy(v) {
		r.done = true
	}
}

func (r *scriptRunner) busy(v *Viewer) bool {
	return !v.inject.empty() || v.cam.scrollTween != nil
}
