package bough

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tanema/gween/ease"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Ease   string  `json:"ease,omitempty"`
	Key    string  `json:"key,omitempty"`
	Text   string  `json:"text,omitempty"`
	Device int     `json:"device,omitempty"`
	Point  int     `json:"point,omitempty"`
	Phase  string  `json:"phase,omitempty"`
}

// scriptFile is the top-level JSON structure of an input script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// easings are the easing names accepted by the "ease" field of drag steps.
var easings = map[string]ease.TweenFunc{
	"":           ease.Linear,
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
}

var touchPhases = map[string]Phase{
	"press":   PhasePress,
	"move":    PhaseMove,
	"release": PhaseRelease,
	"cancel":  PhaseCancel,
}

// Script sequences injected input across frames. Each call to Advance runs
// at most one step and consumes at most one injected event.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	// OnLabel is called for "mark" steps, e.g. to dump state at that point.
	OnLabel func(label string)
}

// LoadScript parses a JSON input script.
//
//	{"steps": [
//	  {"action": "click", "x": 100, "y": 200},
//	  {"action": "drag", "fromX": 0, "fromY": 0, "toX": 50, "toY": 0, "frames": 10, "ease": "outCubic"},
//	  {"action": "wait", "frames": 30},
//	  {"action": "key", "key": "Tab"}
//	]}
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
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

// LoadScriptFile reads and parses a JSON input script from path.
func LoadScriptFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	return LoadScript(data)
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "click", "press", "move", "hover", "release", "wheel", "wait",
		"cancel", "leave", "refresh", "mark":
	case "drag":
		if _, ok := easings[st.Ease]; !ok {
			return fmt.Errorf("unknown ease %q", st.Ease)
		}
	case "key":
		if st.Key == "" {
			return fmt.Errorf("key step without key")
		}
	case "touch":
		if _, ok := touchPhases[st.Phase]; !ok {
			return fmt.Errorf("unknown touch phase %q", st.Phase)
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether every step has run and its events were delivered.
func (s *Script) Done() bool {
	return s.done
}

// Advance runs one frame of the script against a: it delivers one pending
// injected event, or else counts down a wait, or else queues the next step.
func (s *Script) Advance(a *Agent) {
	if s.done {
		return
	}
	if a.Step() {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		a.Wait(injectFrame)
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++
	s.run(a, st)

	if s.cursor >= len(s.steps) && s.waitCount == 0 && a.Pending() == 0 {
		s.done = true
	}
}

// Run advances the script until it is done or the agent is closed.
func (s *Script) Run(a *Agent) {
	for !s.done && !a.Closed() {
		s.Advance(a)
	}
}

func (s *Script) run(a *Agent, st scriptStep) {
	switch st.Action {
	case "click":
		a.InjectClick(st.X, st.Y)
	case "press":
		a.InjectPress(st.X, st.Y)
	case "move":
		a.InjectMove(st.X, st.Y)
	case "hover":
		a.InjectHover(st.X, st.Y)
	case "release":
		a.InjectRelease(st.X, st.Y)
	case "drag":
		a.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, easings[st.Ease])
	case "wheel":
		a.InjectWheel(st.X, st.Y, st.DX, st.DY)
	case "key":
		a.InjectKey(Key(st.Key), st.Text, 0)
	case "touch":
		ev := RawEvent{
			Device:   DeviceID(st.Device),
			Kind:     DeviceTouch,
			Point:    PointID(st.Point),
			Phase:    touchPhases[st.Phase],
			Position: Vec2{st.X, st.Y},
		}
		a.Inject(ev)
	case "cancel":
		a.Inject(RawEvent{Device: DeviceID(st.Device), Phase: PhaseCancel})
	case "leave":
		a.Inject(RawEvent{Device: DeviceID(st.Device), Kind: DeviceMouse, Phase: PhaseLeave})
	case "refresh":
		a.RefreshHover()
	case "mark":
		if s.OnLabel != nil {
			s.OnLabel(st.Label)
		}
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1
		}
		a.Wait(injectFrame)
	}
}
