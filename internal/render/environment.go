package render

// EnvState is the full value of the shared render environment. The
// orchestrator captures it before a job, applies a resolved
// configuration over it, and writes the captured value back when the
// job ends.
type EnvState struct {
	Engine     string
	Width      int
	Height     int
	Percentage int

	// Samples holds the per-engine sample counts.
	Samples map[string]int

	ActiveCamera string
	ActiveLayer  string
	OutputPath   string
	FileFormat   string
	FrameStart   int
	FrameEnd     int
}

// Clone returns a deep copy, so a snapshot cannot be mutated through the
// live state's sample map.
func (s EnvState) Clone() EnvState {
	out := s
	out.Samples = make(map[string]int, len(s.Samples))
	for k, v := range s.Samples {
		out.Samples[k] = v
	}
	return out
}

// Environment is the process-wide render environment collaborator.
// State returns the current value; SetState replaces it wholesale.
// Implementations are not required to be safe for concurrent use; the
// orchestrator serializes access.
type Environment interface {
	State() EnvState
	SetState(EnvState) error
}

// MemoryEnvironment is an in-process Environment. When KnownLayers is
// non-empty, setting an unknown active layer keeps the current layer
// instead of failing; missing layers degrade silently by design.
type MemoryEnvironment struct {
	state       EnvState
	knownLayers map[string]bool
}

// NewMemoryEnvironment returns an environment starting from the given
// state. layers lists the view layers that exist; nil accepts any.
func NewMemoryEnvironment(initial EnvState, layers []string) *MemoryEnvironment {
	env := &MemoryEnvironment{state: initial.Clone()}
	if env.state.Samples == nil {
		env.state.Samples = make(map[string]int)
	}
	if len(layers) > 0 {
		env.knownLayers = make(map[string]bool, len(layers))
		for _, l := range layers {
			env.knownLayers[l] = true
		}
	}
	return env
}

func (e *MemoryEnvironment) State() EnvState {
	return e.state.Clone()
}

func (e *MemoryEnvironment) SetState(s EnvState) error {
	next := s.Clone()
	if next.ActiveLayer != "" && e.knownLayers != nil && !e.knownLayers[next.ActiveLayer] {
		next.ActiveLayer = e.state.ActiveLayer
	}
	e.state = next
	return nil
}
