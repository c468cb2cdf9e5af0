package config

// Render engine identifiers. The set is open ended: unknown engines fall
// back to cycles sample counts.
const (
	EngineCycles    = "CYCLES"
	EngineEevee     = "BLENDER_EEVEE"
	EngineWorkbench = "BLENDER_WORKBENCH"
)

// Engines lists the engines seeded into usage statistics.
var Engines = []string{EngineCycles, EngineEevee, EngineWorkbench}

// Output file formats.
const (
	FormatPNG  = "PNG"
	FormatJPEG = "JPEG"
	FormatEXR  = "OPEN_EXR"
	FormatTIFF = "TIFF"
)

// ExtFor returns the filename extension for a file format.
func ExtFor(format string) string {
	switch format {
	case FormatJPEG:
		return ".jpg"
	case FormatEXR:
		return ".exr"
	case FormatTIFF:
		return ".tif"
	default:
		return ".png"
	}
}

// SamplesFor picks the sample count that matches the resolved engine.
// Workbench does not sample; unknown engines are treated like cycles.
func SamplesFor(engine string, cycles, eevee int) int {
	switch engine {
	case EngineEevee:
		return eevee
	case EngineWorkbench:
		return 0
	default:
		return cycles
	}
}

// FrameRange is an inclusive animation frame range.
type FrameRange struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Count returns the number of frames in the range.
func (r FrameRange) Count() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// MasterSettings holds the project-wide defaults used when neither the
// camera nor its group overrides a field, plus running render totals.
type MasterSettings struct {
	FrameStart int    `yaml:"frame_start"`
	FrameEnd   int    `yaml:"frame_end"`
	OutputPath string `yaml:"output_path"`

	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	Percentage int `yaml:"percentage"`

	Engine        string `yaml:"engine"`
	CyclesSamples int    `yaml:"cycles_samples"`
	EeveeSamples  int    `yaml:"eevee_samples"`

	TotalRenders       int     `yaml:"total_renders"`
	LastRenderSeconds  float64 `yaml:"last_render_seconds"`
	TotalRenderSeconds float64 `yaml:"total_render_seconds"`
}

// Group is a named collection of cameras sharing optional overrides.
// Color and Notes are presentation only and never affect resolution.
type Group struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color,omitempty"`
	Notes string `yaml:"notes,omitempty"`

	UseRenderSettings bool   `yaml:"use_render_settings,omitempty"`
	Engine            string `yaml:"engine,omitempty"`
	CyclesSamples     int    `yaml:"cycles_samples,omitempty"`
	EeveeSamples      int    `yaml:"eevee_samples,omitempty"`

	UseResolution bool `yaml:"use_resolution,omitempty"`
	Width         int  `yaml:"width,omitempty"`
	Height        int  `yaml:"height,omitempty"`
	Percentage    int  `yaml:"percentage,omitempty"`

	UseOutputPath bool   `yaml:"use_output_path,omitempty"`
	OutputPath    string `yaml:"output_path,omitempty"`

	UseViewLayer bool   `yaml:"use_view_layer,omitempty"`
	ViewLayer    string `yaml:"view_layer,omitempty"`
}

// RenderPass is one named output channel. The name is used verbatim as a
// path segment and filename suffix. Pass order defines render sequence.
// Duplicate names are permitted but discouraged; they are not validated.
type RenderPass struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type,omitempty"`
	Enabled bool   `yaml:"enabled"`
}

// Camera is a configured shot entity. Each override toggle set is
// independent: a camera may override resolution while inheriting the
// engine from its group or from master.
type Camera struct {
	Name  string `yaml:"name"`
	Group string `yaml:"group,omitempty"`

	UseRenderSettings bool   `yaml:"use_render_settings,omitempty"`
	Engine            string `yaml:"engine,omitempty"`
	CyclesSamples     int    `yaml:"cycles_samples,omitempty"`
	EeveeSamples      int    `yaml:"eevee_samples,omitempty"`

	UseResolution bool `yaml:"use_resolution,omitempty"`
	Width         int  `yaml:"width,omitempty"`
	Height        int  `yaml:"height,omitempty"`
	Percentage    int  `yaml:"percentage,omitempty"`

	UseOutputPath bool   `yaml:"use_output_path,omitempty"`
	OutputPath    string `yaml:"output_path,omitempty"`

	UseViewLayer bool   `yaml:"use_view_layer,omitempty"`
	ViewLayer    string `yaml:"view_layer,omitempty"`

	UseFrameRange bool `yaml:"use_frame_range,omitempty"`
	FrameStart    int  `yaml:"frame_start,omitempty"`
	FrameEnd      int  `yaml:"frame_end,omitempty"`

	UsePasses bool         `yaml:"use_passes,omitempty"`
	Passes    []RenderPass `yaml:"passes,omitempty"`

	Filename   string `yaml:"filename"`
	FileFormat string `yaml:"file_format"`

	// Shot metadata. Carried through unchanged, never resolved.
	ShotSize  string `yaml:"shot_size,omitempty"`
	ShotType  string `yaml:"shot_type,omitempty"`
	Equipment string `yaml:"equipment,omitempty"`
	Notes     string `yaml:"notes,omitempty"`
}

// EnabledPasses returns the ordered subsequence of enabled passes.
func (c *Camera) EnabledPasses() []RenderPass {
	var out []RenderPass
	for _, p := range c.Passes {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}

// RenderConfig is the effective configuration for one camera after
// applying camera > group > master precedence per field group.
type RenderConfig struct {
	CameraName string
	Filename   string
	FileFormat string

	Engine  string
	Samples int

	Width      int
	Height     int
	Percentage int

	// ViewLayer is empty when no tier overrides it; the environment's
	// current layer then stays active.
	ViewLayer string

	FrameStart int
	FrameEnd   int

	// Degraded reports that a reference could not be resolved and a
	// lower tier was used silently (for example a deleted group).
	Degraded     bool
	DegradedRefs []string
}
