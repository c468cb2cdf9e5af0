// Package resolver computes effective render configurations and output
// directories from the three-tier override hierarchy: camera > group >
// master. Resolution never fails; a dangling group reference degrades to
// the next tier and is reported through the Degraded flag.
package resolver

import (
	"github.com/ivlev/shotmaster/internal/config"
	"github.com/ivlev/shotmaster/internal/store"
)

// pick returns the value from the highest-precedence tier whose override
// toggle is set. Every resolvable field group goes through this one
// helper so the settings resolver and the statistics aggregator cannot
// drift apart.
func pick[T any](camSet bool, cam T, groupSet bool, group T, master T) T {
	if camSet {
		return cam
	}
	if groupSet {
		return group
	}
	return master
}

// groupFor returns the camera's group record, or a zero group with all
// toggles off when the camera is ungrouped or the reference is dangling.
// degraded reports the dangling case.
func groupFor(cam config.Camera, st *store.Store) (grp config.Group, degraded bool) {
	if cam.Group == "" {
		return config.Group{}, false
	}
	grp, ok := st.Group(cam.Group)
	if !ok {
		return config.Group{}, true
	}
	return grp, false
}

// Resolve produces the effective render configuration for a camera. It is
// a pure function of the current store state. The four field groups
// (engine+samples, resolution, view layer, frame range) resolve
// independently: a camera may override resolution while inheriting the
// engine from its group.
func Resolve(cam config.Camera, st *store.Store) config.RenderConfig {
	master := st.Master()
	grp, degraded := groupFor(cam, st)

	engine := pick(cam.UseRenderSettings, cam.Engine, grp.UseRenderSettings, grp.Engine, master.Engine)
	cycles := pick(cam.UseRenderSettings, cam.CyclesSamples, grp.UseRenderSettings, grp.CyclesSamples, master.CyclesSamples)
	eevee := pick(cam.UseRenderSettings, cam.EeveeSamples, grp.UseRenderSettings, grp.EeveeSamples, master.EeveeSamples)

	width := pick(cam.UseResolution, cam.Width, grp.UseResolution, grp.Width, master.Width)
	height := pick(cam.UseResolution, cam.Height, grp.UseResolution, grp.Height, master.Height)
	pct := pick(cam.UseResolution, cam.Percentage, grp.UseResolution, grp.Percentage, master.Percentage)

	layer := pick(cam.UseViewLayer, cam.ViewLayer, grp.UseViewLayer, grp.ViewLayer, "")

	frames := FrameRangeFor(cam, st)

	cfg := config.RenderConfig{
		CameraName: cam.Name,
		Filename:   cam.Filename,
		FileFormat: cam.FileFormat,
		Engine:     engine,
		// Sample count follows the resolved engine, not the tier the
		// engine came from.
		Samples:    config.SamplesFor(engine, cycles, eevee),
		Width:      width,
		Height:     height,
		Percentage: pct,
		ViewLayer:  layer,
		FrameStart: frames.Start,
		FrameEnd:   frames.End,
	}

	if degraded {
		cfg.Degraded = true
		cfg.DegradedRefs = append(cfg.DegradedRefs, "group:"+cam.Group)
	}
	return cfg
}

// EngineFor resolves only the engine field for a camera. Statistics use
// this instead of re-implementing the precedence chain.
func EngineFor(cam config.Camera, st *store.Store) string {
	master := st.Master()
	grp, _ := groupFor(cam, st)
	return pick(cam.UseRenderSettings, cam.Engine, grp.UseRenderSettings, grp.Engine, master.Engine)
}

// FrameRangeFor resolves only the frame range for a camera. Groups carry
// no frame-range override; the range is camera or master.
func FrameRangeFor(cam config.Camera, st *store.Store) config.FrameRange {
	master := st.Master()
	return pick(cam.UseFrameRange,
		config.FrameRange{Start: cam.FrameStart, End: cam.FrameEnd},
		false, config.FrameRange{},
		config.FrameRange{Start: master.FrameStart, End: master.FrameEnd})
}
