// Package stats produces read-only reporting aggregates over all
// cameras and groups. Field resolution reuses the resolver's precedence
// helpers so reported values cannot drift from what a render would use.
package stats

import (
	"github.com/ivlev/shotmaster/internal/config"
	"github.com/ivlev/shotmaster/internal/resolver"
	"github.com/ivlev/shotmaster/internal/store"
)

// UngroupedBucket keys the cameras without a group reference. A camera
// with a dangling reference counts toward the referenced name, matching
// how paths keep the referenced group segment.
const UngroupedBucket = "ungrouped"

// Stats is a snapshot of project-wide counts and derived metrics.
// Zero-valued entries stay in the maps; hiding them is up to the
// presentation layer.
type Stats struct {
	TotalCameras int
	TotalGroups  int

	// CamerasByGroup counts cameras per declared group (every declared
	// group present, zero included) plus the synthetic ungrouped bucket.
	CamerasByGroup map[string]int

	// Engines counts cameras per resolved engine.
	Engines map[string]int

	ShotSizes map[string]int
	ShotTypes map[string]int
	Equipment map[string]int

	// TotalFrames sums each camera's resolved frame range.
	TotalFrames int

	TotalRenders         int
	LastRenderSeconds    float64
	TotalRenderSeconds   float64
	AverageRenderSeconds float64
}

func seed(keys []string) map[string]int {
	m := make(map[string]int, len(keys))
	for _, k := range keys {
		m[k] = 0
	}
	return m
}

func bump(m map[string]int, key string) {
	if key == "" {
		return
	}
	m[key]++
}

// Aggregate scans the store and computes the statistics. It is pure and
// read-only.
func Aggregate(st *store.Store) Stats {
	master := st.Master()
	groups := st.Groups()
	cameras := st.Cameras()

	s := Stats{
		TotalCameras:       len(cameras),
		TotalGroups:        len(groups),
		CamerasByGroup:     map[string]int{UngroupedBucket: 0},
		Engines:            seed(config.Engines),
		ShotSizes:          seed(config.KnownShotSizes),
		ShotTypes:          seed(config.KnownShotTypes),
		Equipment:          seed(config.KnownEquipment),
		TotalRenders:       master.TotalRenders,
		LastRenderSeconds:  master.LastRenderSeconds,
		TotalRenderSeconds: master.TotalRenderSeconds,
	}
	for _, g := range groups {
		s.CamerasByGroup[g.Name] = 0
	}

	for _, cam := range cameras {
		s.Engines[resolver.EngineFor(cam, st)]++

		bump(s.ShotSizes, cam.ShotSize)
		bump(s.ShotTypes, cam.ShotType)
		bump(s.Equipment, cam.Equipment)

		if cam.Group != "" {
			s.CamerasByGroup[cam.Group]++
		} else {
			s.CamerasByGroup[UngroupedBucket]++
		}

		s.TotalFrames += resolver.FrameRangeFor(cam, st).Count()
	}

	if s.TotalRenders > 0 {
		s.AverageRenderSeconds = s.TotalRenderSeconds / float64(s.TotalRenders)
	}
	return s
}
