package stats

import (
	"testing"
	"time"

	"github.com/ivlev/shotmaster/internal/config"
	"github.com/ivlev/shotmaster/internal/store"
)

func statsStore(t *testing.T) *store.Store {
	t.Helper()
	master := store.DefaultMaster()
	master.FrameStart = 1
	master.FrameEnd = 10
	st := store.New(master)
	if err := st.AddGroup(config.Group{Name: "Ext"}); err != nil {
		t.Fatalf("AddGroup failed: %v", err)
	}
	if err := st.AddGroup(config.Group{Name: "Empty"}); err != nil {
		t.Fatalf("AddGroup failed: %v", err)
	}
	return st
}

func addCamera(t *testing.T, st *store.Store, cam config.Camera) {
	t.Helper()
	if err := st.AddCamera(cam); err != nil {
		t.Fatalf("AddCamera failed: %v", err)
	}
}

func TestAggregateTotalFrames(t *testing.T) {
	st := statsStore(t)

	// Four cameras on the master range [1,10], one overridden to [1,100].
	for _, name := range []string{"a", "b", "c", "d"} {
		addCamera(t, st, config.Camera{Name: name})
	}
	addCamera(t, st, config.Camera{
		Name:          "long",
		UseFrameRange: true,
		FrameStart:    1,
		FrameEnd:      100,
	})

	s := Aggregate(st)
	if want := 4*10 + 100; s.TotalFrames != want {
		t.Errorf("Expected %d total frames, got %d", want, s.TotalFrames)
	}
}

func TestAggregateGroupBuckets(t *testing.T) {
	st := statsStore(t)
	addCamera(t, st, config.Camera{Name: "a", Group: "Ext"})
	addCamera(t, st, config.Camera{Name: "b", Group: "Ext"})
	addCamera(t, st, config.Camera{Name: "c"})

	s := Aggregate(st)
	if s.TotalCameras != 3 || s.TotalGroups != 2 {
		t.Errorf("Unexpected totals: %d cameras, %d groups", s.TotalCameras, s.TotalGroups)
	}
	if s.CamerasByGroup["Ext"] != 2 {
		t.Errorf("Expected 2 in Ext, got %d", s.CamerasByGroup["Ext"])
	}
	if n, ok := s.CamerasByGroup["Empty"]; !ok || n != 0 {
		t.Errorf("Declared empty group must appear at zero, got %d (present=%v)", n, ok)
	}
	if s.CamerasByGroup[UngroupedBucket] != 1 {
		t.Errorf("Expected 1 ungrouped, got %d", s.CamerasByGroup[UngroupedBucket])
	}
}

func TestAggregateResolvedEngines(t *testing.T) {
	st := statsStore(t)
	if err := st.AddGroup(config.Group{
		Name:              "EeveeGroup",
		UseRenderSettings: true,
		Engine:            config.EngineEevee,
	}); err != nil {
		t.Fatalf("AddGroup failed: %v", err)
	}

	// Inherits master cycles.
	addCamera(t, st, config.Camera{Name: "a"})
	// Group override: counts as eevee even without a camera override.
	addCamera(t, st, config.Camera{Name: "b", Group: "EeveeGroup"})
	// Camera override wins over the group.
	addCamera(t, st, config.Camera{
		Name:              "c",
		Group:             "EeveeGroup",
		UseRenderSettings: true,
		Engine:            config.EngineWorkbench,
	})

	s := Aggregate(st)
	if s.Engines[config.EngineCycles] != 1 {
		t.Errorf("Expected 1 cycles camera, got %d", s.Engines[config.EngineCycles])
	}
	if s.Engines[config.EngineEevee] != 1 {
		t.Errorf("Expected 1 eevee camera, got %d", s.Engines[config.EngineEevee])
	}
	if s.Engines[config.EngineWorkbench] != 1 {
		t.Errorf("Expected 1 workbench camera, got %d", s.Engines[config.EngineWorkbench])
	}
}

func TestAggregateMetadataTables(t *testing.T) {
	st := statsStore(t)
	addCamera(t, st, config.Camera{Name: "a", ShotSize: "WIDE", ShotType: "STATIC", Equipment: "TRIPOD"})
	addCamera(t, st, config.Camera{Name: "b", ShotSize: "WIDE", ShotType: "DOLLY", Equipment: "CUSTOM_RIG"})

	s := Aggregate(st)
	if s.ShotSizes["WIDE"] != 2 {
		t.Errorf("Expected 2 wide shots, got %d", s.ShotSizes["WIDE"])
	}
	// Known tags are seeded even when unused.
	if n, ok := s.ShotSizes["CLOSE"]; !ok || n != 0 {
		t.Errorf("Known tag should be seeded at zero, got %d (present=%v)", n, ok)
	}
	// Unknown tags are added dynamically.
	if s.Equipment["CUSTOM_RIG"] != 1 {
		t.Errorf("Unknown tag should be counted, got %d", s.Equipment["CUSTOM_RIG"])
	}
}

func TestAggregateRenderAverages(t *testing.T) {
	st := statsStore(t)

	s := Aggregate(st)
	if s.AverageRenderSeconds != 0 {
		t.Errorf("Average with zero renders must be zero, got %f", s.AverageRenderSeconds)
	}

	st.RecordRender(2 * time.Second)
	st.RecordRender(6 * time.Second)

	s = Aggregate(st)
	if s.TotalRenders != 2 {
		t.Errorf("Expected 2 renders, got %d", s.TotalRenders)
	}
	if s.AverageRenderSeconds != 4 {
		t.Errorf("Expected average 4s, got %f", s.AverageRenderSeconds)
	}
	if s.LastRenderSeconds != 6 {
		t.Errorf("Expected last 6s, got %f", s.LastRenderSeconds)
	}
}
