package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ivlev/shotmaster/internal/config"
)

// ErrNotFound is returned when a camera or group name is unknown.
var ErrNotFound = errors.New("not found")

// Store holds the camera, group and master settings records for one
// project session. Camera order is preserved; it defines batch render
// order. Counter writes are guarded so a concurrent reader (statistics)
// never sees a torn update.
type Store struct {
	mu      sync.RWMutex
	master  config.MasterSettings
	layers  []string
	groups  []config.Group
	cameras []config.Camera
}

// New returns a store seeded with the given master settings.
func New(master config.MasterSettings) *Store {
	return &Store{master: master}
}

// DefaultMaster returns the master settings a fresh project starts with.
func DefaultMaster() config.MasterSettings {
	return config.MasterSettings{
		FrameStart:    1,
		FrameEnd:      250,
		OutputPath:    "renders",
		Width:         1920,
		Height:        1080,
		Percentage:    100,
		Engine:        config.EngineCycles,
		CyclesSamples: 128,
		EeveeSamples:  64,
	}
}

// DefaultCamera returns a camera record with project defaults and a
// single enabled beauty pass.
func DefaultCamera(name string) config.Camera {
	return config.Camera{
		Name:          name,
		Engine:        config.EngineCycles,
		CyclesSamples: 128,
		EeveeSamples:  64,
		Width:         1920,
		Height:        1080,
		Percentage:    100,
		FrameStart:    1,
		FrameEnd:      250,
		Filename:      "shot",
		FileFormat:    config.FormatPNG,
		ShotSize:      "WIDE",
		ShotType:      "STATIC",
		Equipment:     "TRIPOD",
		Passes: []config.RenderPass{
			{Name: "beauty", Type: "BEAUTY", Enabled: true},
		},
	}
}

// Master returns a copy of the current master settings.
func (s *Store) Master() config.MasterSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.master
}

// SetMaster replaces the master settings, keeping the running counters.
func (s *Store) SetMaster(m config.MasterSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.TotalRenders = s.master.TotalRenders
	m.LastRenderSeconds = s.master.LastRenderSeconds
	m.TotalRenderSeconds = s.master.TotalRenderSeconds
	s.master = m
}

// RecordRender bumps the counters for one completed job: one render
// regardless of how many passes it contained.
func (s *Store) RecordRender(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.master.TotalRenders++
	s.master.LastRenderSeconds = d.Seconds()
	s.master.TotalRenderSeconds += d.Seconds()
}

// Layers returns the view layers known to the project.
func (s *Store) Layers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.layers))
	copy(out, s.layers)
	return out
}

// SetLayers replaces the known view layers.
func (s *Store) SetLayers(layers []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layers = append([]string(nil), layers...)
}

// AddGroup appends a group record. Duplicate names are rejected.
func (s *Store) AddGroup(g config.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, have := range s.groups {
		if have.Name == g.Name {
			return fmt.Errorf("group %q already exists", g.Name)
		}
	}
	s.groups = append(s.groups, g)
	return nil
}

// Group looks up a group by name.
func (s *Store) Group(name string) (config.Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.groups {
		if g.Name == name {
			return g, true
		}
	}
	return config.Group{}, false
}

// Groups returns all group records in declaration order.
func (s *Store) Groups() []config.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]config.Group, len(s.groups))
	copy(out, s.groups)
	return out
}

// RemoveGroup deletes a group record. Member cameras keep their group
// reference; resolution then degrades to ungrouped behavior.
func (s *Store) RemoveGroup(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.groups {
		if g.Name == name {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("group %q: %w", name, ErrNotFound)
}

// AddCamera appends a camera record. Duplicate names are rejected.
func (s *Store) AddCamera(c config.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, have := range s.cameras {
		if have.Name == c.Name {
			return fmt.Errorf("camera %q already exists", c.Name)
		}
	}
	s.cameras = append(s.cameras, c)
	return nil
}

// Camera looks up a camera by name.
func (s *Store) Camera(name string) (config.Camera, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cameras {
		if c.Name == name {
			return c, nil
		}
	}
	return config.Camera{}, fmt.Errorf("camera %q: %w", name, ErrNotFound)
}

// UpdateCamera replaces the record with the same name.
func (s *Store) UpdateCamera(c config.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, have := range s.cameras {
		if have.Name == c.Name {
			s.cameras[i] = c
			return nil
		}
	}
	return fmt.Errorf("camera %q: %w", c.Name, ErrNotFound)
}

// RemoveCamera deletes a camera record.
func (s *Store) RemoveCamera(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.cameras {
		if c.Name == name {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("camera %q: %w", name, ErrNotFound)
}

// Cameras returns all camera records in declaration order.
func (s *Store) Cameras() []config.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]config.Camera, len(s.cameras))
	copy(out, s.cameras)
	return out
}

// CamerasInGroup returns the cameras referencing the named group.
func (s *Store) CamerasInGroup(group string) []config.Camera {
	if group == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []config.Camera
	for _, c := range s.cameras {
		if c.Group == group {
			out = append(out, c)
		}
	}
	return out
}

// UngroupedCameras returns the cameras with no group reference.
func (s *Store) UngroupedCameras() []config.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []config.Camera
	for _, c := range s.cameras {
		if c.Group == "" {
			out = append(out, c)
		}
	}
	return out
}
