// Package quadrupole holds the DIA isolation-window configuration that the
// Frame Reader core treats as opaque. Settings are immutable once built and
// shared by reference across every frame that cites the same window group.
package quadrupole

import "sync"

// Settings describes one DIA isolation-window configuration: the precursor
// m/z the quadrupole was centered on, the width of the isolation window and
// the collision energy applied during fragmentation. The Frame Reader core
// never inspects these fields; it only carries the shared handle.
type Settings struct {
	IsolationMz    float64
	IsolationWidth float64
	CollisionEnergy float64
}

var (
	defaultOnce     sync.Once
	defaultSettings *Settings
)

// Default returns the process-wide sentinel used by MS1 frames, DDA MS2
// frames and DIA MS2 frames whose window group is zero (no window
// assigned). It is always the same pointer, so callers may compare by
// identity to detect "no DIA window" without inspecting field values.
func Default() *Settings {
	defaultOnce.Do(func() {
		defaultSettings = &Settings{}
	})
	return defaultSettings
}
