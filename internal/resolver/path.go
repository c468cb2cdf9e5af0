package resolver

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ivlev/shotmaster/internal/config"
	"github.com/ivlev/shotmaster/internal/store"
)

// Sanitize strips a name down to a filesystem-safe path segment: only
// letters, digits, spaces, underscores and hyphens survive, surrounding
// whitespace is trimmed and each remaining space becomes an underscore.
// The function is idempotent. Two distinct names can sanitize to the
// same segment ("Shot A" and "Shot_A"); such collisions are tolerated,
// not resolved, and the renders share a directory.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}

// OutputDir derives the output directory for one render of a camera:
//
//	base / groupSegment / cameraSegment / mode [/ passName]
//
// The base directory follows camera > group > master precedence
// independently of the other field groups; empty override paths are
// skipped. The group segment uses the camera's group reference verbatim
// (sanitized) even when the group record no longer exists; ungrouped
// cameras get the literal "ungrouped". Mode is "animation" or "stills".
// Same inputs always yield the same path string.
func OutputDir(cam config.Camera, st *store.Store, animation bool, passName string) string {
	master := st.Master()
	grp, _ := groupFor(cam, st)

	base := master.OutputPath
	if grp.UseOutputPath && grp.OutputPath != "" {
		base = grp.OutputPath
	}
	if cam.UseOutputPath && cam.OutputPath != "" {
		base = cam.OutputPath
	}

	groupSeg := "ungrouped"
	if cam.Group != "" {
		groupSeg = Sanitize(cam.Group)
	}

	mode := "stills"
	if animation {
		mode = "animation"
	}

	parts := []string{base, groupSeg, Sanitize(cam.Name), mode}
	if passName != "" {
		parts = append(parts, passName)
	}
	return filepath.Join(parts...)
}
