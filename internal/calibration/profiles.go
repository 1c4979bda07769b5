package calibration

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scaling turns a mean prediction into characteristic and design values.
// Gamma is informational and is not derived from KChar/KDesign.
type Scaling struct {
	KChar   float64 `json:"k_char" yaml:"k_char"`
	KDesign float64 `json:"k_design" yaml:"k_design"`
	Gamma   float64 `json:"gamma" yaml:"gamma"`
}

// Profile is a named set of reliability-based scaling factors for both targets.
type Profile struct {
	ID          string  `json:"id" yaml:"id"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fr1         Scaling `json:"fr1" yaml:"fr1"`
	Fr3         Scaling `json:"fr3" yaml:"fr3"`
}

// DefaultProfileID is the calibration used by the published tool.
const DefaultProfileID = "en1990-c2"

// BuiltinProfiles returns the embedded calibration snapshots.
// The two snapshots disagree on k_design and gamma; both are kept as-is.
func BuiltinProfiles() []Profile {
	return []Profile{
		{
			ID:          DefaultProfileID,
			Description: "EN 1990 Annex C reliability calibration (Code 2)",
			Fr1:         Scaling{KChar: 0.67, KDesign: 0.49, Gamma: 1.36},
			Fr3:         Scaling{KChar: 0.62, KDesign: 0.43, Gamma: 1.45},
		},
		{
			ID:          "en1990-c2-alt",
			Description: "EN 1990 Annex C reliability calibration (Code 2, alternate snapshot)",
			Fr1:         Scaling{KChar: 0.67, KDesign: 0.51, Gamma: 1.33},
			Fr3:         Scaling{KChar: 0.62, KDesign: 0.45, Gamma: 1.40},
		},
	}
}

// Validate checks that every factor is positive and finite.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("calibration: profile id is empty")
	}
	for _, s := range []struct {
		target string
		sc     Scaling
	}{{"fr1", p.Fr1}, {"fr3", p.Fr3}} {
		factors := []struct {
			name string
			v    float64
		}{{"k_char", s.sc.KChar}, {"k_design", s.sc.KDesign}, {"gamma", s.sc.Gamma}}
		for _, f := range factors {
			if !(f.v > 0) || math.IsInf(f.v, 0) {
				return fmt.Errorf("calibration: profile %q: %s.%s must be positive and finite, got %v", p.ID, s.target, f.name, f.v)
			}
		}
	}
	return nil
}

// Registry looks profiles up by ID.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry returns a registry holding the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, p := range BuiltinProfiles() {
		r.profiles[p.ID] = p
	}
	return r
}

// Add registers a profile. IDs must be unique.
func (r *Registry) Add(p Profile) error {
	p.ID = strings.TrimSpace(p.ID)
	if err := p.Validate(); err != nil {
		return err
	}
	if _, exists := r.profiles[p.ID]; exists {
		return fmt.Errorf("calibration: duplicate profile %q", p.ID)
	}
	r.profiles[p.ID] = p
	return nil
}

// Lookup returns the profile with the given ID. An empty ID selects the default.
func (r *Registry) Lookup(id string) (Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = DefaultProfileID
	}
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, &UnknownProfileError{ID: id}
	}
	return p, nil
}

// List returns all profiles sorted by ID.
func (r *Registry) List() []Profile {
	out := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UnknownProfileError is returned by Lookup for an unregistered ID.
type UnknownProfileError struct {
	ID string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("calibration: unknown profile %q", e.ID)
}

type profileFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// ParseProfiles decodes a YAML (or JSON) document with a top-level
// "profiles" list.
func ParseProfiles(data []byte) ([]Profile, error) {
	var doc profileFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("calibration: parse profiles: %w", err)
	}
	if len(doc.Profiles) == 0 {
		return nil, fmt.Errorf("calibration: no profiles defined")
	}
	for _, p := range doc.Profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return doc.Profiles, nil
}

// LoadProfilesFile reads extra profiles from path and adds them to r. On
// error r is left unchanged.
func (r *Registry) LoadProfilesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("calibration: read %s: %w", path, err)
	}
	profiles, err := ParseProfiles(data)
	if err != nil {
		return fmt.Errorf("%w (file %s)", err, path)
	}
	// Nothing is registered unless every ID in the file is free.
	seen := make(map[string]bool, len(profiles))
	for i := range profiles {
		id := strings.TrimSpace(profiles[i].ID)
		if _, exists := r.profiles[id]; exists || seen[id] {
			return fmt.Errorf("calibration: duplicate profile %q (file %s)", id, path)
		}
		seen[id] = true
	}
	for _, p := range profiles {
		if err := r.Add(p); err != nil {
			return fmt.Errorf("%w (file %s)", err, path)
		}
	}
	return nil
}
