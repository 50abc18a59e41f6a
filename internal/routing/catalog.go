// Package routing implements the hybrid profile router: keyword rules,
// behavioral signal boosts and zero-shot semantic similarity combined
// into one ranked, fully traced decision.
package routing

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is one entry of the static expert-persona catalog.
type Profile struct {
	ID    string   `yaml:"id" json:"id"`
	Scope []string `yaml:"scope" json:"scope"`
	Tone  string   `yaml:"tone" json:"tone"`
}

// Description renders the text embedded for zero-shot matching. The
// wording is part of the routing behavior: changing it changes every
// semantic score.
func (p Profile) Description() string {
	return fmt.Sprintf("Profil %s. Ton: %s. Domaines: %s.", p.ID, p.Tone, strings.Join(p.Scope, ", "))
}

// Catalog is the ordered profile list. Declaration order matters: it is
// the tie-break order of the routing decision.
type Catalog struct {
	profiles []Profile
	byID     map[string]int
}

// NewCatalog builds a catalog, rejecting duplicates and empty ids.
func NewCatalog(profiles []Profile) (*Catalog, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("catalog must declare at least one profile")
	}
	byID := make(map[string]int, len(profiles))
	for i, p := range profiles {
		if p.ID == "" {
			return nil, fmt.Errorf("profile %d has empty id", i)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate profile id %q", p.ID)
		}
		byID[p.ID] = i
	}
	return &Catalog{profiles: profiles, byID: byID}, nil
}

// LoadCatalog reads the profile catalog from a YAML file of the form
// {profiles: [{id, scope, tone}, ...]}.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var doc struct {
		Profiles []Profile `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalog(doc.Profiles)
}

// Profiles returns the profiles in declaration order.
func (c *Catalog) Profiles() []Profile {
	return c.profiles
}

// Get returns the profile with the given id.
func (c *Catalog) Get(id string) (Profile, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Profile{}, false
	}
	return c.profiles[i], true
}

// Len returns the number of declared profiles.
func (c *Catalog) Len() int { return len(c.profiles) }
