package ruleset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/charplanner/internal/game/character"
)

// Content file names expected inside each ruleset version directory.
const (
	breedsFile      = "breeds.yaml"
	professionsFile = "professions.yaml"
	skillsFile      = "skills.yaml"
	ratesFile       = "cost_to_rate.yaml"
)

type breedDoc struct {
	Breeds []struct {
		ID        int                     `yaml:"id"`
		Name      string                  `yaml:"name"`
		Abilities map[string]BreedAbility `yaml:"abilities"`
		Vitals    BreedVitals             `yaml:"vitals"`
	} `yaml:"breeds"`
}

type professionDoc struct {
	Professions []struct {
		ID                  int             `yaml:"id"`
		Name                string          `yaml:"name"`
		HealthPerTitleLevel []int           `yaml:"health_per_title_level"`
		NanoPerTitleLevel   []int           `yaml:"nano_per_title_level"`
		SkillCosts          map[int]float64 `yaml:"skill_costs"`
	} `yaml:"professions"`
}

type skillDoc struct {
	Skills []struct {
		ID       int                `yaml:"id"`
		Name     string             `yaml:"name"`
		Category string             `yaml:"category"`
		Derived  bool               `yaml:"derived"`
		Trickle  map[string]float64 `yaml:"trickle"`
	} `yaml:"skills"`
}

type rateDoc struct {
	Rows []struct {
		Cost float64 `yaml:"cost"`
		Rate int     `yaml:"rate"`
		Caps []int   `yaml:"caps"`
		Post int     `yaml:"post"`
	} `yaml:"rows"`
}

func readYAML(dir, name string, out any) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// LoadVersion reads one ruleset version directory into a TableSet.
//
// Precondition: dir must contain breeds.yaml, professions.yaml,
// skills.yaml, and cost_to_rate.yaml; version must be non-empty.
// Postcondition: Returns a fully-populated TableSet or a non-nil error.
func LoadVersion(dir, version string) (*TableSet, error) {
	set := NewTableSet(version)

	var breeds breedDoc
	if err := readYAML(dir, breedsFile, &breeds); err != nil {
		return nil, err
	}
	for _, b := range breeds.Breeds {
		entry := &Breed{ID: b.ID, Name: b.Name, Vitals: b.Vitals}
		if len(b.Abilities) != character.NumAbilities {
			return nil, fmt.Errorf("breed %q: expected %d abilities, got %d",
				b.Name, character.NumAbilities, len(b.Abilities))
		}
		for key, ab := range b.Abilities {
			idx, ok := character.AbilityIndexByKey(key)
			if !ok {
				return nil, fmt.Errorf("breed %q: unknown ability key %q", b.Name, key)
			}
			entry.Abilities[idx] = ab
		}
		set.AddBreed(entry)
	}

	var profs professionDoc
	if err := readYAML(dir, professionsFile, &profs); err != nil {
		return nil, err
	}
	for _, p := range profs.Professions {
		if len(p.HealthPerTitleLevel) != NumTitleLevels || len(p.NanoPerTitleLevel) != NumTitleLevels {
			return nil, fmt.Errorf("profession %q: vitals gain tables must have %d entries", p.Name, NumTitleLevels)
		}
		entry := &Profession{ID: p.ID, Name: p.Name, SkillCosts: p.SkillCosts}
		copy(entry.HealthPerTitleLevel[:], p.HealthPerTitleLevel)
		copy(entry.NanoPerTitleLevel[:], p.NanoPerTitleLevel)
		if entry.SkillCosts == nil {
			entry.SkillCosts = make(map[int]float64)
		}
		set.AddProfession(entry)
	}

	var skills skillDoc
	if err := readYAML(dir, skillsFile, &skills); err != nil {
		return nil, err
	}
	for _, s := range skills.Skills {
		entry := &Skill{ID: s.ID, Name: s.Name, Category: s.Category, Derived: s.Derived}
		for key, w := range s.Trickle {
			idx, ok := character.AbilityIndexByKey(key)
			if !ok {
				return nil, fmt.Errorf("skill %q: unknown trickle ability key %q", s.Name, key)
			}
			entry.Weights[idx] = w
			entry.HasTrickle = true
		}
		set.AddSkill(entry)
	}

	var rates rateDoc
	if err := readYAML(dir, ratesFile, &rates); err != nil {
		return nil, err
	}
	for _, r := range rates.Rows {
		if len(r.Caps) != 6 {
			return nil, fmt.Errorf("cost_to_rate row %.1f: expected 6 title caps, got %d", r.Cost, len(r.Caps))
		}
		row := RateRow{CostFactor: r.Cost, PerLevel: r.Rate, PostPerLevel: r.Post}
		copy(row.TitleCaps[:], r.Caps)
		set.AddRate(row)
	}

	return set, nil
}

// Registry holds every loaded ruleset version keyed by version string.
type Registry struct {
	versions map[string]Tables
}

// NewRegistry returns an empty Registry.
//
// Postcondition: Returns a non-nil *Registry ready to accept registrations.
func NewRegistry() *Registry {
	return &Registry{versions: make(map[string]Tables)}
}

// Register adds a ruleset version to the registry.
//
// Precondition: t must be non-nil with a non-empty version.
// Postcondition: t is retrievable via Version; last registration wins on
// duplicate version strings.
func (r *Registry) Register(t Tables) {
	if t == nil {
		panic("ruleset.Register: precondition violated: tables must be non-nil")
	}
	if t.Version() == "" {
		panic("ruleset.Register: precondition violated: version must be non-empty")
	}
	r.versions[t.Version()] = t
}

// Version returns the Tables for a version string, if registered.
func (r *Registry) Version(version string) (Tables, bool) {
	t, ok := r.versions[version]
	return t, ok
}

// LoadDirectory loads every subdirectory of dir as a ruleset version named
// after the subdirectory.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a Registry with one Tables per subdirectory, or a
// non-nil error if any version fails to load.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading ruleset dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		set, err := LoadVersion(filepath.Join(dir, e.Name()), e.Name())
		if err != nil {
			return nil, fmt.Errorf("loading ruleset version %q: %w", e.Name(), err)
		}
		reg.Register(set)
	}
	return reg, nil
}
