package data

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed spells.yaml
var defaultSpells []byte

// spellFile is the YAML document shape for a catalog file.
type spellFile struct {
	Spells []spellDef `yaml:"spells"`
}

// spellDef mirrors one catalog entry as authored in YAML.
type spellDef struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	MPCost     float64     `yaml:"mp_cost"`
	Cooldown   float64     `yaml:"cooldown"`
	Element    string      `yaml:"element"`
	Target     string      `yaml:"target"`
	Classes    []string    `yaml:"classes"`
	LearnLevel int         `yaml:"learn_level"`
	Effects    []effectDef `yaml:"effects"`
}

type effectDef struct {
	Type              string   `yaml:"type"`
	Power             float64  `yaml:"power"`
	Scaling           string   `yaml:"scaling"`
	ScalingMultiplier float64  `yaml:"scaling_multiplier"`
	Stat              string   `yaml:"stat"`
	Value             float64  `yaml:"value"`
	Duration          float64  `yaml:"duration"`
	Condition         string   `yaml:"condition"`
	Conditions        []string `yaml:"conditions"`
}

// Load parses a YAML catalog document and builds a Catalog.
func Load(raw []byte) (*Catalog, error) {
	var file spellFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing spell catalog: %w", err)
	}

	spells := make([]*Spell, 0, len(file.Spells))
	for i := range file.Spells {
		s, err := buildSpell(&file.Spells[i])
		if err != nil {
			return nil, fmt.Errorf("spell %d (%q): %w", i, file.Spells[i].ID, err)
		}
		spells = append(spells, s)
	}
	return NewCatalog(spells), nil
}

// LoadFile reads and parses a YAML catalog file.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spell catalog %s: %w", path, err)
	}
	return Load(raw)
}

// LoadDefault builds the catalog from the embedded starter set.
func LoadDefault() (*Catalog, error) {
	return Load(defaultSpells)
}

func buildSpell(def *spellDef) (*Spell, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("missing id")
	}
	if def.MPCost < 0 {
		return nil, fmt.Errorf("negative mp_cost %v", def.MPCost)
	}
	if def.Cooldown < 0 {
		return nil, fmt.Errorf("negative cooldown %v", def.Cooldown)
	}
	target := ParseTargetType(def.Target)
	if target == TargetUnknown {
		return nil, fmt.Errorf("unknown target mode %q", def.Target)
	}

	s := &Spell{
		ID:         def.ID,
		Name:       def.Name,
		MPCost:     def.MPCost,
		Cooldown:   def.Cooldown,
		Element:    def.Element,
		Target:     target,
		Classes:    def.Classes,
		LearnLevel: def.LearnLevel,
		Effects:    make([]EffectSpec, 0, len(def.Effects)),
	}
	for _, e := range def.Effects {
		spec := EffectSpec{
			Type:              ParseEffectType(e.Type),
			RawType:           e.Type,
			Power:             e.Power,
			Scaling:           e.Scaling,
			ScalingMultiplier: e.ScalingMultiplier,
			Stat:              e.Stat,
			Value:             e.Value,
			Duration:          e.Duration,
			Condition:         e.Condition,
			Conditions:        e.Conditions,
		}
		if spec.Scaling != "" && spec.ScalingMultiplier == 0 {
			spec.ScalingMultiplier = 1
		}
		s.Effects = append(s.Effects, spec)
	}
	return s, nil
}
