package building

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Cemonix/TerminalColony/internal/resource"
)

// Config is the static per-type table a building derives its numbers from.
// All per-level arrays are validated to length MaxLevel at load time: the
// value held at level L (L >= 1) sits at index L-1, and the cost of going
// from level L to L+1 sits at index L. Level 0 always derives to zero.
type Config struct {
	Name        string       `yaml:"name"`
	MaxLevel    int          `yaml:"max_level"`
	UpgradeCost UpgradeCost  `yaml:"upgrade_cost"`
	Production  *Production  `yaml:"production,omitempty"`
	Storage     *StorageSpec `yaml:"storage,omitempty"`
}

type UpgradeCost struct {
	Energy   []int `yaml:"energy"`
	Minerals []int `yaml:"minerals"`
	Gas      []int `yaml:"gas"`
}

// At returns the per-resource cost of upgrading from level to level+1.
// An empty component array means the component costs nothing.
func (c UpgradeCost) At(level int) (map[resource.Resource]int, bool) {
	cost := make(map[resource.Resource]int, 3)
	for _, entry := range []struct {
		res   resource.Resource
		table []int
	}{
		{resource.Energy, c.Energy},
		{resource.Minerals, c.Minerals},
		{resource.Gas, c.Gas},
	} {
		if len(entry.table) == 0 {
			cost[entry.res] = 0
			continue
		}
		if level < 0 || level >= len(entry.table) {
			return nil, false
		}
		cost[entry.res] = entry.table[level]
	}
	return cost, true
}

type Production struct {
	Resource     resource.Resource `yaml:"resource"`
	RatePerLevel []int             `yaml:"rate_per_level"`
}

// RateAt returns the production rate held at the given level.
func (p *Production) RateAt(level int) (int, bool) {
	return perLevelValue(p.RatePerLevel, level)
}

type StorageSpec struct {
	Resource         resource.Resource `yaml:"resource"`
	CapacityPerLevel []int             `yaml:"capacity_per_level"`
}

// CapacityAt returns the storage capacity held at the given level.
func (s *StorageSpec) CapacityAt(level int) (int, bool) {
	return perLevelValue(s.CapacityPerLevel, level)
}

func perLevelValue(table []int, level int) (int, bool) {
	if level == 0 {
		return 0, true
	}
	idx := level - 1
	if idx < 0 || idx >= len(table) {
		return 0, false
	}
	return table[idx], true
}

// Table maps every building type to its configuration. It is loaded once at
// startup and consumed read-only afterwards.
type Table map[TypeID]*Config

func (t Table) Get(id TypeID) (*Config, bool) {
	cfg, ok := t[id]
	return cfg, ok
}

type buildingsFile struct {
	Buildings map[TypeID]*Config `yaml:"buildings"`
}

// LoadTable reads and validates the buildings configuration file.
func LoadTable(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read buildings config: %w", err)
	}
	var file buildingsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse buildings config: %w", err)
	}
	table := Table(file.Buildings)
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate enforces the load-time invariants: every type is known and
// present, every non-empty per-level array matches max_level, and producer
// and storage types carry tables bound to their permanent resource.
func (t Table) Validate() error {
	for id := range t {
		if _, ok := ParseTypeID(string(id)); !ok {
			return fmt.Errorf("unknown building type %q", id)
		}
	}
	for _, id := range AllTypes() {
		cfg, ok := t[id]
		if !ok || cfg == nil {
			return fmt.Errorf("missing configuration for building %q", id)
		}
		if err := validateConfig(id, cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateConfig(id TypeID, cfg *Config) error {
	if cfg.Name == "" {
		return fmt.Errorf("building %s: name is required", id)
	}
	if cfg.MaxLevel < 0 {
		return fmt.Errorf("building %s: max_level must not be negative", id)
	}

	if err := costLength(id, "energy", cfg.UpgradeCost.Energy, cfg.MaxLevel, false); err != nil {
		return err
	}
	if err := costLength(id, "minerals", cfg.UpgradeCost.Minerals, cfg.MaxLevel, false); err != nil {
		return err
	}
	if err := costLength(id, "gas", cfg.UpgradeCost.Gas, cfg.MaxLevel, true); err != nil {
		return err
	}

	if res, ok := producerResources[id]; ok {
		if cfg.Production == nil {
			return fmt.Errorf("building %s: production table is required", id)
		}
		if cfg.Production.Resource != res {
			return fmt.Errorf("building %s: production resource %q does not match bound resource %q",
				id, cfg.Production.Resource, res)
		}
		if len(cfg.Production.RatePerLevel) != cfg.MaxLevel {
			return fmt.Errorf("building %s: rate_per_level has %d entries, want max_level %d",
				id, len(cfg.Production.RatePerLevel), cfg.MaxLevel)
		}
	} else if cfg.Production != nil {
		return fmt.Errorf("building %s: unexpected production table", id)
	}

	if res, ok := storageResources[id]; ok {
		if cfg.Storage == nil {
			return fmt.Errorf("building %s: storage table is required", id)
		}
		if cfg.Storage.Resource != res {
			return fmt.Errorf("building %s: storage resource %q does not match bound resource %q",
				id, cfg.Storage.Resource, res)
		}
		if len(cfg.Storage.CapacityPerLevel) != cfg.MaxLevel {
			return fmt.Errorf("building %s: capacity_per_level has %d entries, want max_level %d",
				id, len(cfg.Storage.CapacityPerLevel), cfg.MaxLevel)
		}
	} else if cfg.Storage != nil {
		return fmt.Errorf("building %s: unexpected storage table", id)
	}

	return nil
}

func costLength(id TypeID, component string, table []int, maxLevel int, optional bool) error {
	if optional && len(table) == 0 {
		return nil
	}
	if len(table) != maxLevel {
		return fmt.Errorf("building %s: %s cost has %d entries, want max_level %d",
			id, component, len(table), maxLevel)
	}
	return nil
}
