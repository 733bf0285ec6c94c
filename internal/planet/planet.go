package planet

import (
	"errors"
	"fmt"

	"github.com/Cemonix/TerminalColony/internal/building"
	"github.com/Cemonix/TerminalColony/internal/resource"
)

// Defensive error kinds. A planet always carries every building slot, so
// these only fire on a structurally broken planet; they propagate instead of
// panicking.
var (
	ErrBuildingNotBuilt      = errors.New("building not built")
	ErrIncorrectBuildingType = errors.New("incorrect building type")
)

// InsufficientResourcesError reports the first cost component the colony
// cannot cover.
type InsufficientResourcesError struct {
	Resource  resource.Resource
	Required  int
	Available int
}

func (e *InsufficientResourcesError) Error() string {
	return fmt.Sprintf("insufficient %s: need %d, have %d", e.Resource, e.Required, e.Available)
}

// Planet owns exactly one building per type. Slots start at level 0; a planet
// never lacks a slot, it only has unbuilt buildings.
type Planet struct {
	name      string
	buildings map[building.TypeID]building.Building
}

// New creates a planet with all building slots at level 0. The table must
// carry a configuration for every type.
func New(name string, table building.Table) (*Planet, error) {
	if name == "" {
		return nil, errors.New("planet name is required")
	}
	buildings := make(map[building.TypeID]building.Building, len(building.AllTypes()))
	for _, id := range building.AllTypes() {
		cfg, ok := table.Get(id)
		if !ok {
			return nil, fmt.Errorf("planet %s: missing configuration for building %q", name, id)
		}
		buildings[id] = building.New(id, cfg)
	}
	return &Planet{name: name, buildings: buildings}, nil
}

func (p *Planet) Name() string { return p.name }

// Building returns the slot for a type.
func (p *Planet) Building(id building.TypeID) (building.Building, bool) {
	b, ok := p.buildings[id]
	return b, ok
}

// ProductionRates sums producer output per resource. Every resource is
// present in the result, defaulting to 0.
func (p *Planet) ProductionRates() map[resource.Resource]int {
	rates := make(map[resource.Resource]int, 3)
	for _, r := range resource.All() {
		rates[r] = 0
	}
	for _, b := range p.buildings {
		if prod, ok := b.(*building.Producer); ok {
			rates[prod.Resource()] += prod.Rate()
		}
	}
	return rates
}

// GenerateResources applies one turn of production, clamping each resource
// to its storage capacity.
func (p *Planet) GenerateResources() error {
	rates := p.ProductionRates()
	for _, r := range resource.All() {
		rate := rates[r]
		if rate <= 0 {
			continue
		}
		store, err := p.storageFor(r)
		if err != nil {
			return err
		}
		store.AddResource(rate)
	}
	return nil
}

func (p *Planet) storageFor(r resource.Resource) (*building.Storage, error) {
	id, ok := building.StorageTypeFor(r)
	if !ok {
		return nil, fmt.Errorf("planet %s: no storage type for %s: %w", p.name, r, ErrIncorrectBuildingType)
	}
	b, ok := p.buildings[id]
	if !ok {
		return nil, fmt.Errorf("planet %s: %s slot: %w", p.name, id, ErrBuildingNotBuilt)
	}
	store, ok := b.(*building.Storage)
	if !ok {
		return nil, fmt.Errorf("planet %s: %s slot: %w", p.name, id, ErrIncorrectBuildingType)
	}
	return store, nil
}

// Build upgrades one building if the next level's cost is covered by the
// stored resources, debiting the checked amounts on success. A failed build
// leaves the planet untouched.
func (p *Planet) Build(id building.TypeID, cfg *building.Config) error {
	b, ok := p.buildings[id]
	if !ok {
		return fmt.Errorf("planet %s: %s slot: %w", p.name, id, ErrBuildingNotBuilt)
	}
	if b.Level() >= cfg.MaxLevel {
		return &building.MaxLevelError{Name: cfg.Name, Current: b.Level(), Max: cfg.MaxLevel}
	}

	cost, ok := cfg.UpgradeCost.At(b.Level())
	if !ok {
		return fmt.Errorf("%s: no upgrade cost for level %d: %w", cfg.Name, b.Level()+1, building.ErrWrongConfiguration)
	}

	stores := make(map[resource.Resource]*building.Storage, len(cost))
	for _, r := range resource.All() {
		required := cost[r]
		if required <= 0 {
			continue
		}
		store, err := p.storageFor(r)
		if err != nil {
			return err
		}
		if !store.Has(required) {
			return &InsufficientResourcesError{Resource: r, Required: required, Available: store.Amount()}
		}
		stores[r] = store
	}

	if err := b.Upgrade(); err != nil {
		return err
	}
	for r, store := range stores {
		// the upgrade itself can clamp a paying storage below the
		// checked amount when its capacity table shrinks
		if !store.Spend(cost[r]) {
			return fmt.Errorf("planet %s: debit of %d %s failed, %d stored after upgrade: %w",
				p.name, cost[r], r, store.Amount(), building.ErrWrongConfiguration)
		}
	}
	return nil
}
