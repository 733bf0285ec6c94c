package building

import (
	"fmt"
	"strings"

	"github.com/Cemonix/TerminalColony/internal/resource"
)

// TypeID identifies one of the nine building slots every planet carries.
type TypeID string

const (
	TypeCommandCenter   TypeID = "command_center"
	TypeOrbitalShipyard TypeID = "orbital_shipyard"
	TypeResearchLab     TypeID = "research_lab"
	TypeFusionReactor   TypeID = "fusion_reactor"
	TypeGasExtractor    TypeID = "gas_extractor"
	TypeMineralMine     TypeID = "mineral_mine"
	TypeBatteryArray    TypeID = "battery_array"
	TypeGasTank         TypeID = "gas_tank"
	TypeMineralSilo     TypeID = "mineral_silo"
)

// AllTypes returns every building type in stable order.
func AllTypes() []TypeID {
	return []TypeID{
		TypeCommandCenter,
		TypeOrbitalShipyard,
		TypeResearchLab,
		TypeFusionReactor,
		TypeGasExtractor,
		TypeMineralMine,
		TypeBatteryArray,
		TypeGasTank,
		TypeMineralSilo,
	}
}

// producerResources binds each producer type to the resource it yields.
var producerResources = map[TypeID]resource.Resource{
	TypeFusionReactor: resource.Energy,
	TypeGasExtractor:  resource.Gas,
	TypeMineralMine:   resource.Minerals,
}

// storageResources binds each storage type to the resource it holds.
var storageResources = map[TypeID]resource.Resource{
	TypeBatteryArray: resource.Energy,
	TypeGasTank:      resource.Gas,
	TypeMineralSilo:  resource.Minerals,
}

// ProducerResource reports the resource a producer type yields.
func ProducerResource(id TypeID) (resource.Resource, bool) {
	r, ok := producerResources[id]
	return r, ok
}

// StorageResource reports the resource a storage type holds.
func StorageResource(id TypeID) (resource.Resource, bool) {
	r, ok := storageResources[id]
	return r, ok
}

// StorageTypeFor returns the storage slot bound to a resource.
func StorageTypeFor(r resource.Resource) (TypeID, bool) {
	switch r {
	case resource.Energy:
		return TypeBatteryArray, true
	case resource.Gas:
		return TypeGasTank, true
	case resource.Minerals:
		return TypeMineralSilo, true
	}
	return "", false
}

// ParseTypeID resolves a user-supplied building name against the closed type
// set. Matching is case-insensitive and ignores underscores, hyphens and
// spaces, so "commandcenter", "Command-Center" and "command_center" all
// resolve to TypeCommandCenter.
func ParseTypeID(name string) (TypeID, bool) {
	key := normalizeTypeName(name)
	for _, id := range AllTypes() {
		if normalizeTypeName(string(id)) == key {
			return id, true
		}
	}
	return "", false
}

func normalizeTypeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, " ", "")
}

// Building is the single dispatch surface shared by the three variants.
type Building interface {
	TypeID() TypeID
	Name() string
	Level() int
	MaxLevel() int

	// Upgrade moves the building one level up, recomputing any derived
	// field. It fails without mutating state when the maximum level is
	// reached or the per-level table has no entry for the new level.
	Upgrade() error
}

// base carries the level state machine shared by every variant.
type base struct {
	id  TypeID
	cfg *Config

	level int
}

func (b *base) TypeID() TypeID { return b.id }
func (b *base) Name() string   { return b.cfg.Name }
func (b *base) Level() int     { return b.level }
func (b *base) MaxLevel() int  { return b.cfg.MaxLevel }

// nextLevel reports the level an upgrade would reach without committing it.
func (b *base) nextLevel() (int, error) {
	if b.level >= b.cfg.MaxLevel {
		return 0, &MaxLevelError{Name: b.cfg.Name, Current: b.level, Max: b.cfg.MaxLevel}
	}
	return b.level + 1, nil
}

// Base is a pure leveled building with no economic effect.
type Base struct {
	base
}

func (b *Base) Upgrade() error {
	next, err := b.nextLevel()
	if err != nil {
		return err
	}
	b.level = next
	return nil
}

// Producer yields one bound resource at a rate derived from its level.
type Producer struct {
	base

	resource resource.Resource
	rate     int
}

func (p *Producer) Resource() resource.Resource { return p.resource }
func (p *Producer) Rate() int                   { return p.rate }

func (p *Producer) Upgrade() error {
	next, err := p.nextLevel()
	if err != nil {
		return err
	}
	if p.cfg.Production == nil {
		return fmt.Errorf("%s: no production table: %w", p.cfg.Name, ErrWrongConfiguration)
	}
	rate, ok := p.cfg.Production.RateAt(next)
	if !ok {
		return fmt.Errorf("%s: no production rate for level %d: %w", p.cfg.Name, next, ErrWrongConfiguration)
	}
	p.level = next
	p.rate = rate
	return nil
}

// Storage holds one bound resource up to a capacity derived from its level.
type Storage struct {
	base

	resource resource.Resource
	capacity int
	amount   int
}

func (s *Storage) Resource() resource.Resource { return s.resource }
func (s *Storage) Capacity() int               { return s.capacity }
func (s *Storage) Amount() int                 { return s.amount }

func (s *Storage) Upgrade() error {
	next, err := s.nextLevel()
	if err != nil {
		return err
	}
	if s.cfg.Storage == nil {
		return fmt.Errorf("%s: no storage table: %w", s.cfg.Name, ErrWrongConfiguration)
	}
	capacity, ok := s.cfg.Storage.CapacityAt(next)
	if !ok {
		return fmt.Errorf("%s: no storage capacity for level %d: %w", s.cfg.Name, next, ErrWrongConfiguration)
	}
	s.level = next
	s.capacity = capacity
	// a shrinking capacity table clamps the stored amount
	if s.amount > s.capacity {
		s.amount = s.capacity
	}
	return nil
}

// AddResource stores up to amount units, clamped to the free capacity, and
// returns how much was actually stored.
func (s *Storage) AddResource(amount int) int {
	if amount <= 0 {
		return 0
	}
	free := s.capacity - s.amount
	if amount > free {
		amount = free
	}
	s.amount += amount
	return amount
}

// Has reports whether at least amount units are stored.
func (s *Storage) Has(amount int) bool {
	return s.amount >= amount
}

// Spend removes amount units. It refuses to go negative.
func (s *Storage) Spend(amount int) bool {
	if amount < 0 || amount > s.amount {
		return false
	}
	s.amount -= amount
	return true
}

// New creates a level-0 building of the given type. The variant is chosen by
// the type's permanent resource binding, not by the configuration.
func New(id TypeID, cfg *Config) Building {
	b := base{id: id, cfg: cfg}
	if r, ok := producerResources[id]; ok {
		return &Producer{base: b, resource: r}
	}
	if r, ok := storageResources[id]; ok {
		return &Storage{base: b, resource: r}
	}
	return &Base{base: b}
}
