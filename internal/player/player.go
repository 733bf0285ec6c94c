package player

import (
	"fmt"
	"sort"

	"github.com/Cemonix/TerminalColony/internal/planet"
)

// Player owns a set of planets keyed by their unique names.
type Player struct {
	name    string
	planets map[string]*planet.Planet
}

func New(name string) *Player {
	return &Player{
		name:    name,
		planets: make(map[string]*planet.Planet),
	}
}

func (p *Player) Name() string { return p.name }

// AddPlanet registers a planet under its name.
func (p *Player) AddPlanet(pl *planet.Planet) error {
	if _, exists := p.planets[pl.Name()]; exists {
		return fmt.Errorf("player %s already owns a planet named %q", p.name, pl.Name())
	}
	p.planets[pl.Name()] = pl
	return nil
}

// Planet looks up a planet by name.
func (p *Player) Planet(name string) (*planet.Planet, bool) {
	pl, ok := p.planets[name]
	return pl, ok
}

// PlanetNames returns the owned planet names in sorted order.
func (p *Player) PlanetNames() []string {
	names := make([]string, 0, len(p.planets))
	for name := range p.planets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Player) PlanetCount() int { return len(p.planets) }

// ProcessTurnEnd generates resources on every owned planet in name order.
// The first failure aborts the loop and propagates; planets already iterated
// keep their generated resources.
func (p *Player) ProcessTurnEnd() error {
	for _, name := range p.PlanetNames() {
		if err := p.planets[name].GenerateResources(); err != nil {
			return fmt.Errorf("planet %s: %w", name, err)
		}
	}
	return nil
}
