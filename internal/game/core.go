package game

import (
	"errors"
	"fmt"

	"github.com/Cemonix/TerminalColony/internal/building"
	"github.com/Cemonix/TerminalColony/internal/command"
	"github.com/Cemonix/TerminalColony/internal/planet"
	"github.com/Cemonix/TerminalColony/internal/player"
)

// Core owns all mutable game state: the turn counter, the players and the
// running flag. It consumes the command registry and the buildings table
// read-only. Callers serialize all mutating calls; there is no background
// work inside the core.
type Core struct {
	registry *command.Registry
	table    building.Table

	turn          int
	currentPlayer string
	players       map[string]*player.Player
	running       bool
}

// New creates a core at turn 1 with no players.
func New(registry *command.Registry, table building.Table) *Core {
	return &Core{
		registry: registry,
		table:    table,
		turn:     1,
		players:  make(map[string]*player.Player),
		running:  true,
	}
}

// Registry exposes the command registry for presentation layers that render
// help listings or parse input themselves.
func (c *Core) Registry() *command.Registry { return c.registry }

// AddPlayer registers a player. The first player added becomes the current
// player.
func (c *Core) AddPlayer(p *player.Player) error {
	if _, exists := c.players[p.Name()]; exists {
		return fmt.Errorf("player %q already exists", p.Name())
	}
	c.players[p.Name()] = p
	if c.currentPlayer == "" {
		c.currentPlayer = p.Name()
	}
	return nil
}

// SetCurrentPlayer switches the active player.
func (c *Core) SetCurrentPlayer(name string) error {
	if _, ok := c.players[name]; !ok {
		return fmt.Errorf("player %q not found", name)
	}
	c.currentPlayer = name
	return nil
}

// Execute parses raw input through the registry and dispatches the resolved
// command. It returns the user-facing outcome message.
func (c *Core) Execute(input string) (string, error) {
	cmd, err := c.registry.Parse(input)
	if err != nil {
		return "", err
	}
	return c.Dispatch(cmd)
}

// Dispatch mutates game state according to the command kind. Errors from the
// planet and building layers are surfaced unchanged.
func (c *Core) Dispatch(cmd command.Command) (string, error) {
	switch cmd := cmd.(type) {
	case command.Build:
		return c.executeBuild(cmd)
	case command.EndTurn:
		return c.executeEndTurn()
	case command.Status:
		return c.executeStatus()
	case command.Quit:
		c.running = false
		return "Quitting game.", nil
	case command.Help:
		return "Help requested.", nil
	case command.UnknownInternal:
		return "", fmt.Errorf("command %q has no execution logic: configuration and engine disagree", cmd.Name)
	default:
		return "", errors.New("unhandled command kind")
	}
}

func (c *Core) executeBuild(cmd command.Build) (string, error) {
	id, ok := building.ParseTypeID(cmd.Building)
	if !ok {
		return "", fmt.Errorf("building %q not recognized", cmd.Building)
	}

	p, err := c.current()
	if err != nil {
		return "", err
	}
	pl, ok := p.Planet(cmd.Planet)
	if !ok {
		return "", fmt.Errorf("planet %q not found", cmd.Planet)
	}

	cfg, ok := c.table.Get(id)
	if !ok {
		return "", fmt.Errorf("no configuration for building %s: %w", id, building.ErrWrongConfiguration)
	}

	if err := pl.Build(id, cfg); err != nil {
		return "", err
	}

	b, _ := pl.Building(id)
	return fmt.Sprintf("%s upgraded to level %d on %s.", cfg.Name, b.Level(), pl.Name()), nil
}

func (c *Core) executeEndTurn() (string, error) {
	p, err := c.current()
	if err != nil {
		return "", err
	}
	if err := p.ProcessTurnEnd(); err != nil {
		return "", err
	}
	msg := fmt.Sprintf("Turn %d ended. Resources generated on %d planet(s).", c.turn, p.PlanetCount())
	c.turn++
	return msg, nil
}

func (c *Core) current() (*player.Player, error) {
	p, ok := c.players[c.currentPlayer]
	if !ok {
		return nil, errors.New("no current player")
	}
	return p, nil
}

// Turn returns the current turn number, starting at 1.
func (c *Core) Turn() int { return c.turn }

// IsRunning reports whether the surrounding loop should keep going.
func (c *Core) IsRunning() bool { return c.running }

// CurrentPlayerName returns the active player's name.
func (c *Core) CurrentPlayerName() string { return c.currentPlayer }

// PlanetNames returns the current player's planet names in sorted order.
func (c *Core) PlanetNames() []string {
	p, err := c.current()
	if err != nil {
		return nil
	}
	return p.PlanetNames()
}

// PlanetCount returns how many planets the current player owns.
func (c *Core) PlanetCount() int {
	p, err := c.current()
	if err != nil {
		return 0
	}
	return p.PlanetCount()
}

// PlanetStatus returns a snapshot of one of the current player's planets.
func (c *Core) PlanetStatus(name string) (planet.Status, bool) {
	p, err := c.current()
	if err != nil {
		return planet.Status{}, false
	}
	pl, ok := p.Planet(name)
	if !ok {
		return planet.Status{}, false
	}
	return pl.Status(p.PlanetCount()), true
}
