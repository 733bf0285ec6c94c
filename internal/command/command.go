package command

// Command is a resolved, arity-checked player command ready for dispatch.
// The set of kinds is closed; the engine switches over the concrete types.
type Command interface {
	isCommand()
}

// Help asks for command listings. Topic is empty for the full listing.
type Help struct {
	Topic string
}

// Status asks for a read-only snapshot of the current player's planets.
type Status struct{}

// Build asks to upgrade one building on one planet. Both fields are raw user
// text; the engine resolves them.
type Build struct {
	Building string
	Planet   string
}

// EndTurn advances the simulation by one turn.
type EndTurn struct{}

// Quit stops the game loop.
type Quit struct{}

// UnknownInternal marks a configured command with no execution logic. It
// indicates a configuration/engine mismatch, never well-formed input.
type UnknownInternal struct {
	Name string
}

func (Help) isCommand()            {}
func (Status) isCommand()          {}
func (Build) isCommand()           {}
func (EndTurn) isCommand()         {}
func (Quit) isCommand()            {}
func (UnknownInternal) isCommand() {}
