package game

import (
	"fmt"
	"strings"

	"github.com/Cemonix/TerminalColony/internal/planet"
	"github.com/Cemonix/TerminalColony/internal/resource"
)

func (c *Core) executeStatus() (string, error) {
	p, err := c.current()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Turn %d - %s\n", c.turn, p.Name())
	names := p.PlanetNames()
	for i, name := range names {
		pl, _ := p.Planet(name)
		writePlanetStatus(&sb, pl.Status(len(names)), i+1)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func writePlanetStatus(sb *strings.Builder, st planet.Status, ordinal int) {
	fmt.Fprintf(sb, "Planet %s (%d/%d)\n", st.Name, ordinal, st.PlanetCount)
	for _, b := range st.Buildings {
		fmt.Fprintf(sb, "  %-18s level %d\n", b.Name, b.Level)
	}
	for _, r := range resource.All() {
		line := fmt.Sprintf("  %-18s +%d/turn", r, st.Production[r])
		if store, ok := st.Storage[r]; ok {
			line += fmt.Sprintf(", stored %d/%d", store.Amount, store.Capacity)
		}
		sb.WriteString(line + "\n")
	}
}
