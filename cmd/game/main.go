package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/Cemonix/TerminalColony/internal/building"
	"github.com/Cemonix/TerminalColony/internal/command"
	"github.com/Cemonix/TerminalColony/internal/config"
	"github.com/Cemonix/TerminalColony/internal/game"
	"github.com/Cemonix/TerminalColony/internal/planet"
	"github.com/Cemonix/TerminalColony/internal/player"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	core, err := seedCore(cfg)
	if err != nil {
		log.Fatalf("set up game: %v", err)
	}

	fmt.Printf("Terminal Colony - %s, turn %d. Type 'help' for commands.\n",
		core.CurrentPlayerName(), core.Turn())

	scanner := bufio.NewScanner(os.Stdin)
	for core.IsRunning() {
		fmt.Printf("%s > ", core.CurrentPlayerName())
		if !scanner.Scan() {
			break
		}

		cmd, err := core.Registry().Parse(scanner.Text())
		if err != nil {
			fmt.Println(err)
			continue
		}

		// Help listings are rendered here; the engine only acknowledges.
		if help, ok := cmd.(command.Help); ok {
			printHelp(core.Registry(), help.Topic)
			continue
		}

		msg, err := core.Dispatch(cmd)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if msg != "" {
			fmt.Println(msg)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}
}

func seedCore(cfg config.Config) (*game.Core, error) {
	table, err := building.LoadTable(cfg.BuildingsPath)
	if err != nil {
		return nil, err
	}
	registry, err := command.LoadRegistry(cfg.CommandsPath)
	if err != nil {
		return nil, err
	}

	core := game.New(registry, table)
	p := player.New(cfg.Player.Name)
	for _, name := range cfg.Player.Planets {
		pl, err := planet.New(name, table)
		if err != nil {
			return nil, err
		}
		if err := p.AddPlanet(pl); err != nil {
			return nil, err
		}
	}
	if err := core.AddPlayer(p); err != nil {
		return nil, err
	}
	return core, nil
}

func printHelp(registry *command.Registry, topic string) {
	defs := registry.Definitions()
	if topic != "" {
		named, ok := registry.Lookup(topic)
		if !ok {
			fmt.Printf("command %q not found\n", topic)
			return
		}
		defs = named
	}
	for _, def := range defs {
		fmt.Printf("  %-28s %s\n", def.Usage(), def.Description)
	}
}
