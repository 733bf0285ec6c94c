package main

import (
	"log"
	"net/http"

	"github.com/Cemonix/TerminalColony/internal/building"
	"github.com/Cemonix/TerminalColony/internal/command"
	"github.com/Cemonix/TerminalColony/internal/config"
	"github.com/Cemonix/TerminalColony/internal/game"
	"github.com/Cemonix/TerminalColony/internal/httpmw"
	"github.com/Cemonix/TerminalColony/internal/planet"
	"github.com/Cemonix/TerminalColony/internal/player"
	"github.com/Cemonix/TerminalColony/internal/serverapp"
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

	handler, err := serverapp.NewHandler(serverapp.Options{
		Core:   core,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}
	handler = httpmw.Chain(handler,
		httpmw.WithRequestID,
		httpmw.WithRecover(log.Default()),
		httpmw.WithAccessLog(log.Default()),
	)

	log.Printf("terminal-colony listening on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, handler))
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
