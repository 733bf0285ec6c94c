package planet

import (
	"github.com/Cemonix/TerminalColony/internal/building"
	"github.com/Cemonix/TerminalColony/internal/resource"
)

// Status is a read-only snapshot used by render frames.
type Status struct {
	Name        string                              `json:"name"`
	Buildings   []BuildingStatus                    `json:"buildings"`
	Production  map[resource.Resource]int           `json:"production"`
	Storage     map[resource.Resource]StorageStatus `json:"storage"`
	PlanetCount int                                 `json:"planet_count"`
}

type BuildingStatus struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type StorageStatus struct {
	Amount   int `json:"amount"`
	Capacity int `json:"capacity"`
}

// Status combines buildings, production and storage into one snapshot.
// totalPlanetCount is the caller-supplied sibling count, used only for
// display cycling.
func (p *Planet) Status(totalPlanetCount int) Status {
	st := Status{
		Name:        p.name,
		Buildings:   make([]BuildingStatus, 0, len(building.AllTypes())),
		Production:  p.ProductionRates(),
		Storage:     make(map[resource.Resource]StorageStatus, 3),
		PlanetCount: totalPlanetCount,
	}
	for _, id := range building.AllTypes() {
		b := p.buildings[id]
		st.Buildings = append(st.Buildings, BuildingStatus{Name: b.Name(), Level: b.Level()})
	}
	for _, r := range resource.All() {
		store, err := p.storageFor(r)
		if err != nil {
			continue
		}
		st.Storage[r] = StorageStatus{Amount: store.Amount(), Capacity: store.Capacity()}
	}
	return st
}
