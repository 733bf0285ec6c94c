package planet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cemonix/TerminalColony/internal/building"
	"github.com/Cemonix/TerminalColony/internal/resource"
)

// testTable builds a three-level table with free upgrades, mirroring the
// shipped shape: producers yield 10/20/30, storages hold 1000/2000/3000.
func testTable() building.Table {
	table := make(building.Table, len(building.AllTypes()))
	for _, id := range building.AllTypes() {
		cfg := &building.Config{Name: string(id), MaxLevel: 3}
		if r, ok := building.ProducerResource(id); ok {
			cfg.Production = &building.Production{Resource: r, RatePerLevel: []int{10, 20, 30}}
		}
		if r, ok := building.StorageResource(id); ok {
			cfg.Storage = &building.StorageSpec{Resource: r, CapacityPerLevel: []int{1000, 2000, 3000}}
		}
		table[id] = cfg
	}
	return table
}

func testPlanet(t *testing.T) *Planet {
	t.Helper()
	p, err := New("alpha", testTable())
	require.NoError(t, err)
	return p
}

// raiseTo upgrades a slot directly, bypassing cost checks.
func raiseTo(t *testing.T, p *Planet, id building.TypeID, level int) {
	t.Helper()
	b, ok := p.Building(id)
	require.True(t, ok)
	for b.Level() < level {
		require.NoError(t, b.Upgrade())
	}
}

func storageOn(t *testing.T, p *Planet, id building.TypeID) *building.Storage {
	t.Helper()
	b, ok := p.Building(id)
	require.True(t, ok)
	store, ok := b.(*building.Storage)
	require.True(t, ok)
	return store
}

func TestNew_CreatesEverySlotAtLevelZero(t *testing.T) {
	p := testPlanet(t)
	for _, id := range building.AllTypes() {
		b, ok := p.Building(id)
		require.True(t, ok, "missing slot %s", id)
		assert.Equal(t, 0, b.Level())
	}
}

func TestNew_RejectsEmptyName(t *testing.T) {
	_, err := New("", testTable())
	require.Error(t, err)
}

func TestNew_RejectsIncompleteTable(t *testing.T) {
	table := testTable()
	delete(table, building.TypeGasTank)
	_, err := New("alpha", table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing configuration")
}

func TestProductionRates_AllZeroAtLevelZero(t *testing.T) {
	p := testPlanet(t)
	rates := p.ProductionRates()
	for _, r := range resource.All() {
		assert.Equal(t, 0, rates[r])
	}
}

func TestProductionRates_ReflectProducerLevels(t *testing.T) {
	p := testPlanet(t)
	raiseTo(t, p, building.TypeMineralMine, 1)
	raiseTo(t, p, building.TypeFusionReactor, 2)

	rates := p.ProductionRates()
	assert.Equal(t, 10, rates[resource.Minerals])
	assert.Equal(t, 20, rates[resource.Energy])
	assert.Equal(t, 0, rates[resource.Gas])
}

func TestGenerateResources_StoresOneTurnOfProduction(t *testing.T) {
	p := testPlanet(t)
	raiseTo(t, p, building.TypeMineralSilo, 1)
	raiseTo(t, p, building.TypeMineralMine, 1)

	require.NoError(t, p.GenerateResources())
	assert.Equal(t, 10, storageOn(t, p, building.TypeMineralSilo).Amount())
}

func TestGenerateResources_ClampedToCapacity(t *testing.T) {
	p := testPlanet(t)
	raiseTo(t, p, building.TypeMineralSilo, 1)
	raiseTo(t, p, building.TypeMineralMine, 1)

	for i := 0; i < 101; i++ {
		require.NoError(t, p.GenerateResources())
	}
	assert.Equal(t, 1000, storageOn(t, p, building.TypeMineralSilo).Amount())
}

func TestGenerateResources_LostWithoutStorage(t *testing.T) {
	p := testPlanet(t)
	raiseTo(t, p, building.TypeMineralMine, 1)

	require.NoError(t, p.GenerateResources())
	assert.Equal(t, 0, storageOn(t, p, building.TypeMineralSilo).Amount())
}

func TestBuild_FreeUpgradeRaisesLevel(t *testing.T) {
	p := testPlanet(t)
	table := testTable()
	cfg, _ := table.Get(building.TypeCommandCenter)

	require.NoError(t, p.Build(building.TypeCommandCenter, cfg))
	b, _ := p.Building(building.TypeCommandCenter)
	assert.Equal(t, 1, b.Level())
}

func TestBuild_AtMaxLevelFails(t *testing.T) {
	p := testPlanet(t)
	table := testTable()
	cfg, _ := table.Get(building.TypeCommandCenter)
	raiseTo(t, p, building.TypeCommandCenter, 3)

	err := p.Build(building.TypeCommandCenter, cfg)
	var maxErr *building.MaxLevelError
	require.ErrorAs(t, err, &maxErr)
	assert.Equal(t, 3, maxErr.Current)
}

func TestBuild_InsufficientResources(t *testing.T) {
	p := testPlanet(t)
	table := testTable()
	cfg, _ := table.Get(building.TypeMineralMine)
	cfg.UpgradeCost = building.UpgradeCost{Minerals: []int{50, 100, 200}}

	err := p.Build(building.TypeMineralMine, cfg)
	var insErr *InsufficientResourcesError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, resource.Minerals, insErr.Resource)
	assert.Equal(t, 50, insErr.Required)
	assert.Equal(t, 0, insErr.Available)

	b, _ := p.Building(building.TypeMineralMine)
	assert.Equal(t, 0, b.Level(), "failed build must not change state")
}

func TestBuild_DebitsCheckedCost(t *testing.T) {
	p := testPlanet(t)
	table := testTable()
	cfg, _ := table.Get(building.TypeMineralMine)
	cfg.UpgradeCost = building.UpgradeCost{Minerals: []int{50, 100, 200}}

	raiseTo(t, p, building.TypeMineralSilo, 1)
	storageOn(t, p, building.TypeMineralSilo).AddResource(120)

	require.NoError(t, p.Build(building.TypeMineralMine, cfg))
	b, _ := p.Building(building.TypeMineralMine)
	assert.Equal(t, 1, b.Level())
	assert.Equal(t, 70, storageOn(t, p, building.TypeMineralSilo).Amount())

	// second upgrade needs 100, only 70 remain
	err := p.Build(building.TypeMineralMine, cfg)
	var insErr *InsufficientResourcesError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, 70, storageOn(t, p, building.TypeMineralSilo).Amount())
}

func TestBuild_MultiResourceCost(t *testing.T) {
	p := testPlanet(t)
	table := testTable()
	cfg, _ := table.Get(building.TypeOrbitalShipyard)
	cfg.UpgradeCost = building.UpgradeCost{
		Energy:   []int{30, 60, 90},
		Minerals: []int{40, 80, 120},
	}

	raiseTo(t, p, building.TypeBatteryArray, 1)
	raiseTo(t, p, building.TypeMineralSilo, 1)
	storageOn(t, p, building.TypeBatteryArray).AddResource(30)
	storageOn(t, p, building.TypeMineralSilo).AddResource(39)

	err := p.Build(building.TypeOrbitalShipyard, cfg)
	var insErr *InsufficientResourcesError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, resource.Minerals, insErr.Resource)
	assert.Equal(t, 30, storageOn(t, p, building.TypeBatteryArray).Amount(),
		"partial affordability must not debit anything")

	storageOn(t, p, building.TypeMineralSilo).AddResource(1)
	require.NoError(t, p.Build(building.TypeOrbitalShipyard, cfg))
	assert.Equal(t, 0, storageOn(t, p, building.TypeBatteryArray).Amount())
	assert.Equal(t, 0, storageOn(t, p, building.TypeMineralSilo).Amount())
}

func TestBuild_MissingCostEntryIsConfigurationError(t *testing.T) {
	p := testPlanet(t)
	table := testTable()
	cfg, _ := table.Get(building.TypeResearchLab)
	cfg.MaxLevel = 4
	cfg.UpgradeCost = building.UpgradeCost{Energy: []int{10, 20, 30}}
	raiseTo(t, p, building.TypeResearchLab, 3)

	err := p.Build(building.TypeResearchLab, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, building.ErrWrongConfiguration))
}

func TestBuild_DebitFailureAfterCapacityClamp(t *testing.T) {
	table := testTable()
	cfg, _ := table.Get(building.TypeMineralSilo)
	// the silo pays for its own upgrade out of a shrinking capacity table
	cfg.Storage.CapacityPerLevel = []int{100, 30, 30}
	cfg.UpgradeCost = building.UpgradeCost{Minerals: []int{0, 50, 50}}
	p, err := New("alpha", table)
	require.NoError(t, err)

	require.NoError(t, p.Build(building.TypeMineralSilo, cfg))
	storageOn(t, p, building.TypeMineralSilo).AddResource(60)

	err = p.Build(building.TypeMineralSilo, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, building.ErrWrongConfiguration))
	assert.Contains(t, err.Error(), "debit of 50 minerals failed")
	assert.Equal(t, 30, storageOn(t, p, building.TypeMineralSilo).Amount())
}

func TestStatus_Snapshot(t *testing.T) {
	p := testPlanet(t)
	raiseTo(t, p, building.TypeMineralMine, 2)
	raiseTo(t, p, building.TypeMineralSilo, 1)
	storageOn(t, p, building.TypeMineralSilo).AddResource(75)

	st := p.Status(2)
	assert.Equal(t, "alpha", st.Name)
	assert.Equal(t, 2, st.PlanetCount)
	assert.Len(t, st.Buildings, len(building.AllTypes()))
	assert.Equal(t, 20, st.Production[resource.Minerals])
	assert.Equal(t, StorageStatus{Amount: 75, Capacity: 1000}, st.Storage[resource.Minerals])
	assert.Equal(t, StorageStatus{Amount: 0, Capacity: 0}, st.Storage[resource.Energy])
}
