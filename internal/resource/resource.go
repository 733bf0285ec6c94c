package resource

// Resource is one of the three tradable commodities of the colony economy.
type Resource string

const (
	Energy   Resource = "energy"
	Minerals Resource = "minerals"
	Gas      Resource = "gas"
)

// All returns every resource in stable order.
func All() []Resource {
	return []Resource{Energy, Minerals, Gas}
}

func (r Resource) Valid() bool {
	switch r {
	case Energy, Minerals, Gas:
		return true
	}
	return false
}
