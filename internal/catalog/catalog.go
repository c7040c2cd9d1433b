package catalog

import (
	"slices"

	"github.com/joseph-ayodele/sim-order-desk/constants"
)

// Catalog maps a request type and network to the plan prices on offer, in the
// order they are presented. A missing pair means no plans are available.
type Catalog map[constants.RequestType]map[constants.Network][]string

// Default returns the plan table the store currently sells.
func Default() Catalog {
	return Catalog{
		constants.RequestNew: {
			constants.NetworkAirtel: {"399", "449", "599"},
			constants.NetworkJio:    {"349"},
			constants.NetworkVi:     {"299", "399"},
		},
		constants.RequestMNP: {
			constants.NetworkAirtel: {"399", "449"},
			constants.NetworkJio:    {"349", "449"},
			constants.NetworkVi:     {"299"},
		},
		constants.RequestReplacement: {
			constants.NetworkAirtel: {"199"},
			constants.NetworkVi:     {"149"},
		},
	}
}

// Plans returns a copy of the available plans for the pair, or nil.
func (c Catalog) Plans(rt constants.RequestType, nw constants.Network) []string {
	byNetwork, ok := c[rt]
	if !ok {
		return nil
	}
	return slices.Clone(byNetwork[nw])
}

// Contains reports whether plan is offered for the pair.
func (c Catalog) Contains(rt constants.RequestType, nw constants.Network, plan string) bool {
	if plan == "" {
		return false
	}
	return slices.Contains(c[rt][nw], plan)
}

// First returns the first-listed plan for the pair, or "" when none exist.
func (c Catalog) First(rt constants.RequestType, nw constants.Network) string {
	plans := c[rt][nw]
	if len(plans) == 0 {
		return ""
	}
	return plans[0]
}
