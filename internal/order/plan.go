package order

import (
	"github.com/joseph-ayodele/sim-order-desk/internal/catalog"
	"github.com/joseph-ayodele/sim-order-desk/internal/entity"
)

// ResolvePlan returns the plan the draft should carry for its current request
// type and network: the selected plan when it is offered, otherwise the
// first-listed plan, otherwise "". Run it after every change to either field.
func ResolvePlan(d entity.OrderDraft, c catalog.Catalog) string {
	if c.Contains(d.RequestType, d.Network, d.SelectedPlan) {
		return d.SelectedPlan
	}
	return c.First(d.RequestType, d.Network)
}

// AvailablePlans lists the plans for the draft's current selection.
func AvailablePlans(d entity.OrderDraft, c catalog.Catalog) []string {
	return c.Plans(d.RequestType, d.Network)
}
