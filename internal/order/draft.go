// Package order holds the derivation rules for a single SIM order draft:
// plan consistency, pricing, reconciliation of extracted fields, validation
// and the outbound message format. Every function is pure; callers own the draft.
package order

import (
	"github.com/joseph-ayodele/sim-order-desk/constants"
	"github.com/joseph-ayodele/sim-order-desk/internal/catalog"
	"github.com/joseph-ayodele/sim-order-desk/internal/entity"
)

// NewDraft returns a draft with the default selections and the first plan
// available for them.
func NewDraft(c catalog.Catalog) entity.OrderDraft {
	d := entity.OrderDraft{
		RequestType:   constants.RequestNew,
		Network:       constants.NetworkAirtel,
		PaymentMethod: constants.PaymentCashOnDelivery,
	}
	d.SelectedPlan = ResolvePlan(d, c)
	return d
}
