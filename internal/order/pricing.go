package order

import (
	"strconv"
	"strings"

	"github.com/joseph-ayodele/sim-order-desk/internal/entity"
)

// PlanAmount parses a plan price. Empty or malformed plans count as 0 so an
// incomplete draft still prices; the validator reports the missing plan.
func PlanAmount(plan string) int {
	n, err := strconv.Atoi(strings.TrimSpace(plan))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ComputeTotal is plan amount plus the delivery charge.
func ComputeTotal(plan string, deliveryCharge int) int {
	return PlanAmount(plan) + deliveryCharge
}

// PriceQuote fills the amount fields of a quote; payment targets are added by the caller.
func PriceQuote(d entity.OrderDraft, deliveryCharge int) entity.Quote {
	return entity.Quote{
		PlanAmount:     PlanAmount(d.SelectedPlan),
		DeliveryCharge: deliveryCharge,
		Total:          ComputeTotal(d.SelectedPlan, deliveryCharge),
	}
}
