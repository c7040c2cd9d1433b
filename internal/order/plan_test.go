package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/sim-order-desk/constants"
	"github.com/joseph-ayodele/sim-order-desk/internal/catalog"
	"github.com/joseph-ayodele/sim-order-desk/internal/entity"
)

func TestResolvePlanKeepsMember(t *testing.T) {
	d := entity.OrderDraft{RequestType: constants.RequestNew, Network: constants.NetworkAirtel, SelectedPlan: "449"}
	assert.Equal(t, "449", ResolvePlan(d, catalog.Default()))
}

func TestResolvePlanFallsBackToFirstListed(t *testing.T) {
	d := entity.OrderDraft{RequestType: constants.RequestNew, Network: constants.NetworkVi, SelectedPlan: "599"}
	assert.Equal(t, "299", ResolvePlan(d, catalog.Default()))
}

func TestResolvePlanEmptyWhenNoPlans(t *testing.T) {
	d := entity.OrderDraft{RequestType: constants.RequestReplacement, Network: constants.NetworkJio, SelectedPlan: "349"}
	assert.Equal(t, "", ResolvePlan(d, catalog.Default()))
}

func TestResolvePlanAlwaysInCatalog(t *testing.T) {
	c := catalog.Default()
	candidates := []string{"", "349", "399", "149", "garbage"}

	for _, rt := range constants.RequestTypes() {
		for _, nw := range constants.Networks() {
			available := c.Plans(rt, nw)
			for _, plan := range candidates {
				d := entity.OrderDraft{RequestType: rt, Network: nw, SelectedPlan: plan}
				got := ResolvePlan(d, c)
				if len(available) == 0 {
					assert.Equal(t, "", got, "%s/%s plan=%q", rt, nw, plan)
				} else {
					assert.Contains(t, available, got, "%s/%s plan=%q", rt, nw, plan)
				}
			}
		}
	}
}

func TestResolvePlanIdempotent(t *testing.T) {
	c := catalog.Default()
	d := entity.OrderDraft{RequestType: constants.RequestMNP, Network: constants.NetworkJio, SelectedPlan: "999"}

	d.SelectedPlan = ResolvePlan(d, c)
	first := d
	d.SelectedPlan = ResolvePlan(d, c)

	assert.Equal(t, first, d)
	assert.Equal(t, "349", d.SelectedPlan)
}

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft(catalog.Default())

	assert.Equal(t, constants.RequestNew, d.RequestType)
	assert.Equal(t, constants.NetworkAirtel, d.Network)
	assert.Equal(t, constants.PaymentCashOnDelivery, d.PaymentMethod)
	assert.Equal(t, "399", d.SelectedPlan)
}
