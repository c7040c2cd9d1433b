package order

import (
	"strings"

	"github.com/joseph-ayodele/sim-order-desk/constants"
	"github.com/joseph-ayodele/sim-order-desk/internal/catalog"
	"github.com/joseph-ayodele/sim-order-desk/internal/entity"
	"github.com/joseph-ayodele/sim-order-desk/internal/llm"
)

// Field names shared by the reconciler, the validator and log output.
const (
	FieldCustomerName         = "customerName"
	FieldMobileNumber         = "mobileNumber"
	FieldRequestType          = "requestType"
	FieldNetwork              = "network"
	FieldSelectedPlan         = "selectedPlan"
	FieldAddress              = "address"
	FieldPaymentMethod        = "paymentMethod"
	FieldTransactionReference = "transactionReference"
)

// Reconcile merges extracted fields into d. A field is applied only when the
// extracted value is non-empty and, for enums, inside the known vocabulary;
// everything else keeps the draft's value. Enum fields are merged first so an
// extracted plan is checked against the resulting request type and network.
// A plan the catalog does not offer is dropped. The plan is re-resolved last.
//
// The second return lists the fields that were applied, in merge order.
func Reconcile(d entity.OrderDraft, x llm.OrderFields, c catalog.Catalog) (entity.OrderDraft, []string) {
	var applied []string

	if rt, ok := constants.CanonicalizeRequestType(x.RequestType); ok {
		d.RequestType = rt
		applied = append(applied, FieldRequestType)
	}
	if nw, ok := constants.CanonicalizeNetwork(x.Network); ok {
		d.Network = nw
		applied = append(applied, FieldNetwork)
	}
	if pm, ok := constants.CanonicalizePaymentMethod(x.PaymentMethod); ok {
		d.PaymentMethod = pm
		applied = append(applied, FieldPaymentMethod)
	}

	fill := func(dst *string, v, name string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
			applied = append(applied, name)
		}
	}
	fill(&d.CustomerName, x.CustomerName, FieldCustomerName)
	fill(&d.MobileNumber, x.MobileNumber, FieldMobileNumber)
	fill(&d.Address, x.Address, FieldAddress)
	fill(&d.TransactionReference, x.TransactionID, FieldTransactionReference)

	if plan, ok := llm.NormalizePlanAmount(x.PlanAmount); ok && c.Contains(d.RequestType, d.Network, plan) {
		d.SelectedPlan = plan
		applied = append(applied, FieldSelectedPlan)
	}

	d.SelectedPlan = ResolvePlan(d, c)
	return d, applied
}
