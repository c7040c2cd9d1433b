package order

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/sim-order-desk/constants"
	"github.com/joseph-ayodele/sim-order-desk/internal/common"
	"github.com/joseph-ayodele/sim-order-desk/internal/entity"
)

// MissingFieldsError lists every field that blocks finalization.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error {
	return common.ErrValidation
}

// Validate gates finalization. It returns nil or a *MissingFieldsError that
// carries the complete set of missing fields. The draft is not modified.
func Validate(d entity.OrderDraft) error {
	missing := MissingFields(d)
	if len(missing) == 0 {
		return nil
	}
	return &MissingFieldsError{Fields: missing}
}

// MissingFields returns the required fields that are empty, in form order.
func MissingFields(d entity.OrderDraft) []string {
	v := common.NewValidator().
		Field(FieldCustomerName, d.CustomerName, common.Required).
		Field(FieldMobileNumber, d.MobileNumber, common.Required).
		Field(FieldAddress, d.Address, common.Required).
		Field(FieldSelectedPlan, d.SelectedPlan, common.Required).
		FieldIf(d.PaymentMethod == constants.PaymentUPI, FieldTransactionReference, d.TransactionReference, common.Required)
	return v.Fields()
}

// Warnings reports soft problems that do not block sending, such as a mobile
// number that does not look like one.
func Warnings(d entity.OrderDraft) []common.ValidationError {
	return common.NewValidator().
		Field(FieldMobileNumber, d.MobileNumber, common.MobileNumber).
		Errors()
}
