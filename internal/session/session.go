// Package session owns one order draft for the lifetime of an editing
// session and keeps its derived values in step with every edit.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/sim-order-desk/constants"
	"github.com/joseph-ayodele/sim-order-desk/internal/catalog"
	"github.com/joseph-ayodele/sim-order-desk/internal/common"
	"github.com/joseph-ayodele/sim-order-desk/internal/entity"
	"github.com/joseph-ayodele/sim-order-desk/internal/llm"
	"github.com/joseph-ayodele/sim-order-desk/internal/location"
	"github.com/joseph-ayodele/sim-order-desk/internal/metrics"
	"github.com/joseph-ayodele/sim-order-desk/internal/order"
	"github.com/joseph-ayodele/sim-order-desk/internal/payment"
	"github.com/joseph-ayodele/sim-order-desk/internal/share"
)

// Options wires a session. Extractor, Locator and Metrics are optional.
// A non-positive DeliveryCharge falls back to constants.DeliveryCharge.
type Options struct {
	Catalog        catalog.Catalog
	DeliveryCharge int
	Merchant       common.MerchantConfig
	QR             payment.QRRenderer
	Recipient      string
	Extractor      llm.FieldExtractor
	Locator        location.Locator
	Metrics        *metrics.Registry
	Logger         *slog.Logger
}

// OptionsFromConfig maps the environment config onto session options.
func OptionsFromConfig(cfg *common.Config) Options {
	return Options{
		Catalog:        catalog.Default(),
		DeliveryCharge: cfg.Order.DeliveryCharge,
		Merchant:       cfg.Merchant,
		QR:             payment.QRRenderer{Endpoint: cfg.QR.Endpoint, Size: cfg.QR.Size},
		Recipient:      cfg.Order.Recipient,
	}
}

// Session is the single owner of a draft. Edits are serialized by mu; at most
// one extraction and one location request may be outstanding at a time.
type Session struct {
	id   string
	opts Options
	log  *slog.Logger

	mu    sync.Mutex
	draft entity.OrderDraft
	quote entity.Quote

	extracting atomic.Bool
	locating   atomic.Bool
}

func New(opts Options) *Session {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.DeliveryCharge <= 0 {
		opts.DeliveryCharge = constants.DeliveryCharge
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	id := uuid.New().String()
	s := &Session{
		id:   id,
		opts: opts,
		log:  opts.Logger.With("session_id", id),
	}
	s.draft = order.NewDraft(opts.Catalog)
	s.recomputeLocked()
	return s
}

func (s *Session) ID() string { return s.id }

// Draft returns a copy of the current draft.
func (s *Session) Draft() entity.OrderDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Quote returns the values derived after the last edit.
func (s *Session) Quote() entity.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quote
}

// AvailablePlans lists the plans for the current request type and network.
func (s *Session) AvailablePlans() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return order.AvailablePlans(s.draft, s.opts.Catalog)
}

// Loading reports whether an extraction is outstanding.
func (s *Session) Loading() bool { return s.extracting.Load() }

// Locating reports whether a location request is outstanding.
func (s *Session) Locating() bool { return s.locating.Load() }

// Reset discards the draft and starts over with defaults.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = order.NewDraft(s.opts.Catalog)
	s.recomputeLocked()
}

func (s *Session) SetRequestType(rt constants.RequestType) error {
	if !rt.Valid() {
		return common.NewAppError("INVALID_REQUEST_TYPE", fmt.Sprintf("unknown request type %q", rt), common.ErrInvalidInput)
	}
	s.edit(func(d *entity.OrderDraft) { d.RequestType = rt })
	return nil
}

func (s *Session) SetNetwork(nw constants.Network) error {
	if !nw.Valid() {
		return common.NewAppError("INVALID_NETWORK", fmt.Sprintf("unknown network %q", nw), common.ErrInvalidInput)
	}
	s.edit(func(d *entity.OrderDraft) { d.Network = nw })
	return nil
}

// SetPlan selects one of the currently available plans.
func (s *Session) SetPlan(plan string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opts.Catalog.Contains(s.draft.RequestType, s.draft.Network, plan) {
		return common.NewAppError("INVALID_PLAN",
			fmt.Sprintf("plan %q is not offered for %s/%s", plan, s.draft.RequestType, s.draft.Network),
			common.ErrInvalidInput)
	}
	s.draft.SelectedPlan = plan
	s.recomputeLocked()
	return nil
}

func (s *Session) SetPaymentMethod(pm constants.PaymentMethod) error {
	if !pm.Valid() {
		return common.NewAppError("INVALID_PAYMENT_METHOD", fmt.Sprintf("unknown payment method %q", pm), common.ErrInvalidInput)
	}
	s.edit(func(d *entity.OrderDraft) { d.PaymentMethod = pm })
	return nil
}

func (s *Session) SetCustomerName(v string) {
	s.edit(func(d *entity.OrderDraft) { d.CustomerName = strings.TrimSpace(v) })
}

func (s *Session) SetMobileNumber(v string) {
	s.edit(func(d *entity.OrderDraft) { d.MobileNumber = strings.TrimSpace(v) })
}

func (s *Session) SetAddress(v string) {
	s.edit(func(d *entity.OrderDraft) { d.Address = strings.TrimSpace(v) })
}

func (s *Session) SetLocationLink(v string) {
	s.edit(func(d *entity.OrderDraft) { d.LocationLink = strings.TrimSpace(v) })
}

func (s *Session) SetTransactionReference(v string) {
	s.edit(func(d *entity.OrderDraft) { d.TransactionReference = strings.TrimSpace(v) })
}

func (s *Session) edit(fn func(d *entity.OrderDraft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.draft)
	s.recomputeLocked()
}

// recomputeLocked restores plan consistency, then re-derives price and payment
// targets, in that order. Callers hold mu.
func (s *Session) recomputeLocked() {
	s.draft.SelectedPlan = order.ResolvePlan(s.draft, s.opts.Catalog)

	q := order.PriceQuote(s.draft, s.opts.DeliveryCharge)
	if s.opts.Merchant.UPIID != "" {
		q.PaymentURI = payment.BuildPaymentURI(s.opts.Merchant.UPIID, s.opts.Merchant.Name, q.Total)
		q.QRRequestURL = s.opts.QR.RequestURL(q.PaymentURI)
	}
	s.quote = q
}

// Extract sends free text to the extractor and merges what it recognized
// into the draft. While one extraction is pending further calls fail fast
// with ErrExtractionInFlight. A result with no usable field is a failure.
// On any failure the draft is left untouched.
// The returned slice names the fields that were filled.
func (s *Session) Extract(ctx context.Context, text string) ([]string, error) {
	if s.opts.Extractor == nil {
		return nil, common.ExtractionError("AI prefill is not configured", errors.New("no extractor"))
	}
	if strings.TrimSpace(text) == "" {
		return nil, common.ExtractionError("nothing to extract", common.ErrInvalidInput)
	}
	if !s.extracting.CompareAndSwap(false, true) {
		s.opts.Metrics.ObserveExtraction(metrics.OutcomeRejected, 0)
		s.log.Warn("session.extract.rejected", "reason", "in_flight")
		return nil, common.ErrExtractionInFlight
	}
	defer s.extracting.Store(false)

	rid := uuid.New().String()
	ctx = common.WithRequestID(ctx, rid)
	start := time.Now()
	s.log.Info("session.extract.start", "req_id", rid, "text_len", len(text))

	fields, _, err := s.opts.Extractor.ExtractFields(ctx, llm.ExtractRequest{Text: text, Catalog: s.opts.Catalog})
	if err == nil && fields.Empty() {
		err = errors.New("no order fields recognized")
	}
	if err != nil {
		s.opts.Metrics.ObserveExtraction(metrics.OutcomeFailed, time.Since(start))
		s.log.Error("session.extract.failed", "req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, common.ExtractionError("could not read the customer message", err)
	}

	s.mu.Lock()
	merged, applied := order.Reconcile(s.draft, fields, s.opts.Catalog)
	if len(applied) > 0 {
		s.draft = merged
		s.recomputeLocked()
	}
	plan := s.draft.SelectedPlan
	s.mu.Unlock()

	if len(applied) == 0 {
		err := errors.New("no usable order fields in extraction")
		s.opts.Metrics.ObserveExtraction(metrics.OutcomeFailed, time.Since(start))
		s.log.Warn("session.extract.nothing_applied", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, common.ExtractionError("could not read the customer message", err)
	}

	s.opts.Metrics.ObserveExtraction(metrics.OutcomeOK, time.Since(start))
	s.log.Info("session.extract.ok",
		"req_id", rid,
		"applied", applied,
		"plan", plan,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return applied, nil
}

// CaptureLocation asks the locator for the current position and stores a map
// link. Failures leave the existing link untouched.
func (s *Session) CaptureLocation(ctx context.Context) (string, error) {
	if s.opts.Locator == nil {
		return "", common.LocationError("location is not configured", errors.New("no locator"))
	}
	if !s.locating.CompareAndSwap(false, true) {
		s.opts.Metrics.ObserveLocation(metrics.OutcomeRejected)
		return "", common.ErrLocationInFlight
	}
	defer s.locating.Store(false)

	point, err := s.opts.Locator.Locate(ctx)
	if err == nil && !point.Valid() {
		err = fmt.Errorf("coordinates out of range: %v,%v", point.Latitude, point.Longitude)
	}
	if err != nil {
		s.opts.Metrics.ObserveLocation(metrics.OutcomeFailed)
		s.log.Warn("session.location.failed", "error", err)
		return "", common.LocationError("could not determine the current location", err)
	}

	link := location.MapsLink(point)
	s.SetLocationLink(link)
	s.opts.Metrics.ObserveLocation(metrics.OutcomeOK)
	s.log.Info("session.location.ok", "link", link)
	return link, nil
}

// Send validates the draft and produces the outbound message and share link.
// A validation failure blocks the send and reports every missing field.
func (s *Session) Send() (entity.FinalizedOrder, error) {
	s.mu.Lock()
	d, q := s.draft, s.quote
	s.mu.Unlock()

	if err := order.Validate(d); err != nil {
		s.opts.Metrics.ObserveSend(false)
		s.log.Warn("session.send.blocked", "missing", order.MissingFields(d))
		return entity.FinalizedOrder{}, common.NewAppError(common.CodeValidation, "order is incomplete", err)
	}
	for _, w := range order.Warnings(d) {
		s.log.Warn("session.send.warning", "field", w.Field, "message", w.Message)
	}

	msg := order.FormatMessage(d, q.Total, q.DeliveryCharge)
	out := entity.FinalizedOrder{
		Draft:       d,
		Quote:       q,
		Message:     msg,
		ShareLink:   share.WhatsAppLink(s.opts.Recipient, msg),
		ReferenceID: uuid.New().String(),
	}
	s.opts.Metrics.ObserveSend(true)
	s.log.Info("session.send.ok",
		"reference_id", out.ReferenceID,
		"request_type", d.RequestType,
		"network", d.Network,
		"total", q.Total,
	)
	return out, nil
}
