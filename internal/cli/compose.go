package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/sim-order-desk/constants"
	"github.com/joseph-ayodele/sim-order-desk/internal/common"
	"github.com/joseph-ayodele/sim-order-desk/internal/entity"
	"github.com/joseph-ayodele/sim-order-desk/internal/metrics"
	"github.com/joseph-ayodele/sim-order-desk/internal/order"
	"github.com/joseph-ayodele/sim-order-desk/internal/session"
)

type composeFlags struct {
	text         string
	name         string
	mobile       string
	requestType  string
	network      string
	plan         string
	address      string
	payment      string
	txnID        string
	locationLink string
	locate       bool
	showMetrics  bool
	timeout      time.Duration
}

// ComposeCommand builds an order from flags, optionally pre-filled by the AI
// extractor, and prints the finalized message and payment targets.
func ComposeCommand() *cobra.Command {
	var f composeFlags

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a SIM order and print the message, UPI link, QR URL and WhatsApp link",
		Long: `Compose a SIM order.

Flags are applied after the AI prefill, so anything typed on the command line
wins over what was extracted from --text.

Examples:
  simorder compose --name "Asha" --mobile 9876543210 --type NEW --network JIO \
    --address "12 MG Road, Pune" --payment UPI --txn UTR123456789

  simorder compose --text "port my vodafone number 98xxxxxx to jio, cash on delivery" --address "..."`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(cmd.Context(), cmd.OutOrStdout(), f, verbose(cmd))
		},
	}

	cmd.Flags().StringVar(&f.text, "text", "", "Free-text customer message to pre-fill from")
	cmd.Flags().StringVar(&f.name, "name", "", "Customer name")
	cmd.Flags().StringVar(&f.mobile, "mobile", "", "Customer mobile number")
	cmd.Flags().StringVar(&f.requestType, "type", "", "Request type (NEW, MNP, REPLACEMENT)")
	cmd.Flags().StringVar(&f.network, "network", "", "Network (AIRTEL, JIO, VI)")
	cmd.Flags().StringVar(&f.plan, "plan", "", "Plan price; must be offered for the type and network")
	cmd.Flags().StringVar(&f.address, "address", "", "Delivery address")
	cmd.Flags().StringVar(&f.payment, "payment", "", "Payment method (COD, UPI, CARD)")
	cmd.Flags().StringVar(&f.txnID, "txn", "", "UPI transaction reference")
	cmd.Flags().StringVar(&f.locationLink, "location", "", "Map link for the delivery location")
	cmd.Flags().BoolVar(&f.locate, "locate", false, "Look up the current location and attach a map link")
	cmd.Flags().BoolVar(&f.showMetrics, "metrics", false, "Print session metrics after composing")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 2*time.Minute, "Deadline for the AI and location calls")
	cmd.MarkFlagsMutuallyExclusive("locate", "location")
	return cmd
}

func runCompose(ctx context.Context, out io.Writer, f composeFlags, verbose bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(verbose)
	reg := metrics.NewRegistry()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	opts := session.OptionsFromConfig(cfg)
	opts.Logger = logger
	opts.Metrics = reg

	switch {
	case strings.TrimSpace(f.text) == "":
	case !cfg.ExtractionConfigured():
		fmt.Fprintf(out, "AI prefill skipped: no API key for %s\n", cfg.LLM.Provider)
	default:
		extractor, closeFn, err := newExtractor(ctx, cfg, opts.Catalog, logger)
		if err != nil {
			return err
		}
		defer closeFn()
		opts.Extractor = extractor
	}
	if f.locate {
		locator, err := newLocator(cfg, logger)
		if err != nil {
			return err
		}
		opts.Locator = locator
	}

	s := session.New(opts)

	if opts.Extractor != nil {
		applied, err := s.Extract(ctx, f.text)
		if err != nil {
			fmt.Fprintf(out, "AI prefill failed, continuing with typed fields: %v\n", err)
		} else {
			fmt.Fprintf(out, "AI prefill filled: %s\n", strings.Join(applied, ", "))
		}
	}
	if err := applyFlags(s, f); err != nil {
		return err
	}
	if f.locate {
		if _, err := s.CaptureLocation(ctx); err != nil {
			fmt.Fprintf(out, "Location unavailable: %v\n", err)
		}
	}

	fin, err := s.Send()
	var missing *order.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		fmt.Fprintf(out, "Order incomplete, missing: %s\n", strings.Join(missing.Fields, ", "))
		if plans := s.AvailablePlans(); len(plans) == 0 {
			d := s.Draft()
			fmt.Fprintf(out, "No plans are offered for %s on %s.\n", d.RequestType.Label(), d.Network.Label())
		}
	case err != nil:
		return err
	default:
		printFinalized(out, fin)
	}

	if f.showMetrics {
		fmt.Fprintln(out)
		if err := reg.WriteText(out); err != nil {
			return err
		}
	}
	if err != nil {
		return common.ErrValidation
	}
	return nil
}

func applyFlags(s *session.Session, f composeFlags) error {
	if f.requestType != "" {
		rt, ok := constants.CanonicalizeRequestType(f.requestType)
		if !ok {
			return fmt.Errorf("unknown request type %q", f.requestType)
		}
		if err := s.SetRequestType(rt); err != nil {
			return err
		}
	}
	if f.network != "" {
		nw, ok := constants.CanonicalizeNetwork(f.network)
		if !ok {
			return fmt.Errorf("unknown network %q", f.network)
		}
		if err := s.SetNetwork(nw); err != nil {
			return err
		}
	}
	if f.plan != "" {
		if err := s.SetPlan(strings.TrimPrefix(f.plan, constants.CurrencySymbol)); err != nil {
			return err
		}
	}
	if f.payment != "" {
		pm, ok := constants.CanonicalizePaymentMethod(f.payment)
		if !ok {
			return fmt.Errorf("unknown payment method %q", f.payment)
		}
		if err := s.SetPaymentMethod(pm); err != nil {
			return err
		}
	}
	if f.name != "" {
		s.SetCustomerName(f.name)
	}
	if f.mobile != "" {
		s.SetMobileNumber(f.mobile)
	}
	if f.address != "" {
		s.SetAddress(f.address)
	}
	if f.txnID != "" {
		s.SetTransactionReference(f.txnID)
	}
	if f.locationLink != "" {
		s.SetLocationLink(f.locationLink)
	}
	return nil
}

func printFinalized(out io.Writer, fin entity.FinalizedOrder) {
	fmt.Fprintln(out, fin.Message)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Reference: %s\n", fin.ReferenceID)
	if fin.Draft.PaymentMethod == constants.PaymentUPI && fin.Quote.PaymentURI != "" {
		fmt.Fprintf(out, "UPI link:  %s\n", fin.Quote.PaymentURI)
		fmt.Fprintf(out, "QR image:  %s\n", fin.Quote.QRRequestURL)
	}
	fmt.Fprintf(out, "WhatsApp:  %s\n", fin.ShareLink)
}
