package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/sim-order-desk/internal/catalog"
	"github.com/joseph-ayodele/sim-order-desk/internal/llm"
)

// ExtractCommand runs the AI extractor on a message and prints the sanitized fields.
func ExtractCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "extract [text]",
		Short: "Extract order fields from a customer message (reads stdin when no text is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(verbose(cmd))

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c := catalog.Default()
			extractor, closeFn, err := newExtractor(ctx, cfg, c, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			fields, _, err := extractor.ExtractFields(ctx, llm.ExtractRequest{Text: text, Catalog: c})
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(fields)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall deadline for the extraction call")
	return cmd
}

func inputText(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return "", fmt.Errorf("no text given")
	}
	return text, nil
}
