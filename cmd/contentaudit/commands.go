package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"lessonpress/internal/analyzer"
	"lessonpress/internal/cache"
	"lessonpress/internal/catalog"
	"lessonpress/internal/config"
)

// errLedgerInvalid makes validate exit non-zero after printing problems.
var errLedgerInvalid = errors.New("ledger does not match the catalog")

// liveLedger reads the usage counters from Valkey. Tests replace it.
var liveLedger = func(ctx context.Context) (analyzer.Ledger, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	snap, err := cache.NewUsageCounter(client).Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analyzer.Ledger(snap), nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "contentaudit",
		Short: "Audit block template usage across the content library",
		Long: `Audit block template usage across the content library.

The usage ledger lists which template variants lessons use for each block
type. By default the ledger compiled into the binary is used; --ledger reads
a YAML file instead and --live reads the counters the editor records in
Valkey.

Examples:
  contentaudit report
  contentaudit report --json
  contentaudit report --live
  contentaudit validate --ledger usage.yaml
  contentaudit catalog`,
		SilenceUsage: true,
	}
	root.AddCommand(newReportCmd(), newValidateCmd(), newCatalogCmd())
	return root
}

// ledgerFlags are shared by report and validate.
type ledgerFlags struct {
	path string
	live bool
}

func (f *ledgerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "ledger", "", "read the usage ledger from a YAML file")
	cmd.Flags().BoolVar(&f.live, "live", false, "use the live usage counters in Valkey")
	cmd.MarkFlagsMutuallyExclusive("ledger", "live")
}

func (f *ledgerFlags) load(ctx context.Context) (analyzer.Ledger, error) {
	switch {
	case f.live:
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		l, err := liveLedger(ctx)
		if err != nil {
			return nil, fmt.Errorf("read live usage: %w", err)
		}
		return l, nil
	case f.path != "":
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("read ledger: %w", err)
		}
		return analyzer.LoadLedger(data)
	}
	return analyzer.DefaultLedger(), nil
}

func newReportCmd() *cobra.Command {
	var (
		flags  ledgerFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the usage report with recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, err := flags.load(cmd.Context())
			if err != nil {
				return err
			}
			report := analyzer.Analyze(catalog.Default(), ledger)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return report.WriteText(cmd.OutOrStdout())
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var flags ledgerFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every ledger entry exists in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, err := flags.load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := ledger.Validate(catalog.Default()); err != nil {
				fmt.Fprintln(out, err)
				return errLedgerInvalid
			}
			fmt.Fprintf(out, "ledger ok: %d block types\n", len(ledger))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List block types and their template variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeCatalog(cmd.OutOrStdout(), catalog.Default())
		},
	}
}

func writeCatalog(w io.Writer, c *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tAI\tDEFAULT\tVARIANTS")
	for _, e := range c.Entries() {
		ids := make([]string, 0, len(e.Variants))
		for _, v := range e.Variants {
			ids = append(ids, v.ID)
		}
		aiFlag := "-"
		if c.SupportsAIGeneration(string(e.BlockType)) {
			aiFlag = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.BlockType, aiFlag, e.Default, strings.Join(ids, ", "))
	}
	return tw.Flush()
}
