package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/alarmscope/alarmscope/internal/alarms"
	"github.com/alarmscope/alarmscope/internal/alarms/extraction"
	"github.com/alarmscope/alarmscope/internal/analysis"
	"github.com/alarmscope/alarmscope/internal/config"
	"github.com/alarmscope/alarmscope/internal/database"
	"github.com/alarmscope/alarmscope/internal/report"
	"github.com/alarmscope/alarmscope/internal/rules"
	"github.com/alarmscope/alarmscope/internal/slackfetch"
)

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	ConfigPath string
	ReportsDir string
	WriteCSV   bool
	NoStore    bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <date> <product> [environment]",
		Short: "Fetch and analyze alarms for a date or date range",
		Long: `Analyze alarm messages for a product and environment.

The date is dd-mm-yy, or a dd-mm-yy:dd-mm-yy range. Normal alarms are
bucketed into 18:00-to-18:00 shift days; on-call alarms (prod only) into
calendar days. Environment defaults to prod.

Examples:
  alarmscope analyze 19-09-25 SEND
  alarmscope analyze 19-09-25 SEND uat
  alarmscope analyze 01-01-25:02-01-25 INTEROP test`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Products YAML file (default $ALARMSCOPE_CONFIG or config/base.yaml)")
	cmd.Flags().StringVar(&opts.ReportsDir, "reports-dir", "reports", "Directory for generated reports")
	cmd.Flags().BoolVar(&opts.WriteCSV, "csv", false, "Also write a CSV summary")
	cmd.Flags().BoolVar(&opts.NoStore, "no-store", false, "Skip recording the run in the history database")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	dateArg := args[0]
	product := args[1]
	environment := "prod"
	if len(args) == 3 {
		environment = args[2]
	}

	cfg := config.Load()
	if opts.ConfigPath != "" {
		cfg.ProductsPath = opts.ConfigPath
	}

	products, err := config.LoadProducts(cfg.ProductsPath)
	if err != nil {
		return err
	}

	productCfg, ok := products[product]
	if !ok {
		return fmt.Errorf("unknown product %s (configured: %v)", product, productNames(products))
	}
	if _, ok := productCfg.Environments[environment]; !ok {
		return fmt.Errorf("unknown environment %s for product %s (configured: %v)",
			environment, product, productCfg.EnvironmentNames())
	}

	extractor, err := extraction.NewProvider().Get(product, environment)
	if err != nil {
		return err
	}

	oncallChannel, oncallPattern := "", ""
	if productCfg.Oncall != nil {
		oncallChannel = productCfg.Oncall.SlackChannelID
		oncallPattern = productCfg.Oncall.Pattern
	}
	alarmTypes, err := alarms.BuildAlarmTypes(product, environment,
		productCfg.SlackChannelID(environment), oncallChannel, oncallPattern)
	if err != nil {
		return err
	}

	if cfg.SlackToken == "" {
		return fmt.Errorf("SLACK_TOKEN environment variable not set")
	}
	fetcher := slackfetch.New(cfg.SlackToken)
	analyzer := analysis.NewAnalyzer(extractor, rules.NewEngine(productCfg.IgnoreRules))

	ctx := cmd.Context()
	var results []*alarms.AnalysisResult
	for _, at := range alarmTypes {
		start, end, err := at.TimeWindow(dateArg)
		if err != nil {
			return err
		}
		log.Printf("Analyzing %s: window %s -> %s (channel %s)",
			at, start.Format("2006-01-02 15:04:05"), end.Format("2006-01-02 15:04:05"), at.ChannelID)

		messages, err := fetcher.FetchMessages(ctx, at.ChannelID, start, end)
		if err != nil {
			return err
		}
		results = append(results, analyzer.Analyze(messages, at))
	}

	merged := alarms.MergeResults(results)
	log.Printf("Total alarm messages: %d (analyzable %d, ignored %d)",
		merged.TotalAlarms, merged.AnalyzableAlarms, merged.IgnoredAlarms)
	if merged.OncallTotal > 0 {
		log.Printf("On-call alarms: %d, in reperibilità: %d",
			merged.OncallTotal, merged.OncallInReperibilita)
	}

	htmlPath, err := report.WriteHTML(opts.ReportsDir, merged, product, environment, dateArg)
	if err != nil {
		return err
	}
	log.Printf("Report generated at: %s", htmlPath)

	if opts.WriteCSV {
		csvPath, err := report.WriteCSV(opts.ReportsDir, merged, product, environment, dateArg)
		if err != nil {
			return err
		}
		log.Printf("CSV summary generated at: %s", csvPath)
	}

	if !opts.NoStore {
		if err := storeRun(cfg.DatabaseURL, product, environment, dateArg, merged); err != nil {
			// History is best effort; the analysis itself succeeded.
			log.Printf("Warning: could not record run history: %v", err)
		}
	}

	return nil
}

func storeRun(dsn, product, environment, dateArg string, result *alarms.AnalysisResult) error {
	db, err := database.Connect(dsn)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	run, err := database.SaveRun(db, product, environment, dateArg, result)
	if err != nil {
		return err
	}
	log.Printf("Run recorded as %s", run.UUID)
	return nil
}

func productNames(products map[string]*config.ProductConfig) []string {
	names := make([]string, 0, len(products))
	for name := range products {
		names = append(names, name)
	}
	return names
}
