package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alarmscope/alarmscope/internal/config"
	"github.com/alarmscope/alarmscope/internal/database"
)

// NewHistoryCommand creates the history command, listing stored run
// summaries newest first.
func NewHistoryCommand() *cobra.Command {
	var product string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent analysis runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := database.Connect(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}

			runs, err := database.RecentRuns(db, product, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No recorded runs")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tPRODUCT\tENV\tTOTAL\tANALYZABLE\tIGNORED\tONCALL\tREPERIBILITA\tRECORDED")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
					run.DateArg, run.Product, run.Environment,
					run.TotalAlarms, run.AnalyzableAlarms, run.IgnoredAlarms,
					run.OncallTotal, run.OncallInReperibilita,
					run.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&product, "product", "", "Filter by product")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")

	return cmd
}
