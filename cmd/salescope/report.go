package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/analytics"
	"github.com/salescope/salescope/internal/cli"
	"github.com/salescope/salescope/internal/model"
	"github.com/salescope/salescope/internal/viewmodel"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [envelope]",
		Short: "Render the yearly or monthly board from an envelope",
		Long: `Decrypts the envelope and renders the selected board to the terminal,
or emits the raw view model as JSON with --json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReport,
	}

	cmd.Flags().String("view", "yearly", "board to render (yearly, monthly)")
	cmd.Flags().Bool("json", false, "emit the view model as JSON")
	cmd.Flags().String("region", analytics.All, "region filter")
	cmd.Flags().String("category", analytics.All, "category filter")
	cmd.Flags().String("customer", analytics.All, "normalized customer filter")
	cmd.Flags().String("search", "", "search filter (yearly view)")
	cmd.Flags().String("metric", "", "metric: a yearly column key, or gross/net for monthly")
	cmd.Flags().String("sort", "", "table sort column (yearly view; default: selected metric)")
	cmd.Flags().String("order", "desc", "table sort order (yearly view; asc, desc)")
	cmd.Flags().Int("month", 0, "month 1-12 (monthly view; default: latest available)")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	path := "encrypted-data.json"
	if len(args) == 1 {
		path = args[0]
	}

	data, err := unlockDataset(path)
	if err != nil {
		return err
	}

	criteria := analytics.Criteria{}
	criteria.Region, _ = cmd.Flags().GetString("region")
	criteria.Category, _ = cmd.Flags().GetString("category")
	criteria.Customer, _ = cmd.Flags().GetString("customer")
	criteria.SearchText, _ = cmd.Flags().GetString("search")

	view, _ := cmd.Flags().GetString("view")
	asJSON, _ := cmd.Flags().GetBool("json")
	metricFlag, _ := cmd.Flags().GetString("metric")

	switch view {
	case "yearly":
		state := viewmodel.DefaultBoardState()
		state.Criteria = criteria
		if metricFlag != "" {
			metric, ok := model.MetricFromKey(metricFlag)
			if !ok {
				return fmt.Errorf("unknown metric %q", metricFlag)
			}
			state.Metric = metric
			state.SortKey = metric.Key()
		}
		if sortFlag, _ := cmd.Flags().GetString("sort"); sortFlag != "" {
			if !viewmodel.ValidSortKey(sortFlag) {
				return fmt.Errorf("unknown sort column %q", sortFlag)
			}
			state.SortKey = sortFlag
		}
		switch order, _ := cmd.Flags().GetString("order"); order {
		case "desc":
		case "asc":
			state.SortDesc = false
		default:
			return fmt.Errorf("unknown sort order %q (want asc or desc)", order)
		}
		board := viewmodel.BuildBoard(data, state)
		if asJSON {
			return emitJSON(board)
		}
		fmt.Println(cli.RenderBoard(board))
		return nil

	case "monthly":
		month, _ := cmd.Flags().GetInt("month")
		if month == 0 {
			month = data.DefaultMonth(time.Now())
		}
		if month == 0 {
			return fmt.Errorf("no monthly data in envelope")
		}
		state := viewmodel.DefaultMonthlyState(month)
		state.Criteria = criteria
		switch metricFlag {
		case "", "gross":
		case "net":
			state.Metric = model.MonthlyNet
		default:
			return fmt.Errorf("unknown monthly metric %q (want gross or net)", metricFlag)
		}
		monthly := viewmodel.BuildMonthly(data, state)
		if asJSON {
			return emitJSON(monthly)
		}
		fmt.Println(cli.RenderMonthly(monthly))
		return nil
	}

	return fmt.Errorf("unknown view %q (want yearly or monthly)", view)
}

func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
