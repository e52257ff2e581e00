package calai

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/spf13/cobra"
)

var (
	todayDate string
	todayJSON bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the day's intake and progress toward targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay("date", todayDate)
		if err != nil {
			return err
		}
		return withState(func(_ *sql.DB, st *service.State) error {
			if err := requireOnboarded(st); err != nil {
				return err
			}
			status := service.TodaySummary(st.Meals, day)
			if todayJSON {
				b, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal today json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", status.Date)
			fmt.Fprintf(out, "Meals: %d\n", status.Meals)
			fmt.Fprintf(out, "Intake: %s of %s (%s left)\n", kcal(status.Calories), kcal(status.GoalCalories), kcal(status.RemainingCalories))
			fmt.Fprintf(out, "Macros: P %s | C %s | F %s\n", grams(status.ProteinG), grams(status.CarbsG), grams(status.FatG))
			fmt.Fprintf(out, "Remaining: P %s | C %s | F %s\n", grams(status.RemainingProteinG), grams(status.RemainingCarbsG), grams(status.RemainingFatG))
			fmt.Fprintf(out, "Split: P %.2f%% | C %.2f%% | F %.2f%%\n", status.Percentages.Protein, status.Percentages.Carbs, status.Percentages.Fat)
			fmt.Fprintln(out, "\nProgress")
			fmt.Fprintf(out, "  %-8s %s %3d%%\n", "Calories", progressBar(status.Progress.Calories, 20), status.Progress.Calories)
			fmt.Fprintf(out, "  %-8s %s %3d%%\n", "Protein", progressBar(status.Progress.Protein, 20), status.Progress.Protein)
			fmt.Fprintf(out, "  %-8s %s %3d%%\n", "Carbs", progressBar(status.Progress.Carbs, 20), status.Progress.Carbs)
			fmt.Fprintf(out, "  %-8s %s %3d%%\n", "Fat", progressBar(status.Progress.Fat, 20), status.Progress.Fat)
			return nil
		})
	},
}

// progressBar draws percent (already clamped to 0..100) as a fixed-width bar.
func progressBar(percent, width int) string {
	filled := int(math.Round(float64(percent) / 100 * float64(width)))
	if filled == 0 && percent > 0 {
		filled = 1
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output JSON")
}
