package calai

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/spf13/cobra"
)

var weightGoalJSON bool

var weightGoalCmd = &cobra.Command{
	Use:   "weight-goal",
	Short: "Show the weight goal estimate",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(sqldb *sql.DB, st *service.State) error {
			est, ok := st.Profile.WeightGoal()
			if !ok {
				return fmt.Errorf("weight goal needs both a current and a target weight; set them with `calai profile set --weight <w> --target-weight <w>`")
			}
			if weightGoalJSON {
				b, err := json.MarshalIndent(est, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal weight goal json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			prefs, err := service.LoadPreferences(sqldb)
			if err != nil {
				return err
			}
			p := st.Profile.Profile()
			unit := prefs.WeightUnit
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Goal: %s\n", model.Label(p.GoalType))
			fmt.Fprintf(out, "Current: %s\n", formatWeight(p.WeightKg, unit))
			fmt.Fprintf(out, "Target: %s\n", formatWeight(p.TargetWeightKg, unit))
			fmt.Fprintf(out, "Difference: %+.1f %s\n", unit.FromKg(est.DiffKg), unit)
			fmt.Fprintf(out, "Progress: %s %.0f%%\n", progressBar(int(math.Round(est.ProgressPercent)), 20), est.ProgressPercent)
			if est.Weeks > 0 {
				fmt.Fprintf(out, "Pace: %.2f %s/week, about %d week(s)\n", unit.FromKg(est.WeeklyRateKg), unit, est.Weeks)
			} else {
				fmt.Fprintln(out, "Pace: -")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightGoalCmd)
	weightGoalCmd.Flags().BoolVar(&weightGoalJSON, "json", false, "Output JSON")
}
