package calai

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Manage daily calorie and macro targets",
}

var targetsShowJSON bool

var targetsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(_ *sql.DB, st *service.State) error {
			cmp := service.CompareTargets(st)
			if targetsShowJSON {
				b, err := json.MarshalIndent(cmp, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal targets json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active: %s\n", formatTargets(cmp.Active))
			fmt.Fprintf(cmd.OutOrStdout(), "Recommended: %s\n", formatTargets(cmp.Recommended))
			if len(cmp.Missing) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Recommendation uses defaults; missing %s\n", strings.Join(cmp.Missing, ", "))
			}
			return nil
		})
	},
}

var (
	targetCalories int
	targetProtein  float64
	targetCarbs    float64
	targetFat      float64
)

var targetsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set targets manually",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(_ *sql.DB, st *service.State) error {
			t := model.NutritionalTargets{Calories: targetCalories, ProteinG: targetProtein, CarbsG: targetCarbs, FatG: targetFat}
			if err := st.Meals.SetTargets(t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Targets set: %s\n", formatTargets(t))
			return nil
		})
	},
}

var targetsApply bool

var targetsRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show targets computed from the profile (--apply to activate them)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(_ *sql.DB, st *service.State) error {
			if !targetsApply {
				fmt.Fprintf(cmd.OutOrStdout(), "Recommended: %s\n", formatTargets(st.Profile.RecommendedTargets()))
				return nil
			}
			t, err := service.ApplyRecommendedTargets(st.Profile, st.Meals)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Targets set: %s\n", formatTargets(t))
			return nil
		})
	},
}

func formatTargets(t model.NutritionalTargets) string {
	return fmt.Sprintf("%s | P %s | C %s | F %s", kcal(t.Calories), grams(t.ProteinG), grams(t.CarbsG), grams(t.FatG))
}

func init() {
	rootCmd.AddCommand(targetsCmd)
	targetsCmd.AddCommand(targetsShowCmd, targetsSetCmd, targetsRecommendCmd)

	targetsShowCmd.Flags().BoolVar(&targetsShowJSON, "json", false, "Output JSON")

	targetsSetCmd.Flags().IntVar(&targetCalories, "calories", 0, "Daily calories")
	targetsSetCmd.Flags().Float64Var(&targetProtein, "protein", 0, "Daily protein grams")
	targetsSetCmd.Flags().Float64Var(&targetCarbs, "carbs", 0, "Daily carbs grams")
	targetsSetCmd.Flags().Float64Var(&targetFat, "fat", 0, "Daily fat grams")
	_ = targetsSetCmd.MarkFlagRequired("calories")
	_ = targetsSetCmd.MarkFlagRequired("protein")
	_ = targetsSetCmd.MarkFlagRequired("carbs")
	_ = targetsSetCmd.MarkFlagRequired("fat")

	targetsRecommendCmd.Flags().BoolVar(&targetsApply, "apply", false, "Replace active targets with the recommendation")
}
