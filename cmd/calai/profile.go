package calai

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/MEME-CORP/calaiweb/internal/store"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
}

var profileShowJSON bool

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(sqldb *sql.DB, st *service.State) error {
			p := st.Profile.Profile()
			if profileShowJSON {
				b, err := json.MarshalIndent(p, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal profile json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			prefs, err := service.LoadPreferences(sqldb)
			if err != nil {
				return err
			}
			printProfile(cmd, p, prefs)
			if missing := st.Profile.Missing(); len(missing) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Missing for targets: %s\n", strings.Join(missing, ", "))
			}
			return nil
		})
	},
}

func printProfile(cmd *cobra.Command, p model.UserProfile, prefs service.Preferences) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name: %s\n", orDash(p.Name))
	fmt.Fprintf(out, "Goal: %s\n", model.Label(p.GoalType))
	if p.Age != nil {
		fmt.Fprintf(out, "Age: %d\n", *p.Age)
	} else {
		fmt.Fprintln(out, "Age: -")
	}
	if p.Gender != nil {
		fmt.Fprintf(out, "Gender: %s\n", model.Label(*p.Gender))
	} else {
		fmt.Fprintln(out, "Gender: -")
	}
	fmt.Fprintf(out, "Height: %s\n", formatHeight(p.HeightCm, prefs.HeightUnit))
	fmt.Fprintf(out, "Weight: %s\n", formatWeight(p.WeightKg, prefs.WeightUnit))
	if p.ActivityLevel != nil {
		fmt.Fprintf(out, "Activity: %s\n", model.Label(*p.ActivityLevel))
	} else {
		fmt.Fprintln(out, "Activity: -")
	}
	fmt.Fprintf(out, "Diet: %s\n", orDash(strings.Join(p.DietaryPreferences, ", ")))
	fmt.Fprintf(out, "Target weight: %s\n", formatWeight(p.TargetWeightKg, prefs.WeightUnit))
	if p.WeightChangeRate != nil {
		fmt.Fprintf(out, "Rate: %s\n", model.Label(*p.WeightChangeRate))
	} else {
		fmt.Fprintln(out, "Rate: -")
	}
}

func formatWeight(kg *float64, unit service.WeightUnit) string {
	if kg == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f %s", unit.FromKg(*kg), unit)
}

func formatHeight(cm *float64, unit service.HeightUnit) string {
	if cm == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f %s", unit.FromCm(*cm), unit)
}

var (
	profileName         string
	profileGoal         string
	profileAge          int
	profileGender       string
	profileHeight       float64
	profileWeight       float64
	profileActivity     string
	profileTargetWeight float64
	profileRate         string
	profileDiet         string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields (weight and height use the configured units)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(sqldb *sql.DB, st *service.State) error {
			prefs, err := service.LoadPreferences(sqldb)
			if err != nil {
				return err
			}
			patch, updates, err := profilePatchFromFlags(cmd, prefs)
			if err != nil {
				return err
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			if err := st.Profile.Update(patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d profile field(s)\n", updates)
			return nil
		})
	},
}

func profilePatchFromFlags(cmd *cobra.Command, prefs service.Preferences) (store.ProfilePatch, int, error) {
	var patch store.ProfilePatch
	updates := 0
	flags := cmd.Flags()
	if flags.Changed("name") {
		patch.Name = &profileName
		updates++
	}
	if flags.Changed("goal") {
		g, err := model.ParseGoalType(profileGoal)
		if err != nil {
			return patch, 0, err
		}
		patch.GoalType = &g
		updates++
	}
	if flags.Changed("age") {
		patch.Age = &profileAge
		updates++
	}
	if flags.Changed("gender") {
		g, err := model.ParseGender(profileGender)
		if err != nil {
			return patch, 0, err
		}
		patch.Gender = &g
		updates++
	}
	if flags.Changed("height") {
		cm := prefs.HeightUnit.ToCm(profileHeight)
		patch.HeightCm = &cm
		updates++
	}
	if flags.Changed("weight") {
		kg := prefs.WeightUnit.ToKg(profileWeight)
		patch.WeightKg = &kg
		updates++
	}
	if flags.Changed("activity") {
		a, err := model.ParseActivityLevel(profileActivity)
		if err != nil {
			return patch, 0, err
		}
		patch.ActivityLevel = &a
		updates++
	}
	if flags.Changed("target-weight") {
		kg := prefs.WeightUnit.ToKg(profileTargetWeight)
		patch.TargetWeightKg = &kg
		updates++
	}
	if flags.Changed("rate") {
		r, err := model.ParseWeightChangeRate(profileRate)
		if err != nil {
			return patch, 0, err
		}
		patch.WeightChangeRate = &r
		updates++
	}
	if flags.Changed("diet") {
		patch.DietaryPreferences = splitList(profileDiet)
		updates++
	}
	return patch, updates, nil
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the profile back to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(_ *sql.DB, st *service.State) error {
			st.Profile.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "Profile reset")
			return nil
		})
	},
}

var profileDietCmd = &cobra.Command{
	Use:   "diet",
	Short: "Manage dietary preferences",
}

var profileDietAddCmd = &cobra.Command{
	Use:   "add <preference>",
	Short: "Add a dietary preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(_ *sql.DB, st *service.State) error {
			if err := st.Profile.AddDietaryPreference(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Diet: %s\n", strings.Join(st.Profile.Profile().DietaryPreferences, ", "))
			return nil
		})
	},
}

var profileDietRemoveCmd = &cobra.Command{
	Use:   "remove <preference>",
	Short: "Remove a dietary preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(_ *sql.DB, st *service.State) error {
			st.Profile.RemoveDietaryPreference(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Diet: %s\n", orDash(strings.Join(st.Profile.Profile().DietaryPreferences, ", ")))
			return nil
		})
	},
}

var profileDietSetCmd = &cobra.Command{
	Use:   "set [preference...]",
	Short: "Replace all dietary preferences (no arguments clears them)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(_ *sql.DB, st *service.State) error {
			prefs := make([]string, 0, len(args))
			for _, a := range args {
				prefs = append(prefs, splitList(a)...)
			}
			st.Profile.SetDietaryPreferences(prefs)
			fmt.Fprintf(cmd.OutOrStdout(), "Diet: %s\n", orDash(strings.Join(st.Profile.Profile().DietaryPreferences, ", ")))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd, profileResetCmd, profileDietCmd)
	profileDietCmd.AddCommand(profileDietAddCmd, profileDietRemoveCmd, profileDietSetCmd)

	profileShowCmd.Flags().BoolVar(&profileShowJSON, "json", false, "Output JSON")

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "", "Goal: weight-loss, maintenance, muscle-gain")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years (13-120)")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "Gender: male, female, other")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in the configured height unit")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in the configured weight unit")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "Activity: sedentary, lightly-active, moderately-active, very-active, extremely-active")
	profileSetCmd.Flags().Float64Var(&profileTargetWeight, "target-weight", 0, "Target weight in the configured weight unit")
	profileSetCmd.Flags().StringVar(&profileRate, "rate", "", "Weight change rate: slow, moderate, fast")
	profileSetCmd.Flags().StringVar(&profileDiet, "diet", "", "Dietary preferences (comma-separated, replaces existing)")
}
