package calai

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/MEME-CORP/calaiweb/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and manage meals",
}

var (
	mealID       string
	mealName     string
	mealPortion  string
	mealCalories int
	mealProtein  float64
	mealCarbs    float64
	mealFat      float64
	mealCategory string
	mealDate     string
	mealTime     string
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		logged, err := parseDateTimeOrNow(mealDate, mealTime)
		if err != nil {
			return err
		}
		category, err := model.ParseMealCategory(mealCategory)
		if err != nil {
			return err
		}
		id := strings.TrimSpace(mealID)
		if id == "" {
			id = uuid.NewString()
		}
		return withState(func(_ *sql.DB, st *service.State) error {
			if err := requireOnboarded(st); err != nil {
				return err
			}
			m := model.Meal{
				ID:       id,
				Name:     mealName,
				Portion:  mealPortion,
				Calories: mealCalories,
				ProteinG: mealProtein,
				CarbsG:   mealCarbs,
				FatG:     mealFat,
				Category: category,
				LoggedAt: logged,
			}
			if err := st.Meals.Add(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added meal %s\n", id)
			return nil
		})
	},
}

var (
	listDate     string
	listFromDate string
	listToDate   string
	listCategory string
	listJSON     bool
)

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals (default: today)",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := resolveListRange()
		if err != nil {
			return err
		}
		var category model.MealCategory
		if listCategory != "" {
			if category, err = model.ParseMealCategory(listCategory); err != nil {
				return err
			}
		}
		return withState(func(_ *sql.DB, st *service.State) error {
			if err := requireOnboarded(st); err != nil {
				return err
			}
			fromKey, toKey := store.DayKey(from), store.DayKey(to)
			meals := make([]model.Meal, 0)
			for _, m := range st.Meals.Meals() {
				key := store.DayKey(m.LoggedAt)
				if key < fromKey || key > toKey {
					continue
				}
				if category != "" && m.Category != category {
					continue
				}
				meals = append(meals, m)
			}
			if listJSON {
				b, err := json.MarshalIndent(meals, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal meals json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tCATEGORY\tNAME\tPORTION\tKCAL\tP\tC\tF")
			for _, m := range meals {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\t%d\t%.1f\t%.1f\t%.1f\n", m.ID, m.LoggedAt.Format("2006-01-02 15:04"), model.Label(m.Category), m.Name, orDash(m.Portion), m.Calories, m.ProteinG, m.CarbsG, m.FatG)
			}
			return nil
		})
	},
}

func resolveListRange() (time.Time, time.Time, error) {
	if listDate != "" && (listFromDate != "" || listToDate != "") {
		return time.Time{}, time.Time{}, fmt.Errorf("use either --date or --from/--to")
	}
	if listFromDate == "" && listToDate == "" {
		day, err := parseDay("date", listDate)
		return day, day, err
	}
	from, err := parseDay("from", listFromDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDay("to", listToDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from date must be <= --to date")
	}
	return from, to, nil
}

var mealShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(_ *sql.DB, st *service.State) error {
			if err := requireOnboarded(st); err != nil {
				return err
			}
			m, ok := st.Meals.Meal(args[0])
			if !ok {
				return fmt.Errorf("meal %q not found", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %s\n", m.ID)
			fmt.Fprintf(out, "Logged: %s\n", m.LoggedAt.Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "Category: %s\n", model.Label(m.Category))
			fmt.Fprintf(out, "Name: %s\n", m.Name)
			fmt.Fprintf(out, "Portion: %s\n", orDash(m.Portion))
			fmt.Fprintf(out, "Calories: %d\n", m.Calories)
			fmt.Fprintf(out, "Protein: %.1f\nCarbs: %.1f\nFat: %.1f\n", m.ProteinG, m.CarbsG, m.FatG)
			return nil
		})
	},
}

var mealEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit fields of a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, updates, err := mealPatchFromFlags(cmd)
		if err != nil {
			return err
		}
		if updates == 0 {
			return fmt.Errorf("set at least one flag")
		}
		return withState(func(_ *sql.DB, st *service.State) error {
			if err := requireOnboarded(st); err != nil {
				return err
			}
			found, err := st.Meals.Edit(args[0], patch)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "No meal with id %s; nothing changed\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated meal %s\n", args[0])
			return nil
		})
	},
}

func mealPatchFromFlags(cmd *cobra.Command) (model.MealPatch, int, error) {
	var patch model.MealPatch
	updates := 0
	flags := cmd.Flags()
	if flags.Changed("name") {
		patch.Name = &mealName
		updates++
	}
	if flags.Changed("portion") {
		patch.Portion = &mealPortion
		updates++
	}
	if flags.Changed("calories") {
		patch.Calories = &mealCalories
		updates++
	}
	if flags.Changed("protein") {
		patch.ProteinG = &mealProtein
		updates++
	}
	if flags.Changed("carbs") {
		patch.CarbsG = &mealCarbs
		updates++
	}
	if flags.Changed("fat") {
		patch.FatG = &mealFat
		updates++
	}
	if flags.Changed("category") {
		c, err := model.ParseMealCategory(mealCategory)
		if err != nil {
			return patch, 0, err
		}
		patch.Category = &c
		updates++
	}
	if flags.Changed("date") || flags.Changed("time") {
		if !flags.Changed("date") || !flags.Changed("time") {
			return patch, 0, fmt.Errorf("both --date and --time are required to move a meal")
		}
		t, err := parseDateTimeOrNow(mealDate, mealTime)
		if err != nil {
			return patch, 0, err
		}
		patch.LoggedAt = &t
		updates++
	}
	return patch, updates, nil
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(_ *sql.DB, st *service.State) error {
			if err := requireOnboarded(st); err != nil {
				return err
			}
			if !st.Meals.Delete(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "No meal with id %s; nothing changed\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", args[0])
			return nil
		})
	},
}

func addMealFieldFlags(c *cobra.Command) {
	c.Flags().StringVar(&mealName, "name", "", "Meal name")
	c.Flags().StringVar(&mealPortion, "portion", "", "Portion description, e.g. \"1 bowl\"")
	c.Flags().IntVar(&mealCalories, "calories", 0, "Calories")
	c.Flags().Float64Var(&mealProtein, "protein", 0, "Protein grams")
	c.Flags().Float64Var(&mealCarbs, "carbs", 0, "Carbs grams")
	c.Flags().Float64Var(&mealFat, "fat", 0, "Fat grams")
	c.Flags().StringVar(&mealCategory, "category", "", "Category: breakfast, lunch, dinner, snack")
	c.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default today)")
	c.Flags().StringVar(&mealTime, "time", "", "Time HH:MM")
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealShowCmd, mealEditCmd, mealDeleteCmd)

	addMealFieldFlags(mealAddCmd)
	mealAddCmd.Flags().StringVar(&mealID, "id", "", "Meal id (default: random UUID)")
	_ = mealAddCmd.MarkFlagRequired("name")
	_ = mealAddCmd.MarkFlagRequired("calories")
	_ = mealAddCmd.MarkFlagRequired("category")

	addMealFieldFlags(mealEditCmd)

	mealListCmd.Flags().StringVar(&listDate, "date", "", "Date YYYY-MM-DD (default today)")
	mealListCmd.Flags().StringVar(&listFromDate, "from", "", "Start date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&listToDate, "to", "", "End date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
	mealListCmd.Flags().BoolVar(&listJSON, "json", false, "Output JSON")
}
