package calai

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "View weekly, monthly, and range analytics",
}

var (
	analyticsJSON      bool
	analyticsTolerance float64
)

var weekPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

var (
	weekArg  string
	monthArg string
)

// periodCmd builds a subcommand that resolves *arg against the current time
// in the configured zone and reports on the resulting span.
func periodCmd(use, short string, arg *string, resolve func(string, time.Time) (time.Time, time.Time, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := location()
			if err != nil {
				return err
			}
			from, to, err := resolve(*arg, time.Now().In(loc))
			if err != nil {
				return err
			}
			return runAnalytics(cmd, from, to)
		},
	}
}

var (
	analyticsWeekCmd  = periodCmd("week", "Weekly analytics", &weekArg, resolveWeekRange)
	analyticsMonthCmd = periodCmd("month", "Monthly analytics", &monthArg, resolveMonthRange)
)

var (
	rangeFrom string
	rangeTo   string
)

var analyticsRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Analytics for an inclusive date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		if rangeFrom == "" || rangeTo == "" {
			return fmt.Errorf("--from and --to are required")
		}
		start, err := parseDay("from", rangeFrom)
		if err != nil {
			return err
		}
		end, err := parseDay("to", rangeTo)
		if err != nil {
			return err
		}
		return runAnalytics(cmd, start, end)
	},
}

func runAnalytics(cmd *cobra.Command, from, to time.Time) error {
	return withState(func(sqldb *sql.DB, st *service.State) error {
		if err := requireOnboarded(st); err != nil {
			return err
		}
		tolerance := analyticsTolerance
		if !cmd.Flags().Changed("tolerance") {
			prefs, err := service.LoadPreferences(sqldb)
			if err != nil {
				return err
			}
			tolerance = prefs.Tolerance
		}
		report, err := service.AnalyticsRange(st.Meals.Meals(), st.Meals.Targets(), from, to, tolerance)
		if err != nil {
			return err
		}
		if analyticsJSON {
			b, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal analytics json: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		printAnalyticsTable(cmd, report)
		return nil
	})
}

func printAnalyticsTable(cmd *cobra.Command, r *service.AnalyticsReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Range: %s to %s\n", r.FromDate, r.ToDate)
	if r.DaysWithMeals == 0 {
		fmt.Fprintln(out, "No meals logged in range")
		return
	}
	fmt.Fprintf(out, "Totals: %s P=%.1f C=%.1f F=%.1f\n", kcal(r.TotalCalories), r.TotalProtein, r.TotalCarbs, r.TotalFat)
	fmt.Fprintf(out, "Averages/day over %d day(s): %.1f kcal P=%.1f C=%.1f F=%.1f\n", r.DaysWithMeals, r.AverageCaloriesPerDay, r.AverageProteinPerDay, r.AverageCarbsPerDay, r.AverageFatPerDay)
	if r.HighestDay != nil && r.LowestDay != nil {
		fmt.Fprintf(out, "Highest day: %s (%s)\n", r.HighestDay.Date, kcal(r.HighestDay.Calories))
		fmt.Fprintf(out, "Lowest day: %s (%s)\n", r.LowestDay.Date, kcal(r.LowestDay.Calories))
	}
	fmt.Fprintf(out, "Adherence: %d/%d days within goals (%.1f%%, tolerance %.0f%%)\n", r.Adherence.WithinGoalDays, r.Adherence.EvaluatedDays, r.Adherence.PercentWithin, r.Adherence.Tolerance*100)

	fmt.Fprintln(out, "\nBy Category")
	fmt.Fprintln(out, "CATEGORY\tMEALS\tKCAL\tP\tC\tF")
	for _, c := range r.ByCategory {
		fmt.Fprintf(out, "%s\t%d\t%d\t%.1f\t%.1f\t%.1f\n", c.Category, c.Meals, c.Calories, c.Protein, c.Carbs, c.Fat)
	}

	fmt.Fprintln(out, "\nDays")
	fmt.Fprintln(out, "DATE\tMEALS\tKCAL\tP\tC\tF")
	for _, d := range r.Days {
		fmt.Fprintf(out, "%s\t%d\t%d\t%.1f\t%.1f\t%.1f\n", d.Date, d.Meals, d.Calories, d.Protein, d.Carbs, d.Fat)
	}
}

// resolveWeekRange returns Monday..Sunday of an ISO week ("YYYY-Www"), or of
// the week containing now when week is empty.
func resolveWeekRange(week string, now time.Time) (time.Time, time.Time, error) {
	if week == "" {
		return weekSpan(mondayOf(now))
	}
	m := weekPattern.FindStringSubmatch(week)
	if m == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("week %q: want YYYY-Www", week)
	}
	year, _ := strconv.Atoi(m[1])
	n, _ := strconv.Atoi(m[2])
	// Dec 28 always falls in the last ISO week of its year.
	_, last := time.Date(year, time.December, 28, 12, 0, 0, 0, time.UTC).ISOWeek()
	if n < 1 || n > last {
		return time.Time{}, time.Time{}, fmt.Errorf("week %q: %d has weeks 01-%02d", week, year, last)
	}
	// Jan 4 always falls in week 1.
	first := mondayOf(time.Date(year, time.January, 4, 0, 0, 0, 0, now.Location()))
	return weekSpan(first.AddDate(0, 0, 7*(n-1)))
}

func resolveMonthRange(month string, now time.Time) (time.Time, time.Time, error) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if month != "" {
		var err error
		if first, err = time.ParseInLocation("2006-01", month, now.Location()); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("month %q: want YYYY-MM", month)
		}
	}
	return first, first.AddDate(0, 1, -1), nil
}

func weekSpan(monday time.Time) (time.Time, time.Time, error) {
	return monday, monday.AddDate(0, 0, 6), nil
}

// mondayOf truncates t to midnight of the Monday starting its ISO week.
func mondayOf(t time.Time) time.Time {
	back := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-back, 0, 0, 0, 0, t.Location())
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.AddCommand(analyticsWeekCmd, analyticsMonthCmd, analyticsRangeCmd)

	for _, c := range []*cobra.Command{analyticsWeekCmd, analyticsMonthCmd, analyticsRangeCmd} {
		c.Flags().BoolVar(&analyticsJSON, "json", false, "Output as JSON")
		c.Flags().Float64Var(&analyticsTolerance, "tolerance", service.DefaultAdherenceTolerance, "Macro adherence tolerance (0.10 = 10%); default from `calai config`")
	}
	analyticsWeekCmd.Flags().StringVar(&weekArg, "week", "", "ISO week in format YYYY-Www")
	analyticsMonthCmd.Flags().StringVar(&monthArg, "month", "", "Month in format YYYY-MM")
	analyticsRangeCmd.Flags().StringVar(&rangeFrom, "from", "", "Start date YYYY-MM-DD")
	analyticsRangeCmd.Flags().StringVar(&rangeTo, "to", "", "End date YYYY-MM-DD")
}
