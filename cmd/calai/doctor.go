package calai

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			printDoctorReport(cmd, report)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Reset state: %s\n", orDash(strings.Join(report.ResetState, ", ")))
				// Re-check so the exit status reflects the fixed state.
				if report, err = service.RunDoctor(sqldb, false); err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "No issues found")
			return nil
		})
	},
}

func printDoctorReport(cmd *cobra.Command, r service.DoctorReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Undecodable state: %s\n", orDash(strings.Join(r.UndecodableState, ", ")))
	fmt.Fprintf(out, "Duplicate meal ids: %s\n", orDash(strings.Join(r.DuplicateMealIDs, ", ")))
	fmt.Fprintf(out, "Invalid meals: %d\n", r.InvalidMeals)
	fmt.Fprintf(out, "Invalid profile: %s\n", orDash(r.InvalidProfile))
	fmt.Fprintf(out, "Onboarding step out of range: %t\n", r.OnboardingInvalid)
	if len(r.UnknownState) > 0 {
		fmt.Fprintf(out, "Unknown state keys (ignored): %s\n", strings.Join(r.UnknownState, ", "))
	}
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Reset state rows that cannot be decoded")
}
