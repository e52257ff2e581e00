package calai

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/MEME-CORP/calaiweb/internal/store"
	"github.com/spf13/cobra"
)

// Profile fields collected on each onboarding step, in step order.
var stepFields = [store.TotalSteps]string{
	"--goal",
	"--age --gender --height --weight",
	"--activity",
	"--diet (or `calai profile diet add`)",
	"--target-weight --rate",
}

var onboardingCmd = &cobra.Command{
	Use:   "onboarding",
	Short: "Walk through profile setup",
}

var onboardingStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current onboarding step",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(_ *sql.DB, st *service.State) error {
			printOnboarding(cmd, st)
			return nil
		})
	},
}

func printOnboarding(cmd *cobra.Command, st *service.State) {
	out := cmd.OutOrStdout()
	step := st.Onboarding.Step()
	names := make([]string, 0, store.TotalSteps)
	for i := 1; i <= store.TotalSteps; i++ {
		name := store.StepName(i)
		if i == step && !st.Onboarding.Completed() {
			name = "[" + name + "]"
		}
		names = append(names, name)
	}
	fmt.Fprintln(out, strings.Join(names, " > "))
	if st.Onboarding.Completed() {
		fmt.Fprintln(out, "Onboarding complete")
		return
	}
	fmt.Fprintf(out, "Step %d of %d: %s\n", step, store.TotalSteps, store.StepName(step))
	fmt.Fprintf(out, "Set with: calai profile set %s\n", stepFields[step-1])
}

var onboardingNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Move to the next step, finishing onboarding on the last one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(_ *sql.DB, st *service.State) error {
			from := st.Onboarding.Step()
			if from == 2 {
				if missing := st.Profile.Missing(); len(missing) > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s not set; targets will use defaults\n", strings.Join(missing, ", "))
				}
			}
			if err := st.Onboarding.Advance(); err != nil {
				if errors.Is(err, store.ErrOnboardingCompleted) {
					return fmt.Errorf("%w; run `calai onboarding reset` to start over", err)
				}
				return err
			}
			if st.Onboarding.Completed() {
				fmt.Fprintln(cmd.OutOrStdout(), "Onboarding complete")
				fmt.Fprintf(cmd.OutOrStdout(), "Recommended: %s\n", formatTargets(st.Profile.RecommendedTargets()))
				fmt.Fprintln(cmd.OutOrStdout(), "Run `calai targets recommend --apply` to use them")
				return nil
			}
			printOnboarding(cmd, st)
			return nil
		})
	},
}

var onboardingBackCmd = &cobra.Command{
	Use:   "back",
	Short: "Go back one step",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(_ *sql.DB, st *service.State) error {
			st.Onboarding.Retreat()
			printOnboarding(cmd, st)
			return nil
		})
	},
}

var onboardingStepCmd = &cobra.Command{
	Use:   "step <n>",
	Short: "Jump to a step (clamped to 1-5)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return fmt.Errorf("invalid step %q", args[0])
		}
		return withState(func(_ *sql.DB, st *service.State) error {
			st.Onboarding.SetStep(n)
			printOnboarding(cmd, st)
			return nil
		})
	},
}

var onboardingResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restart onboarding from the first step",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(func(_ *sql.DB, st *service.State) error {
			st.Onboarding.Reset()
			printOnboarding(cmd, st)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(onboardingCmd)
	onboardingCmd.AddCommand(onboardingStatusCmd, onboardingNextCmd, onboardingBackCmd, onboardingStepCmd, onboardingResetCmd)
}
