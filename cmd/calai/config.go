package calai

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage calai local configuration",
}

var (
	cfgWeightUnit string
	cfgHeightUnit string
	cfgTolerance  string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			for _, f := range []struct {
				flag, key string
				value     *string
			}{
				{"weight-unit", service.ConfigWeightUnit, &cfgWeightUnit},
				{"height-unit", service.ConfigHeightUnit, &cfgHeightUnit},
				{"tolerance", service.ConfigAdherenceTolerance, &cfgTolerance},
			} {
				if !cmd.Flags().Changed(f.flag) {
					continue
				}
				if err := service.SetConfig(sqldb, f.key, *f.value); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show current configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if len(args) == 1 {
				value, ok, err := service.GetConfig(sqldb, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("config key %q is not set", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			}
			cfg, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(cfg))
			for k := range cfg {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, cfg[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgWeightUnit, "weight-unit", "", "Weight unit: kg or lb")
	configSetCmd.Flags().StringVar(&cfgHeightUnit, "height-unit", "", "Height unit: cm or in")
	configSetCmd.Flags().StringVar(&cfgTolerance, "tolerance", "", "Default analytics adherence tolerance (0.10 = 10%)")
}
