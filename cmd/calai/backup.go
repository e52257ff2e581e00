package calai

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/app"
	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy, list, and restore database snapshots",
}

var (
	backupTo       string
	backupDir      string
	backupListJSON bool
	restoreForce   bool
)

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Snapshot the database with a SHA-256 sidecar",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbFile, err := resolveDBPath()
		if err != nil {
			return err
		}
		target := backupTo
		if target == "" {
			target = filepath.Join(resolveBackupDir(dbFile), service.BackupFileName(time.Now()))
		}
		info, err := service.CreateBackup(dbFile, target)
		if err != nil {
			return err
		}
		logger.Printf("backup %s (%d bytes)", info.Path, info.SizeBytes)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created backup: %s\n", info.Path)
		fmt.Fprintf(out, "SHA-256: %s\n", info.Checksum)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbFile, err := resolveDBPath()
		if err != nil {
			return err
		}
		items, err := service.ListBackups(resolveBackupDir(dbFile))
		if err != nil {
			return err
		}
		if backupListJSON {
			b, err := json.MarshalIndent(items, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal backups json: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No backups")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "FILE\tBYTES\tMODIFIED\tSHA-256")
		for _, b := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", b.Path, printer.Sprintf("%d", b.SizeBytes), b.CreatedAt.Format(time.RFC3339), orDash(b.Checksum))
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace the database with a snapshot",
	Long:  "Replace the database with a snapshot. With --force an existing database is first copied to a pre-restore snapshot in the backup directory.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbFile, err := resolveDBPath()
		if err != nil {
			return err
		}
		source := args[0]
		if restoreForce {
			if _, err := os.Stat(dbFile); err == nil {
				safety := filepath.Join(resolveBackupDir(dbFile), "pre-restore-"+service.BackupFileName(time.Now()))
				if _, err := service.CreateBackup(dbFile, safety); err != nil {
					return fmt.Errorf("pre-restore snapshot: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved current database to %s\n", safety)
			}
		}
		if err := service.RestoreBackup(source, dbFile, restoreForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", dbFile, source)
		return nil
	},
}

// resolveBackupDir picks --dir, then CALAI_BACKUP_DIR, then backups/ next
// to the database.
func resolveBackupDir(dbFile string) string {
	switch {
	case backupDir != "":
		return backupDir
	case cfg.BackupDir != "":
		return cfg.BackupDir
	default:
		return app.DefaultBackupDir(dbFile)
	}
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCmd.PersistentFlags().StringVar(&backupDir, "dir", "", "Backup directory (env CALAI_BACKUP_DIR, default: backups/ next to the database)")
	backupCreateCmd.Flags().StringVar(&backupTo, "to", "", "Exact snapshot path (overrides --dir)")
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "Output JSON")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Overwrite an existing database")
}
