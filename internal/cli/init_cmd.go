package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wyclef-go/wyclef/internal/config"
)

// initFlagUser and initFlagForce are the flag values for the init subcommand.
var (
	initFlagUser  bool
	initFlagForce bool
)

// initCmd implements "wyclef init".
// It writes a commented wyclef.toml holding the default values.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter wyclef.toml",
	Long: `Write a commented wyclef.toml holding the default settings.

By default the file is created in the current directory, where it applies to
logs opened from this directory and its subdirectories. With --user it is
written to the per-user config directory and applies everywhere.

An existing file is preserved unless --force is supplied.

Examples:
  wyclef init            # ./wyclef.toml
  wyclef init --user     # e.g. ~/.config/wyclef/wyclef.toml
  wyclef init --force    # overwrite an existing ./wyclef.toml`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlagUser, "user", false, "Write to the per-user config directory")
	initCmd.Flags().BoolVar(&initFlagForce, "force", false, "Overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

// runInit is the RunE handler for the init command.
func runInit(cmd *cobra.Command, args []string) error {
	var dest string
	if initFlagUser {
		dest = config.UserConfigPath()
		if dest == "" {
			return fmt.Errorf("no user config directory on this platform")
		}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
		dest = filepath.Join(wd, config.ConfigFileName)
	}

	if err := config.WriteStarter(dest, initFlagForce); err != nil {
		return err
	}

	// Success output goes to stderr so stdout stays clean for scripts.
	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "Created %s\n\n", dest)
	fmt.Fprintln(stderr, "Next steps:")
	fmt.Fprintf(stderr, "  1. Edit %s\n", dest)
	fmt.Fprintln(stderr, "  2. Check it with: wyclef config validate")
	return nil
}
