package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// completionCmd generates shell completion scripts for wyclef.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for wyclef.

Completions cover flags and subcommands; the log file argument completes to
file names ending in .clef, .json or .log.

To install completions:

  Bash (Linux):
    wyclef completion bash | sudo tee /etc/bash_completion.d/wyclef > /dev/null

  Zsh:
    wyclef completion zsh > "${fpath[1]}/_wyclef"

  Fish:
    wyclef completion fish > ~/.config/fish/completions/wyclef.fish

  PowerShell:
    wyclef completion powershell > wyclef.ps1
    # Then add ". wyclef.ps1" to your PowerShell profile`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		root := cmd.Root()
		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

// completeLogFile offers log files for the positional argument.
func completeLogFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"clef", "json", "log"}, cobra.ShellCompDirectiveFilterFileExt
}

func init() {
	rootCmd.ValidArgsFunction = completeLogFile
	rootCmd.AddCommand(completionCmd)
}
