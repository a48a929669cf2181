package main

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for halfedge.

To load completions:

Bash:

  $ source <(halfedge completion bash)

  To load completions for each session, execute once:
  Linux:
    $ halfedge completion bash > /etc/bash_completion.d/halfedge
  macOS:
    $ halfedge completion bash > /usr/local/etc/bash_completion.d/halfedge

Zsh:

  If shell completion is not already enabled in your environment,
  you will need to enable it. You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  To load completions for each session, execute once:
  $ halfedge completion zsh > "${fpath[1]}/_halfedge"

  You will need to start a new shell for this setup to take effect.

Fish:

  $ halfedge completion fish | source

  To load completions for each session, execute once:
  $ halfedge completion fish > ~/.config/fish/completions/halfedge.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		default:
			return rootCmd.GenFishCompletion(os.Stdout, true)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
