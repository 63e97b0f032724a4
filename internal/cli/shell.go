package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// zshWidget binds ctrl-x ctrl-s to the selection flow. The widget takes the
// word under the cursor as the initial query, rewrites the buffer with the
// chosen alias and, in confirm mode, accepts the line immediately.
const zshWidget = `# sshsel zsh integration. Add to ~/.zshrc:
#   eval "$(sshsel shell-init zsh)"
sshsel-host-widget() {
  local out mode target
  out="$(sshsel select --query "${LBUFFER##* }")"
  if [[ -z "$out" ]]; then
    zle reset-prompt
    return 0
  fi
  mode="${out%%$'\t'*}"
  target="${out#*$'\t'}"
  LBUFFER="ssh ${target}"
  RBUFFER=""
  zle reset-prompt
  if [[ "$mode" == "confirm" ]]; then
    zle accept-line
  fi
}
zle -N sshsel-host-widget
bindkey '^X^S' sshsel-host-widget
`

const bashWidget = `# sshsel bash integration. Add to ~/.bashrc:
#   eval "$(sshsel shell-init bash)"
__sshsel_host_widget() {
  local out mode target
  out="$(sshsel select --query "${READLINE_LINE##* }")"
  [[ -z "$out" ]] && return 0
  mode="${out%%$'\t'*}"
  target="${out#*$'\t'}"
  READLINE_LINE="ssh ${target}"
  READLINE_POINT=${#READLINE_LINE}
  if [[ "$mode" == "confirm" ]]; then
    eval "$READLINE_LINE"
    READLINE_LINE=""
    READLINE_POINT=0
  fi
}
bind -x '"\C-x\C-s": __sshsel_host_widget'
`

func newShellInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "shell-init <zsh|bash>",
		Short:     "Print the shell widget that wires sshsel into the command line",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"zsh", "bash"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "zsh":
				fmt.Fprint(cmd.OutOrStdout(), zshWidget)
			case "bash":
				fmt.Fprint(cmd.OutOrStdout(), bashWidget)
			default:
				return fmt.Errorf("unsupported shell %q (zsh and bash are supported)", args[0])
			}
			return nil
		},
	}
}
