package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kanosa0101/TODO-List/internal/todoctl/cmd/chat"
	"github.com/kanosa0101/TODO-List/internal/todoctl/cmd/tools"
	"github.com/kanosa0101/TODO-List/internal/todoctl/cmd/util"
	"github.com/kanosa0101/TODO-List/pkg/utils/cliflag"
	"github.com/kanosa0101/TODO-List/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDefaultTodoCtlCommand creates the `todoctl` command with default arguments.
func NewDefaultTodoCtlCommand() *cobra.Command {
	return NewTodoCtlCommand(os.Stdin, os.Stdout, os.Stderr)
}

func NewTodoCtlCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	cmds := &cobra.Command{
		Use:   "todoctl",
		Short: "todoctl talks to the todo-agent from a terminal",
		Long: heredoc.Doc(`
			todoctl is the terminal client of the todo-agent.

			It chats with the agent over the streaming endpoint, so the agent can
			read and change your todos and notes when a token is supplied.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	cmds.SetIn(in)
	cmds.SetOut(out)
	cmds.SetErr(errOut)

	flags := cmds.PersistentFlags()
	flags.SetNormalizeFunc(cliflag.WordSepNormalizeFunc)
	flags.String(util.FlagServer, util.DefaultServer, "Address of the todo-agent.")
	flags.String(util.FlagToken, "", "Bearer token of your TODO-List account; enables todo and note tools.")

	viper.SetEnvPrefix("TODOCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(flags)

	f := util.NewDefaultFactory()
	ioStreams := util.IOStreams{In: in, Out: out, ErrOut: errOut}

	cmds.AddCommand(chat.NewCmdChat(f, ioStreams))
	cmds.AddCommand(tools.NewCmdTools(f, ioStreams))
	cmds.AddCommand(newCmdVersion(ioStreams))

	return cmds
}

func newCmdVersion(streams util.IOStreams) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(streams.Out, version.Get().Text())
		},
	}
}
