package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kanosa0101/TODO-List/internal/todoctl/client"
	"github.com/kanosa0101/TODO-List/internal/todoctl/cmd/util"
	"github.com/spf13/cobra"
)

var chatExample = heredoc.Doc(`
	# Interactive chat
	todoctl chat

	# Single message
	todoctl chat "What is due this week?"

	# Let the agent read and change your todos
	todoctl chat --token=$TODO_TOKEN "Add a todo to buy milk tomorrow at 9"

	# Connect to another agent
	todoctl chat --server=http://agent.internal:5000 "hello"`)

type ChatOptions struct {
	Temperature float32

	factory util.Factory
	util.IOStreams
}

func NewCmdChat(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := NewChatOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "chat [message]",
		DisableFlagsInUseLine: true,
		Short:                 "Chat with the todo-agent",
		Long: heredoc.Doc(`
			Start a conversation with the todo-agent.

			Without arguments an interactive session opens. With a message argument
			the message is sent once and the streamed answer printed.`),
		Example: chatExample,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context(), args))
		},
	}

	cmd.Flags().Float32Var(&o.Temperature, "temperature", o.Temperature, "Sampling temperature sent with every request.")

	return cmd
}

func NewChatOptions(f util.Factory, ioStreams util.IOStreams) *ChatOptions {
	return &ChatOptions{
		factory:   f,
		IOStreams: ioStreams,
	}
}

func (o *ChatOptions) Run(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c := client.NewAgentClient(o.factory.ServerAddr(), o.factory.Token(), o.factory.HTTPClient())
	c.Temperature = o.Temperature

	if len(args) > 0 {
		_, err := RunOnce(ctx, c, strings.Join(args, " "), func(delta string) {
			fmt.Fprint(o.Out, delta)
		})
		fmt.Fprintln(o.Out)
		return err
	}

	return RunInteractive(ctx, c, o.IOStreams)
}
