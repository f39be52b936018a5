package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/kanosa0101/TODO-List/internal/todoctl/client"
	"github.com/kanosa0101/TODO-List/internal/todoctl/cmd/util"
	"github.com/kanosa0101/TODO-List/pkg/version"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	accent     = color.New(color.FgHiYellow, color.Bold).SprintFunc()
	userText   = color.New(color.FgHiBlue).SprintFunc()
	agentLabel = color.New(color.FgHiMagenta, color.Bold).SprintFunc()
	dim        = color.New(color.Faint).SprintFunc()
	errLabel   = color.New(color.FgHiRed, color.Bold).SprintFunc()
)

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func separator() string {
	n := termWidth() - 2
	if n < 20 {
		n = 20
	}
	return dim(strings.Repeat("-", n))
}

func printBanner(streams util.IOStreams, c *client.AgentClient) {
	out := streams.Out
	fmt.Fprintln(out, separator())
	fmt.Fprintf(out, "%s %s\n\n", accent("todoctl chat"), version.GitVersion)
	fmt.Fprintf(out, "  Server: %s\n", c.BaseURL)
	if c.Token != "" {
		fmt.Fprintln(out, "  Tools:  enabled")
	} else {
		fmt.Fprintln(out, "  Tools:  disabled (pass --token to let the agent manage your todos)")
	}
	fmt.Fprintf(out, "\n%s\n", accent("Tips:"))
	fmt.Fprintln(out, "  /clear  - reset conversation")
	fmt.Fprintln(out, "  /quit   - exit")
	fmt.Fprintln(out, separator())
	fmt.Fprintln(out)
}

// renderMarkdown renders an answer for the terminal; on failure the raw text
// is returned.
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = 76
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithColorProfile(termenv.ANSI256),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// RunInteractive runs a line-oriented chat session. History lives only in
// this process.
func RunInteractive(ctx context.Context, c *client.AgentClient, streams util.IOStreams) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := streams.Out
	printBanner(streams, c)

	var history []client.ChatMessage
	scanner := bufio.NewScanner(streams.In)
	prompt := accent("> ")

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() || ctx.Err() != nil {
			fmt.Fprintf(out, "\n%s\n\n", dim("Goodbye!"))
			return nil
		}

		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "":
			continue
		case "/quit", "/exit":
			fmt.Fprintf(out, "\n%s\n\n", dim("Goodbye!"))
			return nil
		case "/clear":
			history = nil
			fmt.Fprintf(out, "%s\n\n", dim("Conversation cleared."))
			continue
		}

		fmt.Fprintf(out, "%s\n%s\n%s\n", separator(), userText(input), separator())
		fmt.Fprintln(out, agentLabel("agent"))
		history = append(history, client.ChatMessage{Role: "user", Content: input})

		reply, err := c.ChatStream(ctx, history, func(delta string) {
			fmt.Fprint(out, delta)
		})
		fmt.Fprintln(out)

		if err != nil {
			fmt.Fprintf(out, "%s %v\n\n", errLabel("Error:"), err)
			if ctx.Err() != nil {
				return nil
			}
			history = history[:len(history)-1]
			continue
		}
		history = append(history, client.ChatMessage{Role: "assistant", Content: reply})

		// Replace the raw streamed text with its markdown rendering.
		if isTerminal(out) {
			for i := 0; i < strings.Count(reply, "\n")+1; i++ {
				fmt.Fprint(out, "\033[A\033[K")
			}
			fmt.Fprintln(out, renderMarkdown(reply, termWidth()-4))
		}
		fmt.Fprintln(out)
	}
}

// RunOnce sends one message and streams the answer to out.
func RunOnce(ctx context.Context, c *client.AgentClient, message string, out client.StreamCallback) (string, error) {
	return c.ChatStream(ctx, []client.ChatMessage{{Role: "user", Content: message}}, out)
}
