package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	orchestratorx "github.com/tanpawarit/insurance-callcenter-agent/agent/agents/orchestrator"
	promptx "github.com/tanpawarit/insurance-callcenter-agent/agent/prompt"
	sessionx "github.com/tanpawarit/insurance-callcenter-agent/agent/session"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Talk to the agent from the terminal",
	Long: `Console runs a text conversation with the agent, standing in for the
voice pipeline. Type /snapshot to see the session state, /stats for claim
totals and /quit to leave.`,
	Args: cobra.NoArgs,
	RunE: runConsoleCmd,
}

type messenger interface {
	HandleMessage(ctx context.Context, sessionID string, text string) (orchestratorx.Reply, error)
}

type claimCounter interface {
	CountClaims(ctx context.Context) (int, error)
}

func runConsoleCmd(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d, err := buildDeps(ctx, true, false)
	if err != nil {
		return err
	}
	defer d.Close()

	conv := d.sessions.Start()
	defer func() { _ = d.sessions.End(conv.ID) }()

	return runConsole(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), conv, d.orchestrator, d.store)
}

func runConsole(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	conv *sessionx.Conversation,
	agent messenger,
	claims claimCounter,
) error {
	fmt.Fprintf(out, "agent> %s\n", promptx.LoadPromptSet().Welcome)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/snapshot":
			raw, err := json.MarshalIndent(conv.Snapshot(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(raw))
			continue
		case "/stats":
			n, err := claims.CountClaims(ctx)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "claims on file: %d\n", n)
			continue
		}

		reply, err := agent.HandleMessage(ctx, conv.ID, line)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "agent> %s\n", reply.Text)
	}
}
