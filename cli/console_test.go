package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	orchestratorx "github.com/tanpawarit/insurance-callcenter-agent/agent/agents/orchestrator"
	sessionx "github.com/tanpawarit/insurance-callcenter-agent/agent/session"
	storex "github.com/tanpawarit/insurance-callcenter-agent/agent/store"
)

type echoMessenger struct {
	texts []string
	err   error
}

func (e *echoMessenger) HandleMessage(ctx context.Context, sessionID string, text string) (orchestratorx.Reply, error) {
	e.texts = append(e.texts, text)
	if e.err != nil {
		return orchestratorx.Reply{}, e.err
	}
	return orchestratorx.Reply{Text: "echo: " + text}, nil
}

type fixedCounter int

func (f fixedCounter) CountClaims(context.Context) (int, error) { return int(f), nil }

type nopStore struct{}

func (nopStore) CreatePolicy(context.Context, storex.PolicyInput) (*storex.Policy, error) {
	return nil, nil
}

func (nopStore) GetPolicyByNumber(context.Context, string) (*storex.Policy, bool, error) {
	return nil, false, nil
}

func (nopStore) CreateClaim(context.Context, int64, float64, string, string) (*storex.Claim, error) {
	return nil, errors.New("unused")
}

func (nopStore) GetClaimStatus(context.Context, int64) (string, bool, error) {
	return "", false, nil
}

func (nopStore) CreateOrGetCustomer(context.Context, string, string, string) (*storex.Customer, error) {
	return nil, errors.New("unused")
}

func TestRunConsole(t *testing.T) {
	t.Parallel()

	conv := sessionx.NewManager(nopStore{}, sessionx.Config{IdleTTL: time.Minute}).Start()
	agent := &echoMessenger{}

	in := strings.NewReader("hello\n\n/stats\n/snapshot\nmy policy is P1\n/quit\nignored\n")
	var out bytes.Buffer
	if err := runConsole(context.Background(), in, &out, conv, agent, fixedCounter(3)); err != nil {
		t.Fatalf("runConsole() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"agent> Welcome to Jindal Insurance Services!",
		"agent> echo: hello",
		"claims on file: 3",
		`"policy"`,
		"agent> echo: my policy is P1",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if len(agent.texts) != 2 {
		t.Fatalf("expected 2 agent turns, got %v", agent.texts)
	}
}

func TestRunConsoleReportsErrors(t *testing.T) {
	t.Parallel()

	conv := sessionx.NewManager(nopStore{}, sessionx.Config{}).Start()
	agent := &echoMessenger{err: errors.New("model unavailable")}

	var out bytes.Buffer
	if err := runConsole(context.Background(), strings.NewReader("hi\n"), &out, conv, agent, fixedCounter(0)); err != nil {
		t.Fatalf("runConsole() error = %v", err)
	}
	if !strings.Contains(out.String(), "error: model unavailable") {
		t.Fatalf("unexpected output: %s", out.String())
	}
}
