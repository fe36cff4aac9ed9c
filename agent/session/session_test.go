package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
	storex "github.com/tanpawarit/insurance-callcenter-agent/agent/store"
)

type nopStore struct{}

func (nopStore) CreatePolicy(context.Context, storex.PolicyInput) (*storex.Policy, error) {
	return nil, nil
}

func (nopStore) GetPolicyByNumber(context.Context, string) (*storex.Policy, bool, error) {
	return nil, false, nil
}

func (nopStore) CreateClaim(context.Context, int64, float64, string, string) (*storex.Claim, error) {
	return nil, errors.New("not implemented")
}

func (nopStore) GetClaimStatus(context.Context, int64) (string, bool, error) {
	return "", false, nil
}

func (nopStore) CreateOrGetCustomer(context.Context, string, string, string) (*storex.Customer, error) {
	return nil, errors.New("not implemented")
}

func TestManagerLifecycle(t *testing.T) {
	t.Parallel()

	m := NewManager(nopStore{}, Config{IdleTTL: time.Minute, CleanupInterval: time.Minute})
	conv := m.Start()
	if conv.ID == "" || conv.Tools == nil {
		t.Fatalf("unexpected conversation: %#v", conv)
	}

	got, err := m.Get(conv.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != conv {
		t.Fatal("Get() must return the live conversation")
	}
	if m.Count() != 1 {
		t.Fatalf("Count() = %d", m.Count())
	}

	if err := m.End(conv.ID); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if _, err := m.Get(conv.ID); !errors.Is(err, contractx.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := m.End(conv.ID); !errors.Is(err, contractx.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second End, got %v", err)
	}
}

func TestManagerSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	m := NewManager(nopStore{}, Config{})
	a, b := m.Start(), m.Start()
	if a.ID == b.ID {
		t.Fatal("session ids must be unique")
	}
	if a.Tools == b.Tools {
		t.Fatal("sessions must not share tool state")
	}
}

func TestManagerIdleExpiry(t *testing.T) {
	t.Parallel()

	m := NewManager(nopStore{}, Config{IdleTTL: 20 * time.Millisecond, CleanupInterval: time.Hour})
	conv := m.Start()
	time.Sleep(50 * time.Millisecond)
	if _, err := m.Get(conv.ID); !errors.Is(err, contractx.ErrSessionNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func TestConversationHistoryKeepsWholeTurns(t *testing.T) {
	t.Parallel()

	conv := &Conversation{maxTurns: 2}
	for _, text := range []string{"one", "two", "three"} {
		conv.AppendTurn([]*schema.Message{
			schema.UserMessage(text),
			schema.AssistantMessage("re: "+text, nil),
		})
	}
	conv.AppendTurn(nil)

	history := conv.History()
	if len(history) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(history))
	}
	if history[0].Content != "two" || history[3].Content != "re: three" {
		t.Fatalf("unexpected history: %q .. %q", history[0].Content, history[3].Content)
	}
}
