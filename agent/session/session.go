package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
	statex "github.com/tanpawarit/insurance-callcenter-agent/agent/state"
	toolx "github.com/tanpawarit/insurance-callcenter-agent/agent/tool"
)

type Config struct {
	IdleTTL         time.Duration `envconfig:"IDLE_TTL" split_words:"true" default:"30m"`
	CleanupInterval time.Duration `envconfig:"CLEANUP_INTERVAL" split_words:"true" default:"5m"`
	MaxHistoryTurns int           `envconfig:"MAX_HISTORY_TURNS" split_words:"true" default:"20"`
}

// Conversation is one caller's session: the tool surface bound to its
// snapshot plus the model-facing history.
type Conversation struct {
	ID        string
	Tools     *toolx.Session
	CreatedAt time.Time

	turnMu   sync.Mutex
	mu       sync.Mutex
	turns    [][]*schema.Message
	maxTurns int
}

// BeginTurn serializes caller turns on one conversation. The returned func
// ends the turn.
func (c *Conversation) BeginTurn() func() {
	c.turnMu.Lock()
	return c.turnMu.Unlock
}

// History returns the retained messages, oldest first.
func (c *Conversation) History() []*schema.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*schema.Message
	for _, turn := range c.turns {
		out = append(out, turn...)
	}
	return out
}

// AppendTurn records the messages of a finished turn. Whole turns are dropped
// from the front so tool results never lose their tool call.
func (c *Conversation) AppendTurn(messages []*schema.Message) {
	if len(messages) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.turns = append(c.turns, messages)
	if c.maxTurns > 0 && len(c.turns) > c.maxTurns {
		c.turns = c.turns[len(c.turns)-c.maxTurns:]
	}
}

func (c *Conversation) Snapshot() *statex.Snapshot {
	return c.Tools.Snapshot()
}

// Manager keeps live conversations in memory and expires idle ones.
type Manager struct {
	store toolx.Store
	cache *gocache.Cache
	ttl   time.Duration
	turns int
	now   func() time.Time
}

func NewManager(store toolx.Store, cfg Config) *Manager {
	ttl := cfg.IdleTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = 5 * time.Minute
	}

	c := gocache.New(ttl, cleanup)
	c.OnEvicted(func(id string, _ any) {
		log.Debug().Str("session_id", id).Msg("session ended")
	})

	return &Manager{
		store: store,
		cache: c,
		ttl:   ttl,
		turns: cfg.MaxHistoryTurns,
		now:   time.Now,
	}
}

// Start opens a new conversation with an empty snapshot.
func (m *Manager) Start() *Conversation {
	conv := &Conversation{
		ID:        uuid.NewString(),
		Tools:     toolx.NewSession(m.store),
		CreatedAt: m.now().UTC(),
		maxTurns:  m.turns,
	}
	m.cache.SetDefault(conv.ID, conv)

	log.Info().Str("session_id", conv.ID).Msg("session started")
	return conv
}

// Get returns a live conversation and extends its idle deadline.
func (m *Manager) Get(id string) (*Conversation, error) {
	id = strings.TrimSpace(id)
	val, found := m.cache.Get(id)
	if !found {
		return nil, fmt.Errorf("%w: session_id=%s", contractx.ErrSessionNotFound, id)
	}
	conv := val.(*Conversation)
	m.cache.SetDefault(id, conv)
	return conv, nil
}

// End drops a conversation and its snapshot.
func (m *Manager) End(id string) error {
	id = strings.TrimSpace(id)
	if _, found := m.cache.Get(id); !found {
		return fmt.Errorf("%w: session_id=%s", contractx.ErrSessionNotFound, id)
	}
	m.cache.Delete(id)
	return nil
}

func (m *Manager) Count() int {
	return m.cache.ItemCount()
}
