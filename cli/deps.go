package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	orchestratorx "github.com/tanpawarit/insurance-callcenter-agent/agent/agents/orchestrator"
	specialistx "github.com/tanpawarit/insurance-callcenter-agent/agent/agents/specialist"
	llmx "github.com/tanpawarit/insurance-callcenter-agent/agent/llm"
	sessionx "github.com/tanpawarit/insurance-callcenter-agent/agent/session"
	storex "github.com/tanpawarit/insurance-callcenter-agent/agent/store"
	configx "github.com/tanpawarit/insurance-callcenter-agent/pkg/config"
	openrouterx "github.com/tanpawarit/insurance-callcenter-agent/pkg/openrouter"
	postgresx "github.com/tanpawarit/insurance-callcenter-agent/pkg/postgres"
	"github.com/uptrace/bun"
)

type deps struct {
	db           *bun.DB
	store        *storex.Store
	sessions     *sessionx.Manager
	orchestrator *orchestratorx.Orchestrator
}

func (d *deps) Close() {
	if d.db != nil {
		if err := d.db.Close(); err != nil {
			log.Warn().Err(err).Msg("close postgres")
		}
	}
}

// openStore connects to PostgreSQL and creates the tables when absent.
func openStore(ctx context.Context) (*bun.DB, *storex.Store, error) {
	pgCfg, err := configx.New[postgresx.Config]("POSTGRES")
	if err != nil {
		return nil, nil, err
	}

	db, err := postgresx.Open(*pgCfg)
	if err != nil {
		return nil, nil, err
	}
	store := storex.New(db)
	if err := store.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, store, nil
}

// buildDeps wires the store, sessions and, when a model is configured, the
// conversation orchestrator.
func buildDeps(ctx context.Context, requireAgent bool, verifyModel bool) (*deps, error) {
	db, store, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	d := &deps{db: db, store: store}

	sessionCfg, err := configx.New[sessionx.Config]("SESSION")
	if err != nil {
		d.Close()
		return nil, err
	}
	d.sessions = sessionx.NewManager(store, *sessionCfg)

	llmCfg, err := configx.New[llmx.Config]("LLM")
	if err != nil {
		d.Close()
		return nil, err
	}
	if !llmCfg.Enabled() {
		if requireAgent {
			d.Close()
			return nil, fmt.Errorf("LLM_API_KEY and LLM_MODEL are required")
		}
		log.Warn().Msg("LLM_API_KEY or LLM_MODEL not set - conversation endpoint disabled")
		return d, nil
	}

	if verifyModel {
		if err := openrouterx.VerifyModel(ctx, llmCfg.OpenRouter()); err != nil {
			d.Close()
			return nil, err
		}
	}

	agent, err := specialistx.New(ctx, *llmCfg)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.orchestrator, err = orchestratorx.New(d.sessions, agent)
	if err != nil {
		d.Close()
		return nil, err
	}

	log.Info().Str("model", llmCfg.Model).Int("max_tool_rounds", llmCfg.MaxToolRounds).Msg("conversation agent ready")
	return d, nil
}
