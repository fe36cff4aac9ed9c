package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	apix "github.com/tanpawarit/insurance-callcenter-agent/agent/api"
	configx "github.com/tanpawarit/insurance-callcenter-agent/pkg/config"
	httpserverx "github.com/tanpawarit/insurance-callcenter-agent/pkg/httpserver"
)

var serveVerifyModel bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool and conversation HTTP API",
	Long: `Serve starts the HTTP API. Tools are always available; the
conversation endpoint needs LLM_API_KEY and LLM_MODEL.

Example:
  callcenter serve --env .env`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveVerifyModel, "verify-model", true, "check the model exists before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpCfg, err := configx.New[httpserverx.Config]("HTTP")
	if err != nil {
		return err
	}

	d, err := buildDeps(ctx, false, serveVerifyModel)
	if err != nil {
		return err
	}
	defer d.Close()

	var messenger apix.Messenger
	if d.orchestrator != nil {
		messenger = d.orchestrator
	}
	handler := apix.NewHandler(d.store, d.sessions, messenger)

	srv := httpserverx.New(*httpCfg, apix.NewRouter(handler))
	if err := srv.Run(ctx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
