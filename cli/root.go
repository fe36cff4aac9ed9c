package cli

import (
	"os"

	"github.com/spf13/cobra"
	configx "github.com/tanpawarit/insurance-callcenter-agent/pkg/config"
	logx "github.com/tanpawarit/insurance-callcenter-agent/pkg/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "callcenter",
	Short: "Insurance call center voice agent backend",
	Long: `callcenter runs the backend of an insurance call center voice agent.

It exposes policy lookup, policy creation, claim filing, claim status and
customer registration tools over PostgreSQL, and drives a tool-calling
language model that talks to callers.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configx.SetEnvFile(envFile)

		logCfg, err := configx.New[logx.Config]("LOG")
		if err != nil {
			return err
		}
		if cmd.Name() == consoleCmd.Name() {
			logCfg.Output = os.Stderr
		}
		logx.Init(*logCfg)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to .env file (default: ./.env when present)")

	rootCmd.AddCommand(serveCmd, consoleCmd, initDBCmd)
}
