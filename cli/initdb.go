package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the customers, policies and claims tables when absent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		claims, err := store.CountClaims(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "database ready (%d claims on file)\n", claims)
		return nil
	},
}
