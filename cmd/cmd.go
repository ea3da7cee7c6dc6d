package cmd

import (
	"context"

	"github.com/herohall/registry/internal/config"
	"github.com/herohall/registry/pkg/logger"
	"github.com/herohall/registry/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

var cmd = &cobra.Command{
	Use:  "registry",
	Long: `Single-node hero-registry ledger: runs the registry program and its HTTP API`,
}

func init() {
	flags := cmd.PersistentFlags()
	flags.String("listen", ":8080", "HTTP API listen address")
	flags.String("data-dir", "./data", "directory for the account store")

	config.BindPFlag("api.listen_address", flags.Lookup("listen"))
	config.BindPFlag("ledger.data_dir", flags.Lookup("data-dir"))

	cobra.OnInitialize(func() {
		conf := config.Load()
		if err := logger.Init(conf.Logger); err != nil {
			logger.Panic("Failed to initialize logger", slogx.Error(err))
		}
	})
}

func Execute(ctx context.Context) {
	cmd.AddCommand(
		NewRunCommand(),
		NewVersionCommand(),
		NewGenerateKeypairCommand(),
	)

	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Fatal("Command failed", slogx.Error(err))
	}
}
