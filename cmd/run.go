package cmd

import (
	"context"
	"crypto/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/herohall/registry/common/errs"
	"github.com/herohall/registry/core/runtime"
	"github.com/herohall/registry/core/types"
	"github.com/herohall/registry/internal/config"
	"github.com/herohall/registry/internal/store"
	"github.com/herohall/registry/internal/token"
	"github.com/herohall/registry/internal/tokenmeta"
	"github.com/herohall/registry/modules/heroes"
	"github.com/herohall/registry/modules/heroes/api"
	"github.com/herohall/registry/modules/heroes/usecase"
	"github.com/herohall/registry/pkg/errorhandler"
	"github.com/herohall/registry/pkg/logger"
	"github.com/herohall/registry/pkg/logger/slogx"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the registry ledger and its HTTP API",
		Run:   runHandler,
	}
}

func runHandler(cmd *cobra.Command, _ []string) {
	conf := config.Load()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	accountStore, err := store.NewPebble(conf.Ledger.DataDir)
	if err != nil {
		logger.PanicContext(ctx, "Failed to open account store", slogx.Error(err))
	}
	defer accountStore.Close()

	ledger := runtime.NewLedger(accountStore)
	if err := ledger.Restore(ctx); err != nil {
		logger.PanicContext(ctx, "Failed to restore ledger", slogx.Error(err))
	}

	programID := resolveIdentity(ctx, conf.Ledger.Program, "program")
	adminID := resolveIdentity(ctx, conf.Ledger.Admin, "admin")

	tokenProgram := token.NewProgram(token.DefaultProgramAddress)
	metadataProgram := tokenmeta.NewProgram(tokenmeta.DefaultProgramAddress)
	processor := heroes.NewProcessor(programID, tokenProgram, metadataProgram)
	for _, program := range []runtime.Processor{tokenProgram, metadataProgram, processor} {
		if err := ledger.Register(program); err != nil {
			logger.PanicContext(ctx, "Failed to register program", slogx.Error(err), slogx.String("program", program.Name()))
		}
	}

	// provision the repository account on first start
	repository := types.DeriveAddress(adminID, heroes.RepoAccountSeed, programID)
	if _, err := ledger.Account(repository); errors.Is(err, errs.AccountNotFound) {
		if _, err := ledger.CreateAccountWithSeed(ctx, adminID, heroes.RepoAccountSeed, programID, heroes.RepoAccountSize, 0); err != nil {
			logger.PanicContext(ctx, "Failed to provision repository account", slogx.Error(err))
		}
		logger.InfoContext(ctx, "Provisioned repository account", slogx.Stringer("address", repository))
	}

	uc := usecase.New(ledger, repository)
	handler := api.NewHTTPHandler(uc)

	app := fiber.New(fiber.Config{
		AppName:      "registry",
		ErrorHandler: errorhandler.NewHTTPErrorHandler(),
	})
	if err := handler.Mount(app); err != nil {
		logger.PanicContext(ctx, "Failed to mount http handler", slogx.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "Started HTTP server", slogx.String("address", conf.API.ListenAddress))
		return errors.Wrap(app.Listen(conf.API.ListenAddress), "http server error")
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(ctx, "Shutting down...")
		return errors.Wrap(app.ShutdownWithTimeout(30*time.Second), "http server shutdown error")
	})
	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "Server stopped with error", err)
	}
	logger.InfoContext(ctx, "Stopped")
}

// resolveIdentity parses a configured hex address, or generates an ephemeral
// identity when none is configured.
func resolveIdentity(ctx context.Context, value, role string) types.Address {
	if value != "" {
		addr, err := types.AddressFromString(value)
		if err != nil {
			logger.PanicContext(ctx, "Invalid configured address", slogx.String("role", role), slogx.Error(err))
		}
		return addr
	}
	raw := make([]byte, types.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		logger.PanicContext(ctx, "Failed to generate identity", slogx.Error(err))
	}
	addr, _ := types.AddressFromBytes(raw)
	logger.WarnContext(ctx, "No address configured, generated ephemeral identity",
		slogx.String("role", role), slogx.Stringer("address", addr))
	return addr
}
