package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"tokoadmin/internal/config"
	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
	"tokoadmin/internal/services"
	"tokoadmin/pkg/logging"
)

type cli struct {
	Seed   seedCmd   `cmd:"" help:"Load categories and products from a YAML fixtures file."`
	Stats  statsCmd  `cmd:"" help:"Print the dashboard statistics of the configured catalog."`
	Member memberCmd `cmd:"" help:"Manage admin panel members."`

	Verbose bool `short:"v" help:"Log debug output."`
}

type seedCmd struct {
	File string `required:"" type:"existingfile" help:"Path to the fixtures YAML file."`
}

type statsCmd struct{}

type memberCmd struct {
	Add memberAddCmd `cmd:"" help:"Register a member account."`
}

type memberAddCmd struct {
	Username string `required:"" help:"Login name."`
	Email    string `required:"" help:"Login email."`
	Password string `required:"" help:"Initial password."`
	Nickname string `help:"Name used in the admin greeting."`
	Title    string `help:"Profile title (use 'admin' to grant panel access)."`
}

func main() {
	var root cli
	ctx := kong.Parse(&root,
		kong.Name("catalogctl"),
		kong.Description("Operator utility for the tokoadmin catalog store."),
		kong.UsageOnError(),
	)

	log, err := logging.New(false)
	ctx.FatalIfErrorf(err)
	if !root.Verbose {
		log = log.Desugar().WithOptions(zap.IncreaseLevel(zap.InfoLevel)).Sugar()
	}
	defer log.Sync()

	ctx.FatalIfErrorf(ctx.Run(log))
}

func openStore(log *zap.SugaredLogger) (*repositories.Store, error) {
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, fmt.Errorf("catalogctl: load config: %w", err)
	}
	if cfg.CatalogDriver == config.DriverMemory {
		log.Warnf("CATALOG_DRIVER is %q; changes are lost when catalogctl exits", config.DriverMemory)
	}
	store, err := repositories.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("catalogctl: open store: %w", err)
	}
	return store, nil
}

func (cmd *seedCmd) Run(log *zap.SugaredLogger) error {
	ctx := context.Background()
	fixtures, err := loadFixtures(cmd.File)
	if err != nil {
		return err
	}
	store, err := openStore(log)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := fixtures.Apply(ctx, store.Categories, store.Products)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Seeded %d categories and %d products from %s\n", result.Categories, result.Products, cmd.File)
	return nil
}

func (cmd *statsCmd) Run(log *zap.SugaredLogger) error {
	ctx := context.Background()
	store, err := openStore(log)
	if err != nil {
		return err
	}
	defer store.Close()

	stats := services.NewDashboardService(store.Products, store.Categories, log).Stats(ctx)
	return writeStats(os.Stdout, stats)
}

func writeStats(w io.Writer, stats models.DashboardStats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}

func (cmd *memberAddCmd) Run(log *zap.SugaredLogger) error {
	store, err := openStore(log)
	if err != nil {
		return err
	}
	defer store.Close()

	user := &models.User{
		Username: cmd.Username,
		Email:    cmd.Email,
		Password: cmd.Password,
		Nickname: cmd.Nickname,
		Title:    cmd.Title,
	}
	if err := services.NewAuthService(store.Users, "", log).RegisterUser(user); err != nil {
		return fmt.Errorf("catalogctl: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Registered member %s (%s)\n", user.Username, user.ID)
	return nil
}
