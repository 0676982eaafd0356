package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/mdsite/internal/build"
	"git.home.luguber.info/inful/mdsite/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory for the generated site (overrides output_dir)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	// SIGINT aborts the build; the previous output stays intact and the
	// canceled run is still recorded.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	builder, err := build.New(cfg, root.Config)
	if err != nil {
		return err
	}
	builder.SetOutputRoot(b.Output)

	closeDeps := wireBuilder(builder, cfg, root.Config)
	defer closeDeps()

	report, err := builder.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(report.Summary())
	return nil
}
