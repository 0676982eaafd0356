package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdsite/cmd/mdsite/commands"
	"git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/version"
)

func main() {
	var cli commands.CLI

	kctx := kong.Parse(&cli,
		kong.Name("mdsite"),
		kong.Description("Markdown tree to static HTML site generator."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	err := kctx.Run(&commands.Global{Logger: slog.Default()}, &cli)
	if err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
