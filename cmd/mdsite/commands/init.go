package commands

import (
	"fmt"

	"git.home.luguber.info/inful/mdsite/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Dir   string `arg:"" optional:"" default:"." help:"Directory to scaffold the project in"`
	Force bool   `help:"Overwrite existing configuration and sample files"`
}

func (i *InitCmd) Run(_ *Global, _ *CLI) error {
	fmt.Printf("Initializing mdsite project in %s\n", i.Dir)
	if err := config.Init(i.Dir, i.Force); err != nil {
		return err
	}
	fmt.Println("initialized successfully")
	return nil
}
