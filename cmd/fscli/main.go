package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jscyril/freesound_cli/internal/config"
	"github.com/jscyril/freesound_cli/internal/freesound"
	"github.com/jscyril/freesound_cli/internal/player"
	"github.com/jscyril/freesound_cli/internal/session"
	"github.com/jscyril/freesound_cli/internal/ui"
	fserrors "github.com/jscyril/freesound_cli/pkg/errors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, fserrors.ErrUnconfigured) {
			fmt.Fprintln(os.Stderr, "FREESOUND_API_KEY is not set.")
			fmt.Fprintln(os.Stderr, "Create a .env file in the working directory with your API key,")
			fmt.Fprintln(os.Stderr, "or set it as an environment variable. Example .env content:")
			fmt.Fprintln(os.Stderr, "FREESOUND_API_KEY=your_actual_api_key_here")
		}
		return err
	}

	console := ui.NewConsole(os.Stdin, os.Stdout)
	client := freesound.NewClient(cfg)
	preview := player.New(client, console)

	sess := session.New(console, client, preview, client)
	return sess.Run(context.Background())
}
