// Command zobbo is the terminal client for the Zobbo card game. It creates
// or joins a two-player room against a room server and plays out the lobby
// and game screens in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/Spyabo/Zobbo/internal/config"
	"github.com/Spyabo/Zobbo/internal/logger"
	"github.com/Spyabo/Zobbo/internal/ui"
)

func main() {
	cmd := &cli.Command{
		Name:      "zobbo",
		Usage:     "terminal client for the Zobbo card game",
		ArgsUsage: "[room id or invite link]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a yaml config file",
			},
			&cli.StringFlag{
				Name:  "server",
				Usage: "room server origin (overrides config)",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "player name (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if v := cmd.String("server"); v != "" {
		cfg.ServerURL = v
	}
	if v := cmd.String("name"); v != "" {
		cfg.PlayerName = v
	}
	if cmd.Bool("debug") {
		cfg.Debug = true
	}

	if err := logger.Init(cfg.Debug); err != nil {
		return err
	}
	defer logger.Close()

	model := ui.New(cfg)

	// A room reference on the command line resumes straight onto the join
	// screen: either a full invite link or a bare path/id.
	if ref := cmd.Args().First(); ref != "" {
		if strings.HasPrefix(ref, "/") {
			model.Session().SetRoomFromPath(ref)
		} else if err := model.Session().SetRoomFromInput(ref); err != nil {
			return err
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run client: %w", err)
	}
	return nil
}
