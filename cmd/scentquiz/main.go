package main

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"scentquiz/internal/adapters/browser"
	"scentquiz/internal/adapters/tui"
	"scentquiz/internal/adapters/tui/views"
	"scentquiz/internal/bootstrap"
	"scentquiz/internal/config"
	"scentquiz/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFile := pflag.StringP("config", "c", "", "path to config file")
	noLogin := pflag.Bool("no-login", false, "start the quiz without logging in (history is not saved)")
	pflag.Parse()

	v := viper.New()
	if *noLogin {
		v.Set("auth.required", false)
	}
	cfg, err := config.LoadWith(v, *configFile)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file
	logger, err := logging.ForTUI(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	app, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	var copyText views.ClipboardWriter
	if !clipboard.Unsupported {
		copyText = clipboard.WriteAll
	}

	ui := tui.NewApp(tui.Options{
		Identity:     app.Identity,
		Session:      app.SessionDeps(),
		Opener:       browser.NewOpener(),
		Clipboard:    copyText,
		AuthRequired: cfg.Auth.Required,
		Logger:       logger.Named("tui"),
	})

	p := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", zap.Error(err))
		return err
	}
	return nil
}
