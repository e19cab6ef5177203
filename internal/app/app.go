package app

import (
	"context"
	"fmt"

	"github.com/rarefinebooks/backroom/internal/bookstore"
	"github.com/rarefinebooks/backroom/internal/config"
	"github.com/rarefinebooks/backroom/internal/prefs"
	"github.com/rarefinebooks/backroom/internal/state"
	"github.com/rarefinebooks/backroom/internal/ui"
)

// Options configure the Backroom application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/backroom/prefs.toml
}

// Run boots the admin console until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := bookstore.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := &state.Store{}

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		ThemeName: userPrefs.Theme,
		StartTab:  userPrefs.StartTab,
		PrefsPath: opts.PrefsPath,
	})
}
