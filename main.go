package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"remotetv/internal/catalog"
	"remotetv/internal/config"
	"remotetv/internal/domain"
	"remotetv/internal/eventbus"
	"remotetv/internal/imageload"
	"remotetv/internal/library"
	"remotetv/internal/logging"
	"remotetv/internal/ui"
	"remotetv/internal/ui/card"
)

// forwarded lists the bus events the UI reacts to
var forwarded = []eventbus.EventType{
	eventbus.EventLibraryChanged,
	eventbus.EventProgressSaved,
	eventbus.EventPlaybackFinished,
	eventbus.EventError,
}

type flags struct {
	configPath string
	logLevel   string
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "Path to config.toml (default: "+config.DefaultPath()+")")
	flag.StringVar(&f.configPath, "c", "", "Path to config.toml (shorthand)")
	flag.StringVar(&f.logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: remotetv [flags]\n\nBrowse movies and series from the terminal.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	app := fx.New(
		fx.Supply(f),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Provide(
			loadConfig,
			newLogger,
			eventbus.New,
			newCatalog,
			newLibrary,
			newImageLoader,
			card.NewPreloader,
			newModel,
		),
		fx.Invoke(runProgram),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "remotetv: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	stopCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "remotetv: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(f flags) (*config.Config, error) {
	var opts []config.Option
	if f.configPath != "" {
		opts = append(opts, config.WithPath(f.configPath))
	}
	svc := config.NewConfigService(afero.NewOsFs(), opts...)
	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, nil
}

func newLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log, nil
}

func newCatalog(log *zap.Logger, cfg *config.Config) catalog.Provider {
	cache := catalog.NewResponseCache(cfg.TMDB.CacheSize, cfg.TMDB.CacheTTL)
	return catalog.NewClient(log, cache, catalog.Options{
		BaseURL:      cfg.TMDB.BaseURL,
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
		ReadToken:    cfg.TMDB.ReadToken,
		Language:     cfg.TMDB.Language,
		RequestsPerS: cfg.TMDB.RequestsPerS,
	})
}

func newLibrary(log *zap.Logger, cfg *config.Config) library.Store {
	return library.NewSupabase(log, library.Options{
		URL:         cfg.Supabase.URL,
		AnonKey:     cfg.Supabase.AnonKey,
		AccessToken: cfg.Supabase.AccessToken,
		AuthTTL:     cfg.Supabase.AuthTTL,
	})
}

func newImageLoader(log *zap.Logger) *imageload.Loader {
	fetcher := imageload.NewHTTPFetcher(log, &http.Client{Timeout: 15 * time.Second})
	return imageload.NewLoader(log, fetcher, imageload.NewFormats())
}

type modelParams struct {
	fx.In

	Config    *config.Config
	Log       *zap.Logger
	Bus       eventbus.EventBus
	Catalog   catalog.Provider
	Library   library.Store
	Images    *imageload.Loader
	Preloader *card.Preloader
}

func newModel(p modelParams) *ui.Model {
	return ui.NewModel(ui.Deps{
		Config:      p.Config,
		Log:         p.Log,
		Bus:         p.Bus,
		Catalog:     p.Catalog,
		Library:     p.Library,
		Images:      p.Images,
		Preloader:   p.Preloader,
		ReadyMarker: os.Getenv("REMOTETV_E2E_TEST") != "",
	})
}

// runProgram starts the terminal UI when the app starts and shuts the app
// down when the UI exits
func runProgram(lc fx.Lifecycle, shutdowner fx.Shutdowner, log *zap.Logger, bus eventbus.EventBus, model *ui.Model) {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	model.SetProgram(p)

	var unsubscribe []func()
	for _, t := range forwarded {
		unsubscribe = append(unsubscribe, bus.Subscribe(t, func(e domain.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		}))
	}

	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				log.Info("starting UI")
				if _, err := p.Run(); err != nil {
					log.Error("program exited with error", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
					return
				}
				log.Info("UI exited normally")
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			for _, u := range unsubscribe {
				u()
			}
			p.Quit()
			select {
			case <-done:
			case <-ctx.Done():
			}
			bus.Close()
			return nil
		},
	})
}
