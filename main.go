package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	wailslogger "github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	"github.com/zjregee/usagewidget/internal/app"
	"github.com/zjregee/usagewidget/internal/config"
	"github.com/zjregee/usagewidget/internal/logging"
)

//go:embed all:frontend/src
var assets embed.FS

func main() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load config: %v\n", err)
		cfg = config.Default()
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	application, err := app.NewApp(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize app")
	}

	err = wails.Run(&options.App{
		Title:       "Usage",
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		AlwaysOnTop: cfg.Window.AlwaysOnTop,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 18, G: 18, B: 18, A: 200},
		Logger:           logging.NewWailsLogger(logger),
		LogLevel:         wailslogger.DEBUG,
		OnStartup:        application.Startup,
		OnShutdown:       application.Shutdown,
		Bind: []any{
			application,
		},
		Windows: &windows.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
			BackdropType:         windows.Mica,
		},
		Mac: &mac.Options{
			TitleBar:             mac.TitleBarHiddenInset(),
			Appearance:           mac.NSAppearanceNameDarkAqua,
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
	})

	if err != nil {
		logger.Fatal().Err(err).Msg("wails run failed")
	}
}
