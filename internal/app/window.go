package app

import (
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

func (a *App) SetAlwaysOnTop(enabled bool) error {
	ctx := a.context()
	if ctx == nil {
		return fmt.Errorf("window not ready")
	}

	runtime.WindowSetAlwaysOnTop(ctx, enabled)
	return nil
}

func (a *App) Quit() {
	ctx := a.context()
	if ctx == nil {
		return
	}

	runtime.Quit(ctx)
}
