package logging

import (
	"io"

	"github.com/rs/zerolog"
	wailslogger "github.com/wailsapp/wails/v2/pkg/logger"
)

const serviceName = "usagewidget"

// New creates a structured logger writing to w. Unknown levels fall back
// to info.
func New(level string, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Str("service", serviceName).Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return logger.Level(lvl)
}

var _ wailslogger.Logger = (*WailsLogger)(nil)

// WailsLogger routes the desktop runtime's own log lines into zerolog.
type WailsLogger struct {
	logger zerolog.Logger
}

func NewWailsLogger(logger zerolog.Logger) *WailsLogger {
	return &WailsLogger{logger: logger.With().Str("component", "wails").Logger()}
}

func (w *WailsLogger) Print(message string) {
	w.logger.Log().Msg(message)
}

func (w *WailsLogger) Trace(message string) {
	w.logger.Trace().Msg(message)
}

func (w *WailsLogger) Debug(message string) {
	w.logger.Debug().Msg(message)
}

func (w *WailsLogger) Info(message string) {
	w.logger.Info().Msg(message)
}

func (w *WailsLogger) Warning(message string) {
	w.logger.Warn().Msg(message)
}

func (w *WailsLogger) Error(message string) {
	w.logger.Error().Msg(message)
}

func (w *WailsLogger) Fatal(message string) {
	w.logger.Fatal().Msg(message)
}
