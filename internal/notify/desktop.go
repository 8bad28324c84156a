package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

// DesktopNotifier delivers alerts through the OS notification facility.
type DesktopNotifier struct{}

func (DesktopNotifier) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// LogNotifier writes alerts to the log, for headless or test runs.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(title, body string) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("notification", "title", title, "body", body)
	return nil
}
