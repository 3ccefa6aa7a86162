// Package utils provides notification utilities for qp.
// Supports configurable notification behavior via NotificationConfig.
package utils

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/lvim-tech/qp/internal/logging"
	"github.com/lvim-tech/qp/pkg/config"
)

// Notifier sends user-visible notifications and reports non-fatal errors.
type Notifier struct {
	cfg config.NotificationConfig

	// terminal decides whether messages are printed instead of sent to the desktop.
	terminal func() bool
	stdout   io.Writer
	stderr   io.Writer
	// start launches the notification tool; it must not wait for it.
	start func(name string, args ...string) error
}

// NewNotifier creates a Notifier for cfg.
func NewNotifier(cfg config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg:      cfg,
		terminal: IsTerminal,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		start:    startDetached,
	}
}

// Notify sends a normal notification
func (n *Notifier) Notify(title, message string) {
	logging.Info().Str("title", title).Msg(message)
	if !n.cfg.Enabled {
		return
	}

	if n.cfg.ShowInTerminal && n.terminal() {
		fmt.Fprintf(n.stdout, "[%s] %s\n", title, message)
		return
	}

	n.send(title, message, n.cfg.Urgency, "normal")
}

// Error sends an error notification with critical urgency
func (n *Notifier) Error(title, message string) {
	if !n.cfg.Enabled {
		return
	}

	if n.cfg.ShowInTerminal && n.terminal() {
		fmt.Fprintf(n.stderr, "[ERROR] [%s] %s\n", title, message)
		return
	}

	n.send(title, message, "critical", "critical")
}

// Report logs err and shows it as an error notification.
func (n *Notifier) Report(err error) {
	if err == nil {
		return
	}
	logging.Warn().Err(err).Msg("qp diagnostic")
	n.Error("qp", err.Error())
}

// ============================================================================
// Internal Helper Functions
// ============================================================================

// detectNotificationTool detects which notification tool is available
func detectNotificationTool() string {
	if CommandExists("dunstify") {
		return "dunstify"
	}
	if CommandExists("notify-send") {
		return "notify-send"
	}
	return ""
}

func (n *Notifier) send(title, message, urgency, fallbackUrgency string) {
	tool := n.cfg.Tool
	if tool == "" || tool == "auto" {
		tool = detectNotificationTool()
	}

	args := notificationArgs(tool, title, message, n.cfg.Timeout, urgency, fallbackUrgency)
	if args == nil {
		return
	}

	if err := n.start(tool, args...); err != nil {
		logging.Debug().Err(err).Str("tool", tool).Msg("notification failed")
	}
}

// notificationArgs builds the argv for tool, or nil if the tool is not supported
func notificationArgs(tool, title, message string, timeout int, urgency, fallbackUrgency string) []string {
	if urgency == "" {
		urgency = fallbackUrgency
	}
	if timeout <= 0 {
		timeout = 5000
	}

	switch tool {
	case "dunstify", "notify-send":
		return []string{"-u", urgency, "-t", strconv.Itoa(timeout), title, message}
	default:
		return nil
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
