package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/sandeepkv93/taskflow/internal/views"
)

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.logger.Debug("desktop notification failed", "err", err)
		}
	}
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}
