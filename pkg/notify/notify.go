// Package notify defines the notification sink used for user-facing toasts.
// The core logic only fires notifications; delivery is a side effect owned
// by the consuming surface (CLI, API response, UI).
package notify

import (
	"github.com/coursexpert/coursexpert/pkg/log"
)

// Notification kinds. Destructive marks bound violations the user should act
// on; Info is everything else.
const (
	KindInfo        = "info"
	KindDestructive = "destructive"
)

// Notifier receives fire-and-forget user-facing notifications. No return
// value is consumed.
type Notifier interface {
	Notify(title, description, kind string)
}

// Notice is a captured notification, used when a surface needs to carry the
// toast back to its caller (e.g. in an API response).
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
}

// LogNotifier writes notifications to the component log. Used by the CLI.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(component string) *LogNotifier {
	return &LogNotifier{logger: log.ForComponent(component)}
}

func (n *LogNotifier) Notify(title, description, kind string) {
	if kind == KindDestructive {
		n.logger.Warnf("%s: %s", title, description)
		return
	}
	n.logger.Infof("%s: %s", title, description)
}

// Recorder captures notifications for later inspection. Used by the API's
// stateless compare endpoint and by tests.
type Recorder struct {
	Notices []Notice
}

func (r *Recorder) Notify(title, description, kind string) {
	r.Notices = append(r.Notices, Notice{Title: title, Description: description, Kind: kind})
}

// Last returns the most recent notice, or nil when none was recorded.
func (r *Recorder) Last() *Notice {
	if len(r.Notices) == 0 {
		return nil
	}
	return &r.Notices[len(r.Notices)-1]
}

// Nop discards all notifications.
type Nop struct{}

func (Nop) Notify(title, description, kind string) {}
