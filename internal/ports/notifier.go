package ports

// Notifier is the user-facing notification sink. The gateway reports
// each failed call exactly once; implementations only display, they
// never retry.
type Notifier interface {
	NotifyError(message string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) NotifyError(string) {}
