package tui

import "kanbanwatch/internal/ports"

// ChannelNotifier hands notices to the dashboard through a buffered channel.
// Notices are dropped when the buffer is full.
type ChannelNotifier struct {
	ch chan string
}

// Ensure ChannelNotifier implements Notifier
var _ ports.Notifier = (*ChannelNotifier)(nil)

// NewChannelNotifier creates a notifier buffering up to size notices
func NewChannelNotifier(size int) *ChannelNotifier {
	if size < 1 {
		size = 1
	}
	return &ChannelNotifier{ch: make(chan string, size)}
}

// Notify queues message without blocking
func (n *ChannelNotifier) Notify(message string) {
	select {
	case n.ch <- message:
	default:
	}
}

// C returns the receive side of the channel
func (n *ChannelNotifier) C() <-chan string {
	return n.ch
}
