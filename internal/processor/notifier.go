package processor

import (
	"fmt"
	"io"
)

// Notifier shows a blocking, user visible message.
type Notifier interface {
	Notify(message string)
}

// WriterNotifier prints messages on a line of their own.
type WriterNotifier struct {
	W io.Writer
}

// Notify writes the message.
func (n WriterNotifier) Notify(message string) {
	_, _ = fmt.Fprintln(n.W, message)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify calls f(message).
func (f NotifierFunc) Notify(message string) { f(message) }
