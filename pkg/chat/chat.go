package chat

import (
	"context"
	"fmt"
)

type Severity string

const (
	SeverityGood    Severity = "good"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Colours used by clients that take an RGB value rather than a named severity
var severityColors = map[Severity]int{
	SeverityGood:    0x2eb886,
	SeverityWarning: 0xdaa038,
	SeverityDanger:  0xa30200,
}

// Ensure implementations satisfy Notifier
var _ Notifier = (NotifierFunc)(nil)

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

type NotifierFunc func(ctx context.Context, msg Message) error

func (f NotifierFunc) Notify(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

type Link struct {
	URL   string
	Label string
}

// Message is a chat post independent of any one provider's markup.
type Message struct {
	Severity Severity
	Author   string
	Subject  string
	Text     string
	Link     *Link
}

func (s Severity) Color() int {
	if color, ok := severityColors[s]; ok {
		return color
	}
	return severityColors[SeverityGood]
}

func (m Message) String() string {
	return fmt.Sprintf("[%s] %s: %s %s", m.Severity, m.Author, m.Subject, m.Text)
}
