package slack

import (
	"context"
	"fmt"

	slackapi "github.com/nlopes/slack"
	"github.com/pkg/errors"

	"deploy-notifier/pkg/chat"
)

const markdownField = "text"

// Ensure ClientIFace is implemented by slack.Client
var _ ClientIFace = (*slackapi.Client)(nil)

// Ensure Notifier implements chat.Notifier
var _ chat.Notifier = (*Notifier)(nil)

type ClientIFace interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

type Notifier struct {
	client  ClientIFace
	channel string
}

func New(token, channel string) *Notifier {
	return &Notifier{
		client:  slackapi.New(token),
		channel: channel,
	}
}

func (n *Notifier) Notify(ctx context.Context, msg chat.Message) error {
	_, _, err := n.client.PostMessageContext(ctx, n.channel, slackapi.MsgOptionAttachments(Attachment(msg)))
	return errors.Wrap(err, "failed to post slack message")
}

// Attachment renders a message as a single coloured attachment with the
// subject in bold and the link in slack's <url|label> form.
func Attachment(msg chat.Message) slackapi.Attachment {
	text := msg.Text
	if msg.Subject != "" {
		text = fmt.Sprintf("*%s*: %s", msg.Subject, text)
	}
	if msg.Link != nil {
		text = fmt.Sprintf("%s (<%s|%s>)", text, msg.Link.URL, msg.Link.Label)
	}

	return slackapi.Attachment{
		Color:      string(msg.Severity),
		AuthorName: msg.Author,
		Text:       text,
		MarkdownIn: []string{markdownField},
	}
}
