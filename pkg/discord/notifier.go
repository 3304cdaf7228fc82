package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"

	"deploy-notifier/pkg/chat"
)

// Ensure Notifier implements chat.Notifier
var _ chat.Notifier = (*Notifier)(nil)

type Notifier struct {
	session   SessionIFace
	channelId string
}

func New(token, channelId string) (*Notifier, error) {
	session, err := discordgo.New(fmt.Sprintf(BotTokenFormat, token))
	if err != nil {
		return nil, err
	}
	return &Notifier{
		session:   session,
		channelId: channelId,
	}, nil
}

func (n *Notifier) Notify(ctx context.Context, msg chat.Message) error {
	// discordgo calls are not cancellable, so only check before sending
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := n.session.ChannelMessageSendEmbed(n.channelId, Embed(msg))
	return errors.Wrap(err, "failed to send discord message")
}

// Embed renders a message as an embed coloured by severity. The link is
// written as discord markdown in the description.
func Embed(msg chat.Message) *discordgo.MessageEmbed {
	description := msg.Text
	if msg.Subject != "" {
		description = fmt.Sprintf("**%s**: %s", msg.Subject, description)
	}
	if msg.Link != nil {
		description = fmt.Sprintf("%s ([%s](%s))", description, msg.Link.Label, msg.Link.URL)
	}

	embed := &discordgo.MessageEmbed{
		Color:       msg.Severity.Color(),
		Description: description,
	}
	if msg.Author != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{Name: msg.Author}
	}
	if msg.Link != nil {
		embed.URL = msg.Link.URL
	}
	return embed
}
