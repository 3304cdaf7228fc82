package discord

import "github.com/bwmarrin/discordgo"

const BotTokenFormat = "Bot %s"

// Ensure SessionIFace is implemented by discordgo.Session
var _ SessionIFace = (*discordgo.Session)(nil)

type SessionIFace interface {
	// Channel Messaging
	ChannelMessageSend(channelID string, content string) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}
