package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

const (
	SessionChannelMessageSendMethod      = "ChannelMessageSend"
	SessionChannelMessageSendEmbedMethod = "ChannelMessageSendEmbed"
)

// Ensure MockDiscordSession implements SessionIFace
var _ SessionIFace = (*MockDiscordSession)(nil)

type MockDiscordSession struct {
	mock.Mock
}

func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	if respMsg := args.Get(0); respMsg != nil {
		return respMsg.(*discordgo.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDiscordSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	args := m.Called(channelID, embed)
	if respMsg := args.Get(0); respMsg != nil {
		return respMsg.(*discordgo.Message), args.Error(1)
	}
	return nil, args.Error(1)
}
