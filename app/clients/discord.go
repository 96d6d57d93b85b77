package clients

import (
	"context"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"NexiAssistant/app/configs"
	"NexiAssistant/app/runtime"
)

var _ Interface = &DiscordClient{}

// DiscordClient is the text fallback: students ask Nexi in a channel and get
// the same sanitized answer the voice session would speak.
type DiscordClient struct {
	Client
	cfg     configs.DiscordConfig
	session *discordgo.Session
}

func NewDiscordClient(cfg configs.DiscordConfig) (*DiscordClient, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, err
	}

	dc := &DiscordClient{
		cfg:     cfg,
		session: session,
	}
	session.AddHandler(dc.onMessageCreate)
	session.Identify.Intents = discordgo.IntentsGuildMessages

	return dc, nil
}

func (c *DiscordClient) Subscribe(rt *runtime.Runtime) error {
	c.runtime = rt
	if err := c.session.Open(); err != nil {
		return err
	}
	log.Println("✅ Discord client started. Listening for questions...")
	return nil
}

func (c *DiscordClient) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}
	if c.cfg.ChannelID != "" && m.ChannelID != c.cfg.ChannelID {
		return
	}

	question := strings.TrimSpace(m.Content)
	if mentioned := strings.Contains(m.Content, s.State.User.Mention()); mentioned {
		question = strings.TrimSpace(strings.ReplaceAll(m.Content, s.State.User.Mention(), ""))
	} else if !strings.HasPrefix(question, "!ask") {
		return
	} else {
		question = strings.TrimSpace(strings.TrimPrefix(question, "!ask"))
	}
	if question == "" {
		return
	}

	channelID := m.ChannelID
	c.runtime.QueueEvent(runtime.Event{
		Type:      runtime.Transcript,
		SessionID: "discord/" + channelID,
		Text:      question,
		Say: func(ctx context.Context, text string) error {
			_, err := s.ChannelMessageSend(channelID, text)
			return err
		},
	})
}

func (c *DiscordClient) Close() error {
	return c.session.Close()
}
