package bot

import (
	"context"
	"fmt"

	"iidxbot/internal/assert"

	"github.com/bwmarrin/discordgo"
)

const report_discord = "discord"

// discordChannel is a Channel backed by a discord session.
type discordChannel struct {
	session *discordgo.Session
}

func (d discordChannel) Reply(ctx context.Context, msg Message, embed Embed) (string, error) {
	sent, err := d.session.ChannelMessageSendComplex(msg.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed.discord()},
		Reference: &discordgo.MessageReference{
			MessageID: msg.ID,
			ChannelID: msg.ChannelID,
		},
		AllowedMentions: &discordgo.MessageAllowedMentions{RepliedUser: false},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("send reply: %w", err)
	}
	return sent.ID, nil
}

func (d discordChannel) Edit(ctx context.Context, channelID, messageID string, embed Embed) error {
	embeds := []*discordgo.MessageEmbed{embed.discord()}
	_, err := d.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:      messageID,
		Channel: channelID,
		Embeds:  &embeds,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("edit reply: %w", err)
	}
	return nil
}

func (d discordChannel) Send(ctx context.Context, channelID, text string) error {
	_, err := d.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (d discordChannel) History(ctx context.Context, channelID string, limit int) ([]Message, error) {
	messages, err := d.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("read channel history: %w", err)
	}
	out := make([]Message, len(messages))
	for i, m := range messages {
		out[i] = messageFromDiscord(m)
	}
	return out, nil
}

func messageFromDiscord(m *discordgo.Message) Message {
	msg := Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorBot = m.Author.Bot
	}
	if m.Member != nil {
		msg.AuthorRoles = m.Member.Roles
	}
	for _, a := range m.Attachments {
		msg.Attachments = append(msg.Attachments, a.Filename)
	}
	return msg
}

// RunDiscord connects to discord with token and dispatches every message to b
// until ctx is done.
func RunDiscord(ctx context.Context, token string, b *Bot) error {
	assert.NotEmptyStr(token)

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMembers

	ch := discordChannel{session: session}
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.tel.ReportDebug("bot is now running", r.User.Username)
	})
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.Dispatch(ctx, ch, messageFromDiscord(m.Message), s.State.User.ID)
	})

	err = session.Open()
	if err != nil {
		b.tel.ReportBroken(report_discord, err)
		return fmt.Errorf("open discord session: %w", err)
	}
	defer session.Close()

	<-ctx.Done()
	return nil
}
