package bot

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"iidxbot/internal/apperr"
)

const (
	report_reply = "reply"
	report_panic = "panic"
)

// Message is an incoming chat message. AuthorRoles are the server role ids of
// the author and Attachments the names of the attached files.
type Message struct {
	ID          string
	ChannelID   string
	AuthorID    string
	AuthorBot   bool
	AuthorRoles []string
	Content     string
	Attachments []string
}

// Channel is the chat platform as seen by the bot.
type Channel interface {
	// Reply answers msg with embed and returns the id of the reply.
	Reply(ctx context.Context, msg Message, embed Embed) (string, error)
	Edit(ctx context.Context, channelID, messageID string, embed Embed) error
	Send(ctx context.Context, channelID, text string) error
	// History returns the latest messages of a channel, newest first.
	History(ctx context.Context, channelID string, limit int) ([]Message, error)
}

// splitCommand returns the command name and its arguments when content is
// addressed to the bot, by prefix or by mention.
func (b *Bot) splitCommand(content, botID string) (name, args string, ok bool) {
	var rest string
	switch {
	case b.cfg.CommandPrefix != "" && strings.HasPrefix(content, b.cfg.CommandPrefix):
		rest = strings.TrimPrefix(content, b.cfg.CommandPrefix)
	case botID != "" && strings.HasPrefix(content, "<@"+botID+">"):
		rest = strings.TrimLeftFunc(strings.TrimPrefix(content, "<@"+botID+">"), unicode.IsSpace)
	case botID != "" && strings.HasPrefix(content, "<@!"+botID+">"):
		rest = strings.TrimLeftFunc(strings.TrimPrefix(content, "<@!"+botID+">"), unicode.IsSpace)
	default:
		return "", "", false
	}

	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end == -1 {
		return rest, "", rest != ""
	}
	return rest[:end], strings.TrimSpace(rest[end:]), true
}

func (b *Bot) isCommand(content, botID string) bool {
	_, _, ok := b.splitCommand(content, botID)
	return ok
}

// Dispatch handles one incoming message: the message events first, then the
// command it carries, if any.
func (b *Bot) Dispatch(ctx context.Context, ch Channel, msg Message, botID string) {
	if msg.AuthorID == botID {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			b.tel.ReportBroken(report_panic, fmt.Errorf("%v", r), msg.Content)
		}
	}()

	b.followSuit(ctx, ch, msg, botID)
	b.resultComment(ctx, ch, msg)

	msg.Content = strings.ReplaceAll(msg.Content, "’", "'")
	name, args, ok := b.splitCommand(msg.Content, botID)
	if !ok {
		return
	}

	switch name {
	case "iidxpb":
		b.replyAfterLoading(ctx, ch, msg, b.cfg.Commands.PB.Title, func(ctx context.Context) Embed {
			return b.PBEmbed(ctx, args)
		})
	case "iidxvs":
		b.replyAfterLoading(ctx, ch, msg, b.cfg.Commands.VS.Title, func(ctx context.Context) Embed {
			return b.VSEmbed(ctx, args)
		})
	case "iidxsr":
		b.reply(ctx, ch, msg, b.SREmbed(ctx, args))
	case "volume":
		b.reply(ctx, ch, msg, b.VolumeEmbed(ctx, args, msg.ChannelID))
	case "help":
		b.reply(ctx, ch, msg, b.HelpEmbed())
	}
}

func (b *Bot) reply(ctx context.Context, ch Channel, msg Message, embed Embed) {
	_, err := ch.Reply(ctx, msg, embed)
	if err != nil {
		b.tel.ReportWarning(report_reply, err, msg.ChannelID)
	}
}

// replyAfterLoading replies with a loading message at once and replaces it
// with the result when it is ready.
func (b *Bot) replyAfterLoading(ctx context.Context, ch Channel, msg Message, title string, run func(context.Context) Embed) {
	replyID, err := ch.Reply(ctx, msg, b.loadingEmbed(title))
	if err != nil {
		b.tel.ReportWarning(report_reply, err, msg.ChannelID)
		return
	}
	err = ch.Edit(ctx, msg.ChannelID, replyID, run(ctx))
	if err != nil {
		b.tel.ReportWarning(report_reply, err, msg.ChannelID, replyID)
	}
}

// safely runs a command, a panic becomes an extraction error.
func (b *Bot) safely(title, command string, run func() (Embed, error)) (embed Embed) {
	defer func() {
		if r := recover(); r != nil {
			embed = b.errorEmbed(title, command, fmt.Errorf("%w: %v", apperr.ErrExtraction, r))
		}
	}()

	embed, err := run()
	if err != nil {
		return b.errorEmbed(title, command, err)
	}
	return embed
}

// PBEmbed runs the iidxpb command.
func (b *Bot) PBEmbed(ctx context.Context, args string) Embed {
	ctx, cancel := b.commandContext(ctx)
	defer cancel()

	return b.safely(b.cfg.Commands.PB.Title, "iidxpb", func() (Embed, error) {
		result, err := b.RunPB(ctx, args)
		if err != nil {
			return Embed{}, err
		}
		return b.pbEmbed(result), nil
	})
}

// SREmbed runs the iidxsr command.
func (b *Bot) SREmbed(ctx context.Context, args string) Embed {
	ctx, cancel := b.commandContext(ctx)
	defer cancel()

	return b.safely(b.cfg.Commands.SR.Title, "iidxsr", func() (Embed, error) {
		result, err := b.RunSR(ctx, args)
		if err != nil {
			return Embed{}, err
		}
		return b.srEmbed(result), nil
	})
}

// VSEmbed runs the iidxvs command.
func (b *Bot) VSEmbed(ctx context.Context, args string) Embed {
	ctx, cancel := b.commandContext(ctx)
	defer cancel()

	return b.safely(b.cfg.Commands.VS.Title, "iidxvs", func() (Embed, error) {
		result, err := b.RunVS(ctx, args)
		if err != nil {
			return Embed{}, err
		}
		return b.vsEmbed(result), nil
	})
}
