package bot

import (
	"context"
	"slices"
	"strings"

	"iidxbot/internal/botparam"
)

const (
	report_follow_suit    = "event.follow-suit"
	report_result_comment = "event.result-comment"
)

// followSuit repeats a message when the last few messages of the channel are
// the same text from different authors. The text it sent last is stored so a
// streak is only joined once.
func (b *Bot) followSuit(ctx context.Context, ch Channel, msg Message, botID string) {
	settings := b.cfg.FollowSuit
	if settings.Disabled || settings.SameMessageCount <= 0 {
		return
	}

	last, err := b.params.Get(ctx, botparam.ModuleOnMessage, botparam.KeyFollowSuitLastSent)
	if err != nil {
		b.tel.ReportWarning(report_follow_suit, err)
		return
	}
	if last != "" && last != msg.Content {
		last = ""
		err = b.params.Set(ctx, botparam.ModuleOnMessage, botparam.KeyFollowSuitLastSent, "")
		if err != nil {
			b.tel.ReportWarning(report_follow_suit, err)
			return
		}
	}

	if msg.Content == "" || b.isCommand(msg.Content, botID) {
		return
	}

	history, err := ch.History(ctx, msg.ChannelID, settings.SameMessageCount)
	if err != nil {
		b.tel.ReportWarning(report_follow_suit, err, msg.ChannelID)
		return
	}
	if len(history) < settings.SameMessageCount {
		return
	}

	authors := make(map[string]struct{}, len(history))
	for _, past := range history {
		if past.Content != history[0].Content || past.AuthorID == botID {
			return
		}
		authors[past.AuthorID] = struct{}{}
	}
	if len(authors) != len(history) {
		return
	}

	text := history[0].Content
	if last == text {
		return
	}
	previous, err := b.params.Swap(ctx, botparam.ModuleOnMessage, botparam.KeyFollowSuitLastSent, text)
	if err != nil {
		b.tel.ReportWarning(report_follow_suit, err)
		return
	}
	// another handler joined the streak first
	if previous == text {
		return
	}
	err = ch.Send(ctx, msg.ChannelID, text)
	if err != nil {
		b.tel.ReportWarning(report_follow_suit, err, msg.ChannelID)
	}
}

func (b *Bot) isPlayResult(msg Message) bool {
	settings := b.cfg.ResultComment
	if len(msg.Attachments) > 0 {
		name := strings.ToLower(msg.Attachments[0])
		for _, ext := range settings.AttachmentExts {
			if strings.HasSuffix(name, strings.ToLower(ext)) {
				return true
			}
		}
	}
	for _, host := range settings.VideoHosts {
		if strings.Contains(msg.Content, host) {
			return true
		}
	}
	return false
}

// resultComment sometimes comments on play results posted in the iidx
// channel, more often the higher the volume is.
func (b *Bot) resultComment(ctx context.Context, ch Channel, msg Message) {
	settings := b.cfg.ResultComment
	if settings.Disabled || msg.AuthorBot || msg.ChannelID != b.cfg.Server.IidxChannelID {
		return
	}
	if !b.isPlayResult(msg) {
		return
	}

	volume, err := b.params.Volume(ctx)
	if err != nil {
		b.tel.ReportWarning(report_result_comment, err)
		return
	}
	if b.intn(b.cfg.Volume.UpperBound) >= volume {
		return
	}

	comments := slices.Clone(settings.Comments)
	for _, dan := range b.cfg.Server.DanRoles {
		if slices.Contains(msg.AuthorRoles, dan.RoleID) {
			if dan.Comment != "" {
				comments = append(comments, dan.Comment)
			}
			break
		}
	}
	if len(comments) == 0 {
		return
	}

	err = ch.Send(ctx, msg.ChannelID, comments[b.intn(len(comments))])
	if err != nil {
		b.tel.ReportWarning(report_result_comment, err, msg.ChannelID)
	}
}
