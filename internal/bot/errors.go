package bot

import (
	"errors"

	"iidxbot/internal/apperr"
)

const report_command = "command"

// describeError returns the message shown to the requester for err.
func (b *Bot) describeError(err error) string {
	m := b.cfg.Messages

	var argErr apperr.ArgumentError
	switch {
	case errors.As(err, &argErr):
		return argErr.Message
	case errors.Is(err, apperr.ErrUserNotFound):
		return m.UserNotFound
	case errors.Is(err, apperr.ErrUpstreamUnavailable):
		return m.UpstreamUnavailable
	case errors.Is(err, apperr.ErrPageParse):
		return m.PageParse
	case errors.Is(err, apperr.ErrCatalog):
		return m.Catalog
	default:
		return m.Generic
	}
}

// reportError logs a failed command. Argument errors are expected and only
// logged at debug level.
func (b *Bot) reportError(command string, err error) {
	if apperr.IsArgument(err) {
		b.tel.ReportDebug("argument error", command, err.Error())
		return
	}
	b.tel.ReportBroken(report_command, err, command)
}

// errorEmbed reports err and builds the reply for it.
func (b *Bot) errorEmbed(title, command string, err error) Embed {
	b.reportError(command, err)
	return Embed{
		Title:       title,
		Description: b.describeError(err),
		Colour:      b.cfg.Colours.Error,
	}
}
