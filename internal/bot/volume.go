package bot

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"iidxbot/internal/apperr"
	"iidxbot/internal/config"
)

var integerRegex = regexp.MustCompile(`^[-+]?\d+$`)

// parseVolume reads a volume from 0 to upperBound inclusive.
func parseVolume(args string, upperBound int, m config.Messages) (int, error) {
	if !integerRegex.MatchString(args) {
		return 0, apperr.Argument(m.VolumeNotInteger)
	}
	volume, err := strconv.Atoi(args)
	if err != nil {
		// out of int range
		if strings.HasPrefix(args, "-") {
			return 0, apperr.Argument(m.VolumeNegative)
		}
		return 0, apperr.Argument(m.VolumeExceedsLimit)
	}
	if volume < 0 {
		return 0, apperr.Argument(m.VolumeNegative)
	}
	if volume > upperBound {
		return 0, apperr.Argument(m.VolumeExceedsLimit)
	}
	return volume, nil
}

func volumeBar(volume int, cfg config.Volume) string {
	on := int(math.RoundToEven(float64(volume*cfg.BarLength) / float64(cfg.UpperBound)))
	return strings.Repeat(cfg.EmojiOn, on) + cfg.EmojiHandler + strings.Repeat(cfg.EmojiOff, cfg.BarLength-on)
}

func volumeCaption(volume, upperBound int, m config.Messages) string {
	switch {
	case volume == 0:
		return m.VolumeMuted
	case volume <= 50:
		return m.VolumeLow1
	case volume < 100:
		return m.VolumeLow2
	case volume == 100:
		return m.VolumeNormal
	case volume <= 150:
		return m.VolumeHigh1
	case volume < upperBound:
		return m.VolumeHigh2
	case volume == upperBound:
		return m.VolumeMax
	}
	return ""
}

// VolumeEmbed shows the comment volume, or sets it when args is not empty.
// It only works in the iidx channel.
func (b *Bot) VolumeEmbed(ctx context.Context, args, channelID string) Embed {
	m := b.cfg.Messages
	embed := Embed{
		Title:       b.cfg.Commands.Volume.Title,
		Description: m.VolumeSubtitle,
		Colour:      b.cfg.Colours.Default,
	}

	if channelID != b.cfg.Server.IidxChannelID {
		embed.Description = m.VolumeWrongChannel
		embed.Colour = b.cfg.Colours.Error
		return embed
	}

	volume, err := b.volume(ctx, strings.TrimSpace(args))
	if err != nil {
		embed = b.errorEmbed(embed.Title, "volume", err)
		if apperr.IsArgument(err) {
			embed.Footer = m.VolumeArgErrorFooter
		}
		return embed
	}

	embed.Footer = volumeBar(volume, b.cfg.Volume)
	caption := volumeCaption(volume, b.cfg.Volume.UpperBound, m)
	if caption != "" {
		embed.Footer += "\n\n" + caption
	}
	return embed
}

func (b *Bot) volume(ctx context.Context, args string) (int, error) {
	if args == "" {
		return b.params.Volume(ctx)
	}
	volume, err := parseVolume(args, b.cfg.Volume.UpperBound, b.cfg.Messages)
	if err != nil {
		return 0, err
	}
	err = b.params.SetVolume(ctx, volume)
	if err != nil {
		return 0, err
	}
	return volume, nil
}
