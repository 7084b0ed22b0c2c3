package bot

import (
	"context"
	"strings"
	"testing"

	"iidxbot/internal/apperr"

	"github.com/stretchr/testify/require"
)

func TestParseVolume(t *testing.T) {
	f := setupBot(t)
	m := f.bot.cfg.Messages

	accepted := map[string]int{"0": 0, "150": 150, "+5": 5, "200": 200, "007": 7}
	for raw, expect := range accepted {
		volume, err := parseVolume(raw, 200, m)
		require.NoError(t, err, raw)
		require.Equal(t, expect, volume, raw)
	}

	rejected := []struct {
		raw    string
		expect string
	}{
		{raw: "abc", expect: m.VolumeNotInteger},
		{raw: "1.5", expect: m.VolumeNotInteger},
		{raw: "1 2", expect: m.VolumeNotInteger},
		{raw: "-1", expect: m.VolumeNegative},
		{raw: "-99999999999999999999999", expect: m.VolumeNegative},
		{raw: "201", expect: m.VolumeExceedsLimit},
		{raw: "99999999999999999999999", expect: m.VolumeExceedsLimit},
	}
	for _, test := range rejected {
		_, err := parseVolume(test.raw, 200, m)
		require.True(t, apperr.IsArgument(err), test.raw)
		require.EqualError(t, err, test.expect, test.raw)
	}
}

func TestVolumeBar(t *testing.T) {
	f := setupBot(t)
	cfg := f.bot.cfg.Volume

	cases := []struct {
		volume int
		on     int
	}{
		{volume: 0, on: 0},
		{volume: 10, on: 0},
		{volume: 30, on: 2},
		{volume: 50, on: 2},
		{volume: 150, on: 8},
		{volume: 200, on: 10},
	}
	for _, test := range cases {
		expect := strings.Repeat(cfg.EmojiOn, test.on) + cfg.EmojiHandler + strings.Repeat(cfg.EmojiOff, cfg.BarLength-test.on)
		require.Equal(t, expect, volumeBar(test.volume, cfg), test.volume)
	}
}

func TestVolumeCaption(t *testing.T) {
	f := setupBot(t)
	m := f.bot.cfg.Messages

	cases := map[int]string{
		0:   m.VolumeMuted,
		1:   m.VolumeLow1,
		50:  m.VolumeLow1,
		51:  m.VolumeLow2,
		99:  m.VolumeLow2,
		100: m.VolumeNormal,
		101: m.VolumeHigh1,
		150: m.VolumeHigh1,
		151: m.VolumeHigh2,
		199: m.VolumeHigh2,
		200: m.VolumeMax,
	}
	for volume, expect := range cases {
		require.Equal(t, expect, volumeCaption(volume, 200, m), volume)
	}
}

func TestVolumeEmbed(t *testing.T) {
	f := setupBot(t)
	ctx := context.Background()
	cfg := f.bot.cfg

	embed := f.bot.VolumeEmbed(ctx, "150", "iidx")
	expectFooter := strings.Repeat(cfg.Volume.EmojiOn, 8) + cfg.Volume.EmojiHandler + strings.Repeat(cfg.Volume.EmojiOff, 2) +
		"\n\n" + cfg.Messages.VolumeHigh1
	require.Equal(t, cfg.Messages.VolumeSubtitle, embed.Description)
	require.Equal(t, expectFooter, embed.Footer)

	stored, err := f.params.Volume(ctx)
	require.NoError(t, err)
	require.Equal(t, 150, stored)

	embed = f.bot.VolumeEmbed(ctx, " ", "iidx")
	require.Equal(t, expectFooter, embed.Footer)

	embed = f.bot.VolumeEmbed(ctx, "loud", "iidx")
	require.Equal(t, cfg.Messages.VolumeNotInteger, embed.Description)
	require.Equal(t, cfg.Messages.VolumeArgErrorFooter, embed.Footer)
	require.Equal(t, cfg.Colours.Error, embed.Colour)

	stored, err = f.params.Volume(ctx)
	require.NoError(t, err)
	require.Equal(t, 150, stored)
	require.Empty(t, f.tel.Reports("broken"))
}

func TestVolumeEmbedWrongChannel(t *testing.T) {
	f := setupBot(t)
	ctx := context.Background()

	embed := f.bot.VolumeEmbed(ctx, "150", "general")
	require.Equal(t, f.bot.cfg.Messages.VolumeWrongChannel, embed.Description)
	require.Equal(t, f.bot.cfg.Colours.Error, embed.Colour)

	// unchanged from the seeded default
	stored, err := f.params.Volume(ctx)
	require.NoError(t, err)
	require.Equal(t, 100, stored)
}
