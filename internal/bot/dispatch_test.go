package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitCommand(t *testing.T) {
	f := setupBot(t)

	cases := []struct {
		content string
		name    string
		args    string
		ok      bool
	}{
		{content: "!iidxpb player1 quasar", name: "iidxpb", args: "player1 quasar", ok: true},
		{content: "!help", name: "help", ok: true},
		{content: "!volume   150  ", name: "volume", args: "150", ok: true},
		{content: "<@42> iidxsr quasar", name: "iidxsr", args: "quasar", ok: true},
		{content: "<@!42>iidxsr quasar", name: "iidxsr", args: "quasar", ok: true},
		{content: "<@43> iidxsr quasar"},
		{content: "!"},
		{content: "iidxpb player1 quasar"},
		{content: ""},
	}
	for _, test := range cases {
		name, args, ok := f.bot.splitCommand(test.content, "42")
		require.Equal(t, test.ok, ok, test.content)
		require.Equal(t, test.name, name, test.content)
		require.Equal(t, test.args, args, test.content)
	}
}

func TestDispatchPBRepliesThenEdits(t *testing.T) {
	f := setupBot(t)
	ch := &fakeChannel{}

	f.bot.Dispatch(context.Background(), ch, Message{ID: "1", ChannelID: "general", AuthorID: "7", Content: "!iidxpb player1 quasar"}, "42")

	require.Len(t, ch.replies, 1)
	require.Equal(t, f.bot.cfg.Messages.Loading, ch.replies[0].Description)
	require.Equal(t, "IIDX Personal Best", ch.replies[0].Title)

	require.Len(t, ch.edits, 1)
	require.Equal(t, f.bot.cfg.Messages.AllFCAndAAA, ch.edits[0].Footer)
	require.Contains(t, ch.edits[0].Description, "**Quasar**")
}

func TestDispatchVSRepliesThenEdits(t *testing.T) {
	f := setupBot(t)
	ch := &fakeChannel{}

	f.bot.Dispatch(context.Background(), ch, Message{ID: "1", ChannelID: "general", AuthorID: "7", Content: "!iidxvs alice bob quasar"}, "42")

	require.Len(t, ch.replies, 1)
	require.Equal(t, f.bot.cfg.Messages.Loading, ch.replies[0].Description)
	require.Len(t, ch.edits, 1)
	require.Contains(t, ch.edits[0].Footer, "alice 1 : 1 bob")
}

func TestDispatchDirectReplies(t *testing.T) {
	f := setupBot(t)
	ch := &fakeChannel{}
	ctx := context.Background()

	f.bot.Dispatch(ctx, ch, Message{ID: "1", ChannelID: "general", AuthorID: "7", Content: "<@42> help"}, "42")
	f.bot.Dispatch(ctx, ch, Message{ID: "2", ChannelID: "general", AuthorID: "7", Content: "!iidxsr quasar"}, "42")
	f.bot.Dispatch(ctx, ch, Message{ID: "3", ChannelID: "general", AuthorID: "7", Content: "!volume"}, "42")

	require.Len(t, ch.replies, 3)
	require.Empty(t, ch.edits)
	require.Equal(t, "Commands", ch.replies[0].Title)
	require.Equal(t, "IIDX Score Rate (SP)", ch.replies[1].Title)
	require.Equal(t, f.bot.cfg.Messages.VolumeWrongChannel, ch.replies[2].Description)
}

func TestDispatchNormalizesApostrophe(t *testing.T) {
	f := setupBot(t)
	ch := &fakeChannel{}

	f.bot.Dispatch(context.Background(), ch, Message{ID: "1", ChannelID: "general", AuthorID: "7", Content: "!iidxsr “don’t”"}, "42")

	require.Equal(t, "don't", f.catalog.lastPattern)
	require.True(t, f.catalog.lastExact)
}

func TestDispatchIgnoresOwnMessages(t *testing.T) {
	f := setupBot(t)
	ch := &fakeChannel{}

	f.bot.Dispatch(context.Background(), ch, Message{ID: "1", ChannelID: "iidx", AuthorID: "42", AuthorBot: true, Content: "!help"}, "42")

	require.Empty(t, ch.replies)
	require.Zero(t, ch.historyCalls)
}

func TestDispatchUnknownCommand(t *testing.T) {
	f := setupBot(t)
	ch := &fakeChannel{}

	f.bot.Dispatch(context.Background(), ch, Message{ID: "1", ChannelID: "general", AuthorID: "7", Content: "!iidxdp quasar"}, "42")

	require.Empty(t, ch.replies)
	require.Empty(t, f.tel.Reports("broken"))
}
