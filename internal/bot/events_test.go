package bot

import (
	"context"
	"testing"

	"iidxbot/internal/botparam"

	"github.com/stretchr/testify/require"
)

func streak(content string, authors ...string) []Message {
	history := make([]Message, len(authors))
	for i, author := range authors {
		history[i] = Message{ChannelID: "general", AuthorID: author, Content: content}
	}
	return history
}

func TestFollowSuit(t *testing.T) {
	f := setupBot(t)
	ctx := context.Background()
	ch := &fakeChannel{}

	ch.history = streak("gg", "c", "b", "a")
	f.bot.Dispatch(ctx, ch, Message{ChannelID: "general", AuthorID: "c", Content: "gg"}, "42")
	require.Equal(t, []string{"gg"}, ch.sent)

	last, err := f.params.Get(ctx, botparam.ModuleOnMessage, botparam.KeyFollowSuitLastSent)
	require.NoError(t, err)
	require.Equal(t, "gg", last)

	// the streak goes on but was already joined
	ch.history = streak("gg", "d", "c", "b")
	f.bot.Dispatch(ctx, ch, Message{ChannelID: "general", AuthorID: "d", Content: "gg"}, "42")
	require.Equal(t, []string{"gg"}, ch.sent)

	// a different message ends the streak
	ch.history = append([]Message{{ChannelID: "general", AuthorID: "e", Content: "hello"}}, streak("gg", "d", "c")...)
	f.bot.Dispatch(ctx, ch, Message{ChannelID: "general", AuthorID: "e", Content: "hello"}, "42")
	require.Equal(t, []string{"gg"}, ch.sent)

	last, err = f.params.Get(ctx, botparam.ModuleOnMessage, botparam.KeyFollowSuitLastSent)
	require.NoError(t, err)
	require.Empty(t, last)

	// so the same text can be joined again later
	ch.history = streak("gg", "h", "g", "f")
	f.bot.Dispatch(ctx, ch, Message{ChannelID: "general", AuthorID: "h", Content: "gg"}, "42")
	require.Equal(t, []string{"gg", "gg"}, ch.sent)
}

func TestFollowSuitNeedsDistinctHumans(t *testing.T) {
	cases := []struct {
		name    string
		history []Message
	}{
		{name: "repeated author", history: streak("gg", "a", "b", "a")},
		{name: "bot in streak", history: streak("gg", "a", "42", "b")},
		{name: "short history", history: streak("gg", "a", "b")},
		{name: "mixed text", history: append(streak("gg", "a", "b"), Message{AuthorID: "c", Content: "GG"})},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			f := setupBot(t)
			ch := &fakeChannel{history: test.history}

			f.bot.Dispatch(context.Background(), ch, Message{ChannelID: "general", AuthorID: "a", Content: "gg"}, "42")
			require.Empty(t, ch.sent)
		})
	}
}

func TestFollowSuitIgnoresCommands(t *testing.T) {
	f := setupBot(t)
	ch := &fakeChannel{history: streak("!help", "c", "b", "a")}

	f.bot.Dispatch(context.Background(), ch, Message{ChannelID: "general", AuthorID: "c", Content: "!help"}, "42")
	require.Empty(t, ch.sent)
	require.Zero(t, ch.historyCalls)
	require.Len(t, ch.replies, 1)
}

func TestFollowSuitDisabled(t *testing.T) {
	f := setupBot(t)
	f.bot.cfg.FollowSuit.Disabled = true
	ch := &fakeChannel{history: streak("gg", "c", "b", "a")}

	f.bot.Dispatch(context.Background(), ch, Message{ChannelID: "general", AuthorID: "c", Content: "gg"}, "42")
	require.Empty(t, ch.sent)
}

func TestResultComment(t *testing.T) {
	cases := []struct {
		name   string
		volume int
		rolls  []int
		msg    Message
		expect []string
	}{
		{
			name:   "screenshot under the volume",
			volume: 100,
			rolls:  []int{99, 1},
			msg:    Message{ChannelID: "iidx", AuthorID: "7", Attachments: []string{"RESULT.PNG"}},
			expect: []string{"gg"},
		},
		{
			name:   "roll at the volume stays quiet",
			volume: 100,
			rolls:  []int{100},
			msg:    Message{ChannelID: "iidx", AuthorID: "7", Attachments: []string{"result.png"}},
		},
		{
			name:   "muted",
			volume: 0,
			rolls:  []int{0},
			msg:    Message{ChannelID: "iidx", AuthorID: "7", Attachments: []string{"result.png"}},
		},
		{
			name:   "video link",
			volume: 200,
			rolls:  []int{0, 0},
			msg:    Message{ChannelID: "iidx", AuthorID: "7", Content: "new pb https://youtu.be/abc"},
			expect: []string{"nice score!"},
		},
		{
			name:   "dan comment joins the pool",
			volume: 200,
			rolls:  []int{0, 4},
			msg:    Message{ChannelID: "iidx", AuthorID: "7", AuthorRoles: []string{"role-10"}, Attachments: []string{"result.jpg"}},
			expect: []string{"as expected of a 10th dan"},
		},
		{
			name:   "dan role without comment",
			volume: 200,
			rolls:  []int{0, 4},
			msg:    Message{ChannelID: "iidx", AuthorID: "7", AuthorRoles: []string{"role-9"}, Attachments: []string{"result.jpg"}},
			expect: []string{"nice score!"},
		},
		{
			name:   "plain text",
			volume: 200,
			rolls:  []int{0, 0},
			msg:    Message{ChannelID: "iidx", AuthorID: "7", Content: "hello"},
		},
		{
			name:   "other channel",
			volume: 200,
			rolls:  []int{0, 0},
			msg:    Message{ChannelID: "general", AuthorID: "7", Attachments: []string{"result.png"}},
		},
		{
			name:   "bot author",
			volume: 200,
			rolls:  []int{0, 0},
			msg:    Message{ChannelID: "iidx", AuthorID: "8", AuthorBot: true, Attachments: []string{"result.png"}},
		},
		{
			name:   "not a result file",
			volume: 200,
			rolls:  []int{0, 0},
			msg:    Message{ChannelID: "iidx", AuthorID: "7", Attachments: []string{"notes.txt"}},
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			f := setupBot(t)
			ctx := context.Background()
			require.NoError(t, f.params.SetVolume(ctx, test.volume))
			f.bot.intn = sequence(test.rolls...)
			ch := &fakeChannel{}

			f.bot.Dispatch(ctx, ch, test.msg, "42")
			require.Equal(t, test.expect, ch.sent)
		})
	}
}
