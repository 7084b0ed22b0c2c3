package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Embed is a chat reply, independent of the chat platform.
type Embed struct {
	Title       string
	Description string
	Colour      int
	Footer      string
}

func (e Embed) discord() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Colour,
	}
	if e.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	return embed
}

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`)

// escapeMarkdown keeps song titles and usernames from being read as
// italic/bold markers.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
