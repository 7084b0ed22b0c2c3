package bot

import (
	"fmt"
	"strings"

	"iidxbot/internal/config"
)

type commandInfo struct {
	name string
	cfg  config.Command
}

func (b *Bot) commandList() []commandInfo {
	c := b.cfg.Commands
	return []commandInfo{
		{name: "iidxpb", cfg: c.PB},
		{name: "iidxsr", cfg: c.SR},
		{name: "iidxvs", cfg: c.VS},
		{name: "volume", cfg: c.Volume},
		{name: "help", cfg: c.Help},
	}
}

// HelpEmbed lists every command with its usage.
func (b *Bot) HelpEmbed() Embed {
	var desc strings.Builder
	for _, cmd := range b.commandList() {
		fmt.Fprintf(&desc, "**%s%s**: %s\n", b.cfg.CommandPrefix, cmd.name, cmd.cfg.Title)
		if cmd.cfg.Usage != "" {
			fmt.Fprintf(&desc, "```%s%s %s```\n", b.cfg.CommandPrefix, cmd.name, cmd.cfg.Usage)
		}
	}
	return Embed{
		Title:       b.cfg.Commands.Help.Title,
		Description: desc.String(),
		Colour:      b.cfg.Colours.Default,
	}
}
