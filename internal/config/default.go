package config

import (
	"iidxbot/internal/scrapers/iidxme"
)

// Default returns the configuration used for every value a file leaves unset.
func Default() Config {
	scraper := iidxme.DefaultOptions()

	return Config{
		CommandPrefix:         "!",
		CommandTimeoutSeconds: 60,
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		CatalogDB: "iidxbot.db",
		BotDB:     "iidxbot.db",
		Iidxme: Iidxme{
			BaseURL:           scraper.BaseURL,
			TimeoutSeconds:    int(scraper.Timeout.Seconds()),
			RequestsPerSecond: scraper.RequestsPerSecond,
			Concurrency:       scraper.Concurrency,
		},
		Commands: Commands{
			PB: Command{
				Title:       "IIDX Personal Best",
				Usage:       `<-%> <iidx.me username> <SP|DP><B|N|H|A|L><1-12> <song title | "exact song title">`,
				ResultLimit: 5,
			},
			SR: Command{
				Title:       "IIDX Score Rate",
				Usage:       `<SP|DP><B|N|H|A|L><1-12> <song title | "exact song title">`,
				ResultLimit: 5,
			},
			VS: Command{
				Title:       "IIDX Versus",
				Usage:       `<username A> <username B> <SP|DP><B|N|H|A|L><1-12> <song title | "exact song title">`,
				ResultLimit: 3,
			},
			Volume: Command{
				Title: "Bot Volume",
				Usage: "<0-200>",
			},
			Help: Command{
				Title: "Commands",
			},
		},
		Volume: Volume{
			UpperBound:   200,
			BarLength:    10,
			EmojiOn:      "🟦",
			EmojiHandler: "🔘",
			EmojiOff:     "⬜",
		},
		FollowSuit: FollowSuit{
			SameMessageCount: 3,
		},
		ResultComment: ResultComment{
			AttachmentExts: []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".mp4", ".mov"},
			VideoHosts:     []string{"https://www.youtube.com/", "https://youtu.be/"},
			Comments:       []string{"nice score!", "gg", "clean play", "one more credit?"},
		},
		Colours: Colours{
			Default: 0x3498db,
			Error:   0xe74c3c,
		},
		DifficultyEmoji: map[string]string{
			"B": "🟩",
			"N": "🟦",
			"H": "🟨",
			"A": "🟥",
			"L": "🟪",
		},
		Messages: Messages{
			EmptyKeyword:    "Please enter a song title.",
			MissingArgs:     "Some arguments are missing, check the usage with help.",
			InvalidUsername: "That does not look like an iidx.me username.",

			UserNotFound:        "That player does not exist on iidx.me.",
			UpstreamUnavailable: "Could not reach iidx.me, please try again later.",
			PageParse:           "Could not read the iidx.me page, its layout may have changed.",
			Catalog:             "Could not read the song database.",
			Generic:             "Something went wrong.",

			Loading:        "Loading...",
			TooManyResults: "Too many songs matched, only the first few are shown.",
			ResultNotFound: "No song matched.",
			NotesTBD:       "notes TBD",
			DidYouMean:     "Did you mean **%s**?",

			HasMax:      "MAX! Absolute legend.",
			AllFCAndAAA: "Full combo and AAA on everything.",
			AllFC:       "Full combo on everything.",
			AllAAA:      "AAA on everything.",
			AllNoPlay:   "Not played yet.",
			Draw:        "It's a draw.",

			VolumeSubtitle:       "How often the bot comments on play results.",
			VolumeWrongChannel:   "Volume can only be adjusted in the iidx channel.",
			VolumeNotInteger:     "Volume must be a whole number.",
			VolumeNegative:       "Volume cannot be negative.",
			VolumeExceedsLimit:   "Volume is over the limit.",
			VolumeArgErrorFooter: "usage: volume <0-200>",
			VolumeMuted:          "muted",
			VolumeLow1:           "quiet",
			VolumeLow2:           "a little quiet",
			VolumeNormal:         "normal",
			VolumeHigh1:          "loud",
			VolumeHigh2:          "very loud",
			VolumeMax:            "MAX VOLUME",
		},
	}
}
