// Package config holds every setting of the bot, including the text of every
// message it sends.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"iidxbot/internal/chartquery"
	"iidxbot/internal/configutil"
	"iidxbot/internal/scrapers/iidxme"
	"iidxbot/internal/telemetry"
)

// FileName is the configuration file looked up from the working directory
// upwards when no explicit path is given.
const FileName = "iidxbot.json5"

// TokenEnv overrides the bot token from the configuration file.
const TokenEnv = "IIDXBOT_TOKEN"

type Log struct {
	Level      string `json:"level"`
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
}

func (l Log) Options() telemetry.LogOptions {
	return telemetry.LogOptions{
		Level:      l.Level,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
	}
}

type Iidxme struct {
	BaseURL           string  `json:"base_url"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	Concurrency       int     `json:"concurrency"`
	CloudflareBypass  bool    `json:"cloudflare_bypass"`
}

func (c Iidxme) Options() iidxme.Options {
	return iidxme.Options{
		BaseURL:           c.BaseURL,
		Timeout:           time.Duration(c.TimeoutSeconds) * time.Second,
		RequestsPerSecond: c.RequestsPerSecond,
		Concurrency:       c.Concurrency,
		CloudflareBypass:  c.CloudflareBypass,
	}
}

// DanRole is a server role for a dan (skill grade), checked in order.
type DanRole struct {
	Name    string `json:"name"`
	RoleID  string `json:"role_id"`
	Comment string `json:"comment"`
}

type Server struct {
	IidxChannelID string    `json:"iidx_channel_id"`
	DanRoles      []DanRole `json:"dan_roles"`
}

type Command struct {
	Title       string `json:"title"`
	Usage       string `json:"usage"`
	ResultLimit int    `json:"result_limit"`
}

type Commands struct {
	PB     Command `json:"iidxpb"`
	SR     Command `json:"iidxsr"`
	VS     Command `json:"iidxvs"`
	Volume Command `json:"volume"`
	Help   Command `json:"help"`
}

type Volume struct {
	UpperBound   int    `json:"upper_bound"`
	BarLength    int    `json:"bar_length"`
	EmojiOn      string `json:"emoji_on"`
	EmojiHandler string `json:"emoji_handler"`
	EmojiOff     string `json:"emoji_off"`
}

type FollowSuit struct {
	Disabled         bool `json:"disabled"`
	SameMessageCount int  `json:"same_message_count"`
}

type ResultComment struct {
	Disabled       bool     `json:"disabled"`
	AttachmentExts []string `json:"attachment_exts"`
	VideoHosts     []string `json:"video_hosts"`
	Comments       []string `json:"comments"`
}

type Colours struct {
	Default int `json:"default"`
	Error   int `json:"error"`
}

type Messages struct {
	EmptyKeyword    string `json:"empty_keyword"`
	MissingArgs     string `json:"missing_args"`
	InvalidUsername string `json:"invalid_username"`

	UserNotFound        string `json:"user_not_found"`
	UpstreamUnavailable string `json:"upstream_unavailable"`
	PageParse           string `json:"page_parse"`
	Catalog             string `json:"catalog"`
	Generic             string `json:"generic"`

	Loading        string `json:"loading"`
	TooManyResults string `json:"too_many_results"`
	ResultNotFound string `json:"result_not_found"`
	NotesTBD       string `json:"notes_tbd"`

	// DidYouMean is a format string taking the suggested title.
	DidYouMean string `json:"did_you_mean"`

	HasMax      string `json:"has_max"`
	AllFCAndAAA string `json:"all_fc_and_aaa"`
	AllFC       string `json:"all_fc"`
	AllAAA      string `json:"all_aaa"`
	AllNoPlay   string `json:"all_no_play"`
	Draw        string `json:"draw"`

	VolumeSubtitle       string `json:"volume_subtitle"`
	VolumeWrongChannel   string `json:"volume_wrong_channel"`
	VolumeNotInteger     string `json:"volume_not_integer"`
	VolumeNegative       string `json:"volume_negative"`
	VolumeExceedsLimit   string `json:"volume_exceeds_limit"`
	VolumeArgErrorFooter string `json:"volume_arg_error_footer"`
	VolumeMuted          string `json:"volume_muted"`
	VolumeLow1           string `json:"volume_low_1"`
	VolumeLow2           string `json:"volume_low_2"`
	VolumeNormal         string `json:"volume_normal"`
	VolumeHigh1          string `json:"volume_high_1"`
	VolumeHigh2          string `json:"volume_high_2"`
	VolumeMax            string `json:"volume_max"`
}

// ParserMessages are the messages of argument errors raised while parsing a
// command.
func (m Messages) ParserMessages() chartquery.Messages {
	return chartquery.Messages{
		EmptyKeyword:    m.EmptyKeyword,
		MissingArgs:     m.MissingArgs,
		InvalidUsername: m.InvalidUsername,
	}
}

type Config struct {
	Token                 string `json:"token"`
	CommandPrefix         string `json:"command_prefix"`
	CommandTimeoutSeconds int    `json:"command_timeout_seconds"`
	Log                   Log    `json:"log"`

	// Otlp enables trace and metric export, both are off by default.
	Otlp telemetry.OtlpOptions `json:"otlp"`

	// CatalogDB and BotDB are sqlite file paths or libsql urls.
	CatalogDB string `json:"catalog_db"`
	BotDB     string `json:"bot_db"`

	Iidxme        Iidxme        `json:"iidxme"`
	Server        Server        `json:"server"`
	Commands      Commands      `json:"commands"`
	Volume        Volume        `json:"volume"`
	FollowSuit    FollowSuit    `json:"follow_suit"`
	ResultComment ResultComment `json:"result_comment"`
	Colours       Colours       `json:"colours"`
	Messages      Messages      `json:"messages"`

	// DifficultyEmoji is keyed by difficulty letter.
	DifficultyEmoji map[string]string `json:"difficulty_emoji"`
}

// Load reads path, or FileName found from the working directory upwards when
// path is empty, and fills unset values from Default. A missing file is not
// an error when path is empty.
func Load(path string) (Config, error) {
	var config Config
	var err error
	if path == "" {
		config, err = configutil.ReadRecursively[Config](FileName)
		if errors.Is(err, os.ErrNotExist) {
			err = nil
		}
	} else {
		config, err = configutil.ReadConfig[Config](path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	config, err = configutil.WithDefaults(config, Default())
	if err != nil {
		return Config{}, fmt.Errorf("apply config defaults: %w", err)
	}

	token := os.Getenv(TokenEnv)
	if token != "" {
		config.Token = token
	}

	return config, config.Validate()
}

// Validate checks the values the bot cannot run without.
func (c Config) Validate() error {
	if c.Volume.UpperBound <= 0 {
		return fmt.Errorf("volume.upper_bound must be positive, got %d", c.Volume.UpperBound)
	}
	if c.Volume.BarLength <= 0 {
		return fmt.Errorf("volume.bar_length must be positive, got %d", c.Volume.BarLength)
	}
	for name, cmd := range map[string]Command{"iidxpb": c.Commands.PB, "iidxsr": c.Commands.SR, "iidxvs": c.Commands.VS} {
		if cmd.ResultLimit <= 0 {
			return fmt.Errorf("commands.%s.result_limit must be positive, got %d", name, cmd.ResultLimit)
		}
	}
	if c.CommandTimeoutSeconds <= 0 {
		return fmt.Errorf("command_timeout_seconds must be positive, got %d", c.CommandTimeoutSeconds)
	}
	if c.Iidxme.Concurrency <= 0 {
		return fmt.Errorf("iidxme.concurrency must be positive, got %d", c.Iidxme.Concurrency)
	}
	return nil
}
