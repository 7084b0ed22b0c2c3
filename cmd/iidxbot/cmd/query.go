package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"iidxbot/cmd/iidxbot/globals"
	"iidxbot/internal/bot"
	"iidxbot/internal/catalog"
	"iidxbot/internal/chartquery"
	"iidxbot/internal/config"
	"iidxbot/internal/scrapers/iidxme"
	"iidxbot/internal/serviceutil"
	"iidxbot/internal/targetscore"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.AddCommand(queryPBCmd)
	queryCmd.AddCommand(querySRCmd)
	queryCmd.AddCommand(queryVSCmd)

	queryPBCmd.Flags().BoolVarP(&showPercentage, "percentage", "p", false, "Show the score rate instead of the rank delta.")
}

var showPercentage bool

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Runs a score command without Discord and prints the result as a table.",
}

// withBot runs fn with a bot wired from the loaded config, under the command
// timeout.
func withBot(cmd *cobra.Command, fn func(ctx context.Context, cfg config.Config, b *bot.Bot) error) {
	cfg := globals.Get(cmd.Context()).Config

	b, cleanup, err := newBot(cmd.Context(), cfg)
	if err != nil {
		serviceutil.Fatal("init bot", err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.CommandTimeoutSeconds)*time.Second)
	defer cancel()

	err = fn(ctx, cfg, b)
	if err != nil {
		serviceutil.Fatal(cmd.Name(), err)
	}
}

func chartLabel(mode chartquery.Mode, chart catalog.Chart) string {
	level := "?"
	if chart.Level >= 0 {
		level = strconv.Itoa(chart.Level)
	}
	return fmt.Sprintf("%s%s %s", mode, chart.Difficulty, level)
}

// printMatchSummary prints the notices about the number of matches and
// reports whether there is a table to print.
func printMatchSummary(m config.Messages, q bot.SongQuery) bool {
	if q.TooMany() {
		fmt.Println(m.TooManyResults)
	}
	if q.Total > 0 {
		return true
	}
	fmt.Println(m.ResultNotFound)
	if q.Suggestion != "" {
		fmt.Printf(m.DidYouMean+"\n", q.Suggestion)
	}
	return false
}

func personalBest(records map[string]iidxme.PersonalBest, chartID string) iidxme.PersonalBest {
	pb, ok := records[chartID]
	if !ok {
		return iidxme.NewPersonalBest()
	}
	return pb
}

func scoreText(pb iidxme.PersonalBest) string {
	if pb.Score == iidxme.NoScore {
		return "--"
	}
	return strconv.Itoa(pb.Score)
}

var queryPBCmd = &cobra.Command{
	Use:   `pb <username> [filter] <song title | "exact song title">`,
	Short: "Prints the personal bests of a player.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if showPercentage {
			args = append([]string{"-%"}, args...)
		}
		withBot(cmd, func(ctx context.Context, cfg config.Config, b *bot.Bot) error {
			result, err := b.RunPB(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Printf("Player: %s (%s, version %s)\n", result.Player.Username, result.Parsed.Filter.Mode, result.Player.Version)
			if !printMatchSummary(cfg.Messages, result.SongQuery) {
				return nil
			}

			detail := "Delta"
			if result.Parsed.ShowPercentage {
				detail = "Rate"
			}
			t := newTable()
			t.AppendHeader(table.Row{"Song", "Chart", "Lamp", "Version", "Rank", "Score", detail, "BP"})
			for _, song := range result.Songs {
				for _, chart := range song.Charts {
					pb := personalBest(result.Player.Records, chart.ID)
					detailText := pb.RankDelta
					if result.Parsed.ShowPercentage {
						detailText = pb.Rate
					}
					bp := "--"
					if pb.MissCount != iidxme.NoMissCount {
						bp = strconv.Itoa(pb.MissCount)
					}
					t.AppendRow(table.Row{
						song.Title, chartLabel(result.Parsed.Filter.Mode, chart),
						pb.Lamp, pb.Version, pb.Rank, scoreText(pb), detailText, bp,
					})
				}
				t.AppendSeparator()
			}
			t.Render()
			return nil
		})
	},
}

var querySRCmd = &cobra.Command{
	Use:   `sr [filter] <song title | "exact song title">`,
	Short: "Prints the scores needed for each rank.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withBot(cmd, func(ctx context.Context, cfg config.Config, b *bot.Bot) error {
			result, err := b.RunSR(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !printMatchSummary(cfg.Messages, result.SongQuery) {
				return nil
			}

			t := newTable()
			t.AppendHeader(table.Row{"Song", "Chart", "Notes", "AAA-", "AAA", "MAX-", "MAX"})
			for _, song := range result.Songs {
				for _, chart := range song.Charts {
					label := chartLabel(result.Parsed.Filter.Mode, chart)
					if chart.Notes < 0 {
						t.AppendRow(table.Row{song.Title, label, cfg.Messages.NotesTBD})
						continue
					}
					targets := targetscore.Compute(chart.Notes)
					t.AppendRow(table.Row{
						song.Title, label, chart.Notes,
						targets.AAAMinus, targets.AAA, targets.MAXMinus, targets.MAX,
					})
				}
				t.AppendSeparator()
			}
			t.Render()
			return nil
		})
	},
}

var queryVSCmd = &cobra.Command{
	Use:   `vs <username A> <username B> [filter] <song title | "exact song title">`,
	Short: "Prints the personal bests of two players side by side.",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		withBot(cmd, func(ctx context.Context, cfg config.Config, b *bot.Bot) error {
			result, err := b.RunVS(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			left, right := result.Players[0], result.Players[1]
			if !printMatchSummary(cfg.Messages, result.SongQuery) {
				return nil
			}

			t := newTable()
			t.AppendHeader(table.Row{"Song", "Chart", left.Username, right.Username, ""})
			leftWins, rightWins := 0, 0
			for _, song := range result.Songs {
				for _, chart := range song.Charts {
					l := personalBest(left.Records, chart.ID)
					r := personalBest(right.Records, chart.ID)

					winner := ""
					switch {
					case l.Score == iidxme.NoScore && r.Score == iidxme.NoScore:
					case l.Score > r.Score:
						winner = "<"
						leftWins++
					case r.Score > l.Score:
						winner = ">"
						rightWins++
					default:
						winner = "="
					}
					t.AppendRow(table.Row{
						song.Title, chartLabel(result.Parsed.Filter.Mode, chart),
						l.Lamp + " " + scoreText(l), r.Lamp + " " + scoreText(r), winner,
					})
				}
				t.AppendSeparator()
			}
			t.AppendFooter(table.Row{"", "", leftWins, rightWins, ""})
			t.Render()
			return nil
		})
	},
}
