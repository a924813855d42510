package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"subdeck/internal/srt"
	"subdeck/internal/timeline"
)

type inspectChapter struct {
	timeline.Chapter
	Entries int `json:"entries"`
}

type inspectReport struct {
	File           string           `json:"file"`
	Entries        int              `json:"entries"`
	CreditsDropped int              `json:"creditsDropped"`
	FirstStart     float64          `json:"firstStart"`
	LastEnd        float64          `json:"lastEnd"`
	Duration       string           `json:"duration"`
	CaptionSeconds float64          `json:"captionSeconds"`
	ChapterMinutes int              `json:"chapterMinutes"`
	Chapters       []inspectChapter `json:"chapters"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var chapterMinutes int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file.srt>",
		Short: "Show parse statistics and chapters for a subtitle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			minutes := cfg.Chapters.ChapterMinutes
			if cmd.Flags().Changed("chapter-minutes") {
				minutes = chapterMinutes
			}
			if minutes <= 0 {
				return fmt.Errorf("chapter minutes must be positive, got %d", minutes)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read subtitles: %w", err)
			}
			report := inspect(args[0], string(data), minutes)
			if asJSON {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:            %s\n", report.File)
			fmt.Fprintf(out, "Entries:         %d\n", report.Entries)
			fmt.Fprintf(out, "Credits dropped: %d\n", report.CreditsDropped)
			fmt.Fprintf(out, "Span:            %s - %s (%s)\n",
				timeline.FormatHMS(report.FirstStart), timeline.FormatHMS(report.LastEnd), report.Duration)
			fmt.Fprintf(out, "Caption time:    %s\n", timeline.FormatHMS(report.CaptionSeconds))
			fmt.Fprintln(out)

			rows := make([][]string, 0, len(report.Chapters))
			for _, ch := range report.Chapters {
				rows = append(rows, []string{strconv.Itoa(ch.ID), ch.StartHMS, ch.EndHMS, strconv.Itoa(ch.Entries)})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Chapter", "Start", "End", "Entries"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().IntVar(&chapterMinutes, "chapter-minutes", 0, "Chapter size in minutes (default chapters.chapter_minutes)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func inspect(name, text string, chapterMinutes int) inspectReport {
	kept := srt.Parse(text, srt.Options{DropCredits: true})
	all := srt.Parse(text, srt.Options{DropCredits: false})
	chapterSeconds := float64(chapterMinutes) * 60

	perChapter := make(map[int]int)
	var captionSeconds float64
	for _, e := range kept {
		perChapter[timeline.ChapterID(e.StartSeconds, chapterSeconds)]++
		captionSeconds += e.Duration()
	}
	chapters := timeline.BuildChapters(kept, chapterSeconds)
	rows := make([]inspectChapter, len(chapters))
	for i, ch := range chapters {
		rows[i] = inspectChapter{Chapter: ch, Entries: perChapter[ch.ID]}
	}

	first, last := srt.Bounds(kept)
	return inspectReport{
		File:           name,
		Entries:        len(kept),
		CreditsDropped: len(all) - len(kept),
		FirstStart:     first,
		LastEnd:        last,
		Duration:       timeline.FormatHMS(last - first),
		CaptionSeconds: captionSeconds,
		ChapterMinutes: chapterMinutes,
		Chapters:       rows,
	}
}
