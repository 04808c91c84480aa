package domain

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "vclock/internal/platform/errors"
	"vclock/internal/platform/markdown"
	"vclock/internal/platform/timefmt"
)

type ExportFormat string

const (
	ExportCSV      ExportFormat = "csv"
	ExportMarkdown ExportFormat = "markdown"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch s {
	case "csv":
		return ExportCSV, nil
	case "md", "markdown":
		return ExportMarkdown, nil
	}
	return "", fmt.Errorf("export format %q: %w", s, apperrors.ErrInvalidInput)
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

var lapHeaders = []string{"Lap", "Lap Time", "Total Time", "Timestamp"}

// LapsCSV renders laps with millisecond times and UTC timestamps.
func LapsCSV(laps []Lap) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(lapHeaders); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, lap := range laps {
		if err := w.Write(lapRow(lap)); err != nil {
			return "", fmt.Errorf("write csv lap %d: %w", lap.Number, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}

// LapsMarkdown renders a lap table under a YAML frontmatter summary.
func LapsMarkdown(laps []Lap, elapsed int64, exportedAt time.Time) (string, error) {
	stats := ComputeStats(laps)
	meta := map[string]any{
		"title":       "Stopwatch laps",
		"exported_at": exportedAt.UTC().Format(time.RFC3339),
		"elapsed":     timefmt.FormatStopwatch(elapsed, 3),
		"laps":        stats.Count,
	}
	if stats.Count > 0 {
		meta["fastest_lap"] = stats.Fastest.Number
		meta["slowest_lap"] = stats.Slowest.Number
		meta["average"] = timefmt.FormatStopwatch(int64(stats.AverageMs), 3)
	}
	headers := append(append([]string{}, lapHeaders...), "vs Average")
	rows := make([][]string, 0, len(laps))
	for _, lap := range laps {
		rows = append(rows, append(lapRow(lap), timefmt.FormatLapDifference(lap.LapTime, int64(stats.AverageMs))))
	}
	return markdown.RenderFrontmatter(meta, markdown.Table(headers, rows))
}

// ParseLapsMarkdown reads back a LapsMarkdown document. The table must hold
// as many laps as the frontmatter announces.
func ParseLapsMarkdown(doc string) ([]Lap, error) {
	meta, body, err := markdown.SplitFrontmatter(doc)
	if err != nil {
		return nil, fmt.Errorf("lap export: %v: %w", err, apperrors.ErrInvalidInput)
	}
	want, ok := meta["laps"].(int)
	if !ok {
		return nil, fmt.Errorf("lap export has no lap count: %w", apperrors.ErrInvalidInput)
	}
	var laps []Lap
	rows := 0
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		rows++
		// header and separator
		if rows <= 2 {
			continue
		}
		lap, err := parseLapCells(strings.Split(strings.Trim(line, "|"), "|"))
		if err != nil {
			return nil, fmt.Errorf("lap export row %d: %w", rows-2, err)
		}
		laps = append(laps, lap)
	}
	if len(laps) != want {
		return nil, fmt.Errorf("lap export lists %d laps, frontmatter says %d: %w", len(laps), want, apperrors.ErrInvalidInput)
	}
	return laps, nil
}

func parseLapCells(cells []string) (Lap, error) {
	if len(cells) < len(lapHeaders) {
		return Lap{}, fmt.Errorf("expected %d cells, got %d: %w", len(lapHeaders), len(cells), apperrors.ErrInvalidInput)
	}
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	number, err := strconv.Atoi(cells[0])
	if err != nil || number < 1 {
		return Lap{}, fmt.Errorf("lap number %q: %w", cells[0], apperrors.ErrInvalidInput)
	}
	lapTime, err := timefmt.ParseLapTime(cells[1])
	if err != nil {
		return Lap{}, err
	}
	total, err := timefmt.ParseLapTime(cells[2])
	if err != nil {
		return Lap{}, err
	}
	at, err := time.Parse(isoMillis, cells[3])
	if err != nil {
		return Lap{}, fmt.Errorf("lap timestamp %q: %w", cells[3], apperrors.ErrInvalidInput)
	}
	return Lap{Number: number, LapTime: lapTime, TotalTime: total, Timestamp: at.UnixMilli()}, nil
}

func lapRow(lap Lap) []string {
	return []string{
		strconv.Itoa(lap.Number),
		timefmt.FormatStopwatch(lap.LapTime, 3),
		timefmt.FormatStopwatch(lap.TotalTime, 3),
		time.UnixMilli(lap.Timestamp).UTC().Format(isoMillis),
	}
}
