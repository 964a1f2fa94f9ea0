package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alimgiray/mrscope/internal/models"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

const titleWidth = 60

func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// Truncate shortens str to width display cells, marking the cut with "..."
func Truncate(str string, width int) string {
	return runewidth.Truncate(str, width, "...")
}

// Render writes value as JSON or YAML, or calls table for the table format
func Render(w io.Writer, format string, value interface{}, table func(io.Writer) error) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	case OutputTable, "":
		return table(w)
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

// writeTable prints rows with every column padded to its widest cell
func writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	line := func(cells []string) error {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			if i == len(cells)-1 {
				padded[i] = cell
				continue
			}
			padded[i] = PadRight(cell, widths[i])
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(padded, "  "), " "))
		return err
	}

	if err := line(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := line(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteMergeRequestTable prints one line per merge request
func WriteMergeRequestTable(w io.Writer, mrs []models.MergeRequest) error {
	withParticipants := false
	for _, mr := range mrs {
		if len(mr.Participants) > 0 {
			withParticipants = true
			break
		}
	}

	header := []string{"IID", "STATE", "AUTHOR", "CREATED", "TITLE"}
	if withParticipants {
		header = append(header, "PARTICIPANTS")
	}

	rows := make([][]string, len(mrs))
	for i, mr := range mrs {
		row := []string{
			"!" + strconv.Itoa(mr.IID),
			mr.State,
			mr.Author,
			mr.CreatedAt.Format("2006-01-02 15:04"),
			Truncate(mr.Title, titleWidth),
		}
		if withParticipants {
			row = append(row, strings.Join(mr.Participants, ", "))
		}
		rows[i] = row
	}

	return writeTable(w, header, rows)
}

// WriteParticipantTable prints the participants of a single merge request
func WriteParticipantTable(w io.Writer, mr *models.MergeRequest, participants []string) error {
	if _, err := fmt.Fprintf(w, "!%d %s (%s)\n", mr.IID, Truncate(mr.Title, titleWidth), mr.Author); err != nil {
		return err
	}

	rows := make([][]string, len(participants))
	for i, p := range participants {
		role := ""
		if p == mr.Author {
			role = "author"
		}
		rows[i] = []string{p, role}
	}
	return writeTable(w, []string{"PARTICIPANT", "ROLE"}, rows)
}

// WriteContributorTable prints the contributor counters followed by a summary line
func WriteContributorTable(w io.Writer, report *models.ContributorReport) error {
	rows := make([][]string, len(report.Contributors))
	for i, c := range report.Contributors {
		rows[i] = []string{
			c.Username,
			strconv.Itoa(c.Opened),
			strconv.Itoa(c.Committed),
			strconv.Itoa(c.Commented),
			strconv.Itoa(c.Reacted),
			strconv.Itoa(c.Total()),
		}
	}

	header := []string{"USERNAME", "OPENED", "COMMITTED", "COMMENTED", "REACTED", "TOTAL"}
	if err := writeTable(w, header, rows); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d merge requests scanned of %d, estimated scan time %s\n",
		report.ScannedMergeRequests, report.TotalMergeRequests, report.EstimatedTotalTime.Round(time.Millisecond))
	return err
}
