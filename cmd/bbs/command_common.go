package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"bbs/internal/types"
)

const (
	tableGap      = 2
	maxCellWidth  = 60
	ellipsisCells = "…"
)

// printTable writes rows as aligned columns. Widths are measured in terminal
// cells so CJK titles line up.
func printTable(out io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = runewidth.StringWidth(cell)
	}
	for r := range rows {
		for i := range rows[r] {
			if i >= len(widths) {
				break
			}
			rows[r][i] = cleanCell(rows[r][i])
			widths[i] = max(widths[i], runewidth.StringWidth(rows[r][i]))
		}
	}
	writeRow(out, header, widths)
	for _, row := range rows {
		writeRow(out, row, widths)
	}
}

func writeRow(out io.Writer, row []string, widths []int) {
	var b strings.Builder
	for i, cell := range row {
		if i >= len(widths) {
			break
		}
		if i == len(row)-1 {
			b.WriteString(cell)
			break
		}
		b.WriteString(runewidth.FillRight(cell, widths[i]+tableGap))
	}
	fmt.Fprintln(out, strings.TrimRight(b.String(), " "))
}

func cleanCell(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	if runewidth.StringWidth(value) > maxCellWidth {
		value = runewidth.Truncate(value, maxCellWidth, ellipsisCells)
	}
	return value
}

func printThreads(out io.Writer, threads []types.Thread) {
	rows := make([][]string, 0, len(threads))
	for _, thread := range threads {
		rows = append(rows, []string{thread.ID, thread.Title})
	}
	printTable(out, []string{"ID", "TITLE"}, rows)
}

func printPosts(out io.Writer, posts []types.Post) {
	rows := make([][]string, 0, len(posts))
	for _, post := range posts {
		rows = append(rows, []string{post.ID, post.Post})
	}
	printTable(out, []string{"ID", "POST"}, rows)
}

func writeJSON(out io.Writer, payload any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(payload)
}
