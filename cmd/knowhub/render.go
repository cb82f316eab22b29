package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	chiTransport "github.com/kailas-cloud/knowhub/internal/transport/chi"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// renderPage draws one page of search results as a table, one column per DTO field.
func renderPage(entity string, p chiTransport.PageResponse) (string, error) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(entity))
	b.WriteString("\n")

	if len(p.Items) == 0 {
		b.WriteString(metaStyle.Render("No results found"))
		return b.String(), nil
	}

	rows := make([]map[string]any, len(p.Items))
	for i, item := range p.Items {
		m, err := toMap(item)
		if err != nil {
			return "", err
		}
		rows[i] = m
	}
	headers := columns(rows)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
	for _, m := range rows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			if v, ok := m[h]; ok && v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		t.Row(cells...)
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("page %d of %d, %d total",
		p.PageNumber+1, max(p.TotalPages, 1), p.TotalCount)))
	return b.String(), nil
}

func toMap(item any) (map[string]any, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode item: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return m, nil
}

// columns returns every key seen across rows, id first and the rest sorted.
func columns(rows []map[string]any) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range rows {
		for k := range m {
			if !seen[k] && k != "id" {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	slices.Sort(out)
	return append([]string{"id"}, out...)
}
