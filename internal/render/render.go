// Package render formats entries and reports as terminal tables, markdown or JSON.
// Currency symbols and separators live only here.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	md "github.com/nao1215/markdown"

	"github.com/purplebook-dev/purplebook/internal/model"
	"github.com/purplebook-dev/purplebook/internal/report"
)

// Format selects an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	// FormatPretty is markdown styled for the terminal.
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatMarkdown, FormatPretty, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q: must be table, markdown, pretty or json", s)
}

// Renderer writes values to Out in one format.
type Renderer struct {
	Out    io.Writer
	Format Format
	Money  Money
}

// New creates a Renderer.
func New(out io.Writer, format Format, currency string) *Renderer {
	return &Renderer{Out: out, Format: format, Money: NewMoney(currency)}
}

// Entry renders a single stored entry.
func (r *Renderer) Entry(e model.JournalEntry) error {
	s := r.Money.historySections([]model.JournalEntry{e})
	s[0].Title = "Recorded"
	return r.render(e, s)
}

// History renders entries in the given order.
func (r *Renderer) History(entries []model.JournalEntry) error {
	if entries == nil {
		entries = []model.JournalEntry{}
	}
	return r.render(entries, r.Money.historySections(entries))
}

// Ledger renders one account ledger.
func (r *Renderer) Ledger(l report.Ledger) error {
	return r.render(l, []Section{r.Money.ledgerSection(l)})
}

// Ledgers renders several ledgers.
func (r *Renderer) Ledgers(ls []report.Ledger) error {
	sections := make([]Section, 0, len(ls))
	for _, l := range ls {
		sections = append(sections, r.Money.ledgerSection(l))
	}
	if len(sections) == 0 {
		sections = append(sections, Section{Title: "Ledgers", Notes: []string{"No activity."}})
	}
	return r.render(ls, sections)
}

// TrialBalance renders the trial balance.
func (r *Renderer) TrialBalance(tb report.TrialBalance) error {
	return r.render(tb, []Section{r.Money.trialBalanceSection(tb)})
}

// IncomeStatement renders the income statement.
func (r *Renderer) IncomeStatement(is report.IncomeStatement) error {
	return r.render(is, []Section{r.Money.incomeSection(is)})
}

// EquityStatement renders the statement of changes in equity.
func (r *Renderer) EquityStatement(es report.EquityStatement) error {
	return r.render(es, []Section{r.Money.equitySection(es)})
}

// BalanceSheet renders the balance sheet.
func (r *Renderer) BalanceSheet(bs report.BalanceSheet) error {
	return r.render(bs, []Section{r.Money.balanceSheetSection(bs)})
}

// Reports renders the four statements together.
func (r *Renderer) Reports(rep *report.Reports) error {
	return r.render(rep, r.Money.reportSections(rep))
}

// Owners renders the owner ids with entries in the store, marking current.
func (r *Renderer) Owners(owners []string, current string) error {
	if owners == nil {
		owners = []string{}
	}
	return r.render(owners, []Section{ownersSection(owners, current)})
}

func (r *Renderer) render(v any, sections []Section) error {
	switch r.Format {
	case FormatJSON:
		return WriteJSON(r.Out, v)
	case FormatMarkdown:
		_, err := io.WriteString(r.Out, Markdown(sections))
		return err
	case FormatPretty:
		out, err := Terminal(Markdown(sections))
		if err != nil {
			return err
		}
		_, err = io.WriteString(r.Out, out)
		return err
	default:
		return WriteTables(r.Out, sections)
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// WriteTables writes sections as aligned plain-text tables.
func WriteTables(w io.Writer, sections []Section) error {
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, s.Title)
		fmt.Fprintln(w, strings.Repeat("=", len(s.Title)))

		if len(s.Header) > 0 {
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, strings.Join(s.Header, "\t"))
			for _, row := range s.Rows {
				fmt.Fprintln(tw, strings.Join(row, "\t"))
			}
			if err := tw.Flush(); err != nil {
				return fmt.Errorf("writing table %q: %w", s.Title, err)
			}
		}
		for _, n := range s.Notes {
			fmt.Fprintln(w, n)
		}
	}
	return nil
}

// Markdown renders sections as a markdown document.
func Markdown(sections []Section) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	for _, s := range sections {
		doc.H2(s.Title)
		if len(s.Header) > 0 {
			rows := make([][]string, len(s.Rows))
			for i, row := range s.Rows {
				rows[i] = make([]string, len(row))
				for j, cell := range row {
					rows[i][j] = strings.TrimSpace(cell)
				}
			}
			doc.Table(md.TableSet{Header: s.Header, Rows: rows})
		}
		for _, n := range s.Notes {
			doc.PlainText(n)
		}
	}
	return doc.String()
}

// Terminal styles markdown for an ANSI terminal.
func Terminal(markdown string) (string, error) {
	tr, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	out, err := tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
