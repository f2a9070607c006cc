package render

import (
	"fmt"
	"strconv"

	"github.com/purplebook-dev/purplebook/internal/model"
	"github.com/purplebook-dev/purplebook/internal/report"
)

// Section is a titled table, the unit every text format renders.
type Section struct {
	Title  string
	Header []string
	Rows   [][]string
	// Notes follow the table, e.g. failed balance checks.
	Notes []string
}

func (m Money) historySections(entries []model.JournalEntry) []Section {
	s := Section{
		Title:  "Transaction History",
		Header: []string{"ID", "Date", "Description", "Debit", "Credit", "Amount"},
	}
	for _, e := range entries {
		s.Rows = append(s.Rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Date.String(),
			e.Description,
			fmt.Sprintf("%s (%s)", e.DebitAccount, e.DebitCategory),
			fmt.Sprintf("%s (%s)", e.CreditAccount, e.CreditCategory),
			m.Format(e.DebitAmount),
		})
	}
	if len(entries) == 0 {
		s.Notes = append(s.Notes, "No transactions recorded.")
	}
	return []Section{s}
}

func ownersSection(owners []string, current string) Section {
	s := Section{Title: "Owners", Header: []string{"Owner", "Current"}}
	for _, o := range owners {
		mark := ""
		if o == current {
			mark = "*"
		}
		s.Rows = append(s.Rows, []string{o, mark})
	}
	if len(owners) == 0 {
		s.Notes = append(s.Notes, "No entries recorded for any owner.")
	}
	return s
}

func (m Money) ledgerSection(l report.Ledger) Section {
	title := "Ledger: " + l.Account
	if l.Category != "" {
		title += fmt.Sprintf(" (%s)", l.Category)
	}
	s := Section{
		Title:  title,
		Header: []string{"Date", "Entry", "Description", "Debit", "Credit", "Balance"},
	}
	for _, r := range l.Rows {
		s.Rows = append(s.Rows, []string{
			r.Date.String(),
			strconv.FormatInt(r.EntryID, 10),
			r.Label,
			m.FormatNull(r.Debit),
			m.FormatNull(r.Credit),
			m.Format(r.Balance),
		})
	}
	if len(l.Rows) == 0 {
		s.Notes = append(s.Notes, "No activity.")
	}
	return s
}

func (m Money) trialBalanceSection(tb report.TrialBalance) Section {
	s := Section{
		Title:  "Trial Balance",
		Header: []string{"Account", "Category", "Debit", "Credit"},
	}
	for _, r := range tb.Rows {
		s.Rows = append(s.Rows, []string{
			r.Account,
			string(r.Category),
			m.FormatNonZero(r.Debit),
			m.FormatNonZero(r.Credit),
		})
	}
	s.Rows = append(s.Rows, []string{"Total", "", m.Format(tb.TotalDebit), m.Format(tb.TotalCredit)})
	if tb.Balanced {
		s.Notes = append(s.Notes, "Balanced.")
	} else {
		s.Notes = append(s.Notes, "WARNING: trial balance does not balance, difference "+m.Format(tb.Difference))
	}
	return s
}

func (m Money) incomeSection(is report.IncomeStatement) Section {
	s := Section{
		Title:  "Income Statement",
		Header: []string{"Account", "Amount"},
	}
	s.Rows = append(s.Rows, []string{"Revenue", ""})
	for _, r := range is.Revenues {
		s.Rows = append(s.Rows, []string{"  " + r.Account, m.Format(r.Amount)})
	}
	s.Rows = append(s.Rows, []string{"Total revenue", m.Format(is.TotalRevenue)})
	s.Rows = append(s.Rows, []string{"Expenses", ""})
	for _, r := range is.Expenses {
		s.Rows = append(s.Rows, []string{"  " + r.Account, m.Format(r.Amount)})
	}
	s.Rows = append(s.Rows, []string{"Total expenses", m.Format(is.TotalExpense)})

	label := "Net income"
	if is.NetIncome.IsNegative() {
		label = "Net loss"
	}
	s.Rows = append(s.Rows, []string{label, m.Format(is.NetIncome)})
	return s
}

func (m Money) equitySection(es report.EquityStatement) Section {
	s := Section{
		Title:  "Statement of Changes in Equity",
		Header: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Beginning equity", m.Format(es.BeginningEquity)},
			{"Additional capital", m.Format(es.AdditionalCapital)},
			{"Net income", m.Format(es.NetIncome)},
			{"Owner draws", m.Format(es.Draws.Neg())},
			{"Ending equity", m.Format(es.EndingEquity)},
		},
	}
	return s
}

func (m Money) balanceSheetSection(bs report.BalanceSheet) Section {
	s := Section{
		Title:  "Balance Sheet",
		Header: []string{"Account", "Amount"},
	}
	s.Rows = append(s.Rows, []string{"Assets", ""})
	for _, r := range bs.Assets {
		s.Rows = append(s.Rows, []string{"  " + r.Account, m.Format(r.Amount)})
	}
	s.Rows = append(s.Rows, []string{"Total assets", m.Format(bs.TotalAssets)})
	s.Rows = append(s.Rows, []string{"Liabilities", ""})
	for _, r := range bs.Liabilities {
		s.Rows = append(s.Rows, []string{"  " + r.Account, m.Format(r.Amount)})
	}
	s.Rows = append(s.Rows, []string{"Total liabilities", m.Format(bs.TotalLiabilities)})
	s.Rows = append(s.Rows, []string{"Ending equity", m.Format(bs.EndingEquity)})
	s.Rows = append(s.Rows, []string{"Total liabilities and equity", m.Format(bs.TotalLiabilitiesAndEquity)})
	if bs.Balanced {
		s.Notes = append(s.Notes, "Balanced.")
	} else {
		s.Notes = append(s.Notes, "WARNING: balance sheet does not balance, discrepancy "+m.Format(bs.Discrepancy))
	}
	return s
}

func (m Money) reportSections(r *report.Reports) []Section {
	var out []Section
	if len(r.Conflicts) > 0 {
		s := Section{
			Title:  "Category Conflicts",
			Header: []string{"Account", "Observed", "Used"},
		}
		for _, c := range r.Conflicts {
			s.Rows = append(s.Rows, []string{c.Account, fmt.Sprint(c.Categories), string(c.Resolved)})
		}
		out = append(out, s)
	}
	out = append(out,
		m.trialBalanceSection(r.TrialBalance),
		m.incomeSection(r.IncomeStatement),
		m.equitySection(r.EquityStatement),
		m.balanceSheetSection(r.BalanceSheet),
	)
	return out
}
