package report

import "strings"

// EquityPolicy names the equity accounts that are not part of beginning equity.
// Patterns match account names case-insensitively as substrings.
type EquityPolicy struct {
	// DrawPatterns mark equity accounts that record owner withdrawals in books kept
	// before the draw category existed.
	DrawPatterns []string `yaml:"draw_patterns" json:"draw_patterns"`
	// ContributionPatterns mark equity accounts that record additional capital.
	ContributionPatterns []string `yaml:"contribution_patterns" json:"contribution_patterns"`
}

// DefaultEquityPolicy returns the patterns used by the bundled chart of accounts.
func DefaultEquityPolicy() EquityPolicy {
	return EquityPolicy{
		DrawPatterns:         []string{"prive"},
		ContributionPatterns: []string{"tambahan modal"},
	}
}

// IsDraw reports whether name matches a draw pattern.
func (p EquityPolicy) IsDraw(name string) bool {
	return matchAny(name, p.DrawPatterns)
}

// IsContribution reports whether name matches a contribution pattern.
func (p EquityPolicy) IsContribution(name string) bool {
	return matchAny(name, p.ContributionPatterns)
}

func matchAny(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
