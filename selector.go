package pdftitle

import "github.com/tsawler/pdftitle/text"

// selection is the running best title across pages.
type selection struct {
	bestFontSize float64
	bestText     string
	bestPage     int
}

// consider replaces the current best with the page's runs only when the
// page's largest size is strictly greater. An equal size keeps the earlier
// page.
func (s *selection) consider(page int, result *text.PageResult) bool {
	if result == nil || result.MaxFontSize <= s.bestFontSize {
		return false
	}
	s.bestFontSize = result.MaxFontSize
	s.bestText = result.Text()
	s.bestPage = page
	return true
}
