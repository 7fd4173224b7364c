package extract

import "github.com/fwojciec/metro"

// IsDataRow reports whether row holds station data. Header and section rows
// contain at least one th cell; the test is structural and ignores content.
func IsDataRow(row metro.Row) bool {
	if len(row.Cells) == 0 {
		return false
	}
	for _, c := range row.Cells {
		if c.Header {
			return false
		}
	}
	return true
}
