package utils

import (
	"github.com/dustin/go-humanize"
)

// FormatFileSize renders a byte count for file listings ("0 B", "1.5 KiB").
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatDollars renders a whole-dollar amount with thousands separators ("$12,345").
func FormatDollars(amount int64) string {
	return "$" + humanize.Comma(amount)
}
