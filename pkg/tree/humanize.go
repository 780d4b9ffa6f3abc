package tree

import (
	"fmt"
	"strconv"
)

// Binary unit thresholds.
const (
	kib = 1 << 10
	mib = 1 << 20
	gib = 1 << 30
)

// FormatBytes renders a byte count with binary (1024-based) units:
// "512 B", "1.5 KB", "2.0 MB", "3.1 GB".
func FormatBytes(n int64) string {
	switch {
	case n < kib:
		return fmt.Sprintf("%d B", n)
	case n < mib:
		return fmt.Sprintf("%.1f KB", float64(n)/kib)
	case n < gib:
		return fmt.Sprintf("%.1f MB", float64(n)/mib)
	default:
		return fmt.Sprintf("%.1f GB", float64(n)/gib)
	}
}

// FormatCount renders a row count compactly: "950", "1.2K", "3.4M", "1.1B".
func FormatCount(n int64) string {
	switch {
	case n < 1_000:
		return strconv.FormatInt(n, 10)
	case n < 1_000_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	case n < 1_000_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	default:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	}
}
