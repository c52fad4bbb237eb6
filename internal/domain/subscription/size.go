package subscription

import "fmt"

var sizeUnits = [...]string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatSize renders a byte count as "{quotient}.{remainder:03d} {unit}".
// The fraction is the remainder of the last division by 1024, not a decimal
// fraction: 1536 renders as "1.512 KB". Negative sizes render as zero.
func FormatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	var remainder int64
	level := 0
	for size >= 1024 && level < len(sizeUnits)-1 {
		remainder = size % 1024
		size /= 1024
		level++
	}
	return fmt.Sprintf("%d.%03d %s", size, remainder, sizeUnits[level])
}
