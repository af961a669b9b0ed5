// internal/utils/ids.go
package utils

import (
	"strconv"
	"strings"
)

// ParseIDList parses a comma separated list of ids. Entries that are not made of
// decimal digits only are skipped, duplicates are kept once.
func ParseIDList(raw string) []uint {
	var ids []uint
	seen := make(map[uint]struct{})

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || !isDigits(part) {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		if _, dup := seen[uint(id)]; dup {
			continue
		}
		seen[uint(id)] = struct{}{}
		ids = append(ids, uint(id))
	}

	return ids
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
