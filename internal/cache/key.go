package cache

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Namespaces segregate payload kinds sharing one cache.
const (
	NamespaceDailyTimes = "daily_times"
	NamespaceQibla      = "qibla"
)

// Key derives a deterministic cache key from the normalized request tuple.
// Coordinates are rounded to four decimal places (about 11 m) and country
// is lowercased, so equivalent requests share an entry. date is empty for
// payloads with no date dependence.
func Key(namespace string, latitude, longitude float64, date, country string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%.4f|%.4f|%s|%s", namespace, latitude, longitude, date, strings.ToLower(strings.TrimSpace(country)))
	return strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}
