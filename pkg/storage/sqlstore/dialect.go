package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect captures the SQL differences between supported engines.
type Dialect struct {
	Name       string
	DriverName string
	// Now is the SQL expression for the current time in updated_at's type.
	Now string
	// numbered placeholders ($1) instead of ?
	numbered bool
}

var (
	// SQLite targets modernc.org/sqlite.
	SQLite = Dialect{Name: "sqlite", DriverName: "sqlite", Now: "unixepoch()"}
	// Postgres targets github.com/lib/pq.
	Postgres = Dialect{Name: "postgres", DriverName: "postgres", Now: "now()", numbered: true}
)

// rebind rewrites ? placeholders for dialects with numbered parameters.
func (d Dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
