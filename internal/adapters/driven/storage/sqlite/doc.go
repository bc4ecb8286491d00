// Package sqlite provides durable template persistence backed by SQLite
// via the pure-Go modernc.org/sqlite driver. Schema changes ship as
// embedded SQL migrations applied at startup.
package sqlite
