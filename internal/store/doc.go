// Package store persists alignment runs in SQLite.
//
// Each `artalign align` invocation becomes a run row keyed by a UUID. Books
// recorded against the run keep their statistics block and every labeled
// alignment, so `artalign runs show` can reproduce a run summary without the
// original inputs. The schema is versioned; a database written by a different
// schema version is rejected with ErrSchemaMismatch rather than migrated.
package store
