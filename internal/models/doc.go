// Package models holds the [Task] entity and its enumerated field types.
//
// Tasks cross three boundaries with the same shape: the JSON HTTP API, the
// ephemeral store's mirror file, and the dashboard client. JSON tags are
// camelCase to match the wire format; the sqlite and hosted backends map
// these to snake_case columns in their own packages.
//
// Enum normalization is deliberately forgiving: unknown categories,
// statuses, and agents collapse to their defaults rather than erroring, so
// old bots with stale vocabularies keep working.
package models
