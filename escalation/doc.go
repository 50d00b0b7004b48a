// Package escalation provides durable, append-only storage for escalated
// ticket records. The CSV log is the production sink; the in-memory sink
// exists for tests and embedding.
package escalation
