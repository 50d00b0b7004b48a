// Package notify sends workflow event notifications to external channels.
//
// Notifiers receive run lifecycle events (started, resolved, escalated) and
// operational alerts such as a failed escalation-log write. Implementations
// are expected to fail soft: a broken channel never affects run outcomes.
package notify
