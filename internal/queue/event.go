package queue

import "time"

// AuditQueue is the durable queue audit events are published to.
const AuditQueue = "entity.audit"

// AuditEvent records a committed write for the audit trail consumer.
type AuditEvent struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entity_id"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}
