package model

import "time"

// Action names recorded in the audit trail
const (
	ActionStart = "start"
	ActionStop  = "stop"
)

// AuditEntry records the outcome of a start or stop request
type AuditEntry struct {
	Action        string
	ContainerID   string
	ContainerName string
	Outcome       string // "ok" or the failure class
	RequestID     string
	Timestamp     time.Time
}
