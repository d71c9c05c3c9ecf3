// Package queue defines message payloads exchanged over the message broker.
package queue

// InvitationCreatedEvent is published when a share invitation is created.
// It carries everything the mail consumer needs to build and send the
// invitation email without querying the primary database.
type InvitationCreatedEvent struct {
	InvitationID uint64 `json:"invitation_id"`
	ProjectID    uint64 `json:"project_id"`
	ProjectName  string `json:"project_name"`
	Email        string `json:"email"`
	URL          string `json:"url"`
	ExpiresAt    string `json:"expires_at"`
	CreatedAt    string `json:"created_at"`
}
