package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled(t *testing.T) {
	assert.False(t, New("", "", "", "").Enabled())
	assert.True(t, New("smtp.example.com", "587", "crm@example.com", "pw").Enabled())
}

func TestBuildInvitationMessage(t *testing.T) {
	m := New("smtp.example.com", "465", "crm@solaire.fr", "pw")
	msg := string(m.buildInvitationMessage(
		"client@example.com",
		"Toiture Dupont",
		"https://suivi.solaire.fr/public/suivi/abc123",
		"2026-09-04T10:00:00Z",
	))

	assert.True(t, strings.HasPrefix(msg, "From: \"Projet Solaire\" <crm@solaire.fr>\r\n"))
	assert.Contains(t, msg, "To: client@example.com\r\n")
	assert.Contains(t, msg, "Subject: Lien de suivi projet solaire\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8\r\n")
	assert.Contains(t, msg, `"Toiture Dupont"`)
	assert.Contains(t, msg, "https://suivi.solaire.fr/public/suivi/abc123")
	assert.Contains(t, msg, "Ce lien expirera le 2026-09-04T10:00:00Z")

	// Headers and body are separated by a blank line.
	assert.Contains(t, msg, "\r\n\r\nBonjour !")
}
