// Package mailer sends the invitation emails over plain SMTP. The corpus of
// services this project sits in has no SMTP dependency, so this stays on
// net/smtp: one message shape, one provider, credentials from the
// environment.
package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer holds SMTP connection settings. A zero Host disables sending (the
// invitation consumer then only writes its audit log), which keeps local
// development working without a mail server.
type Mailer struct {
	Host     string
	Port     string
	User     string
	Password string
}

func New(host, port, user, password string) Mailer {
	return Mailer{Host: host, Port: port, User: user, Password: password}
}

// Enabled reports whether SMTP settings are configured.
func (m Mailer) Enabled() bool { return m.Host != "" }

// SendInvitation delivers the share-link email for one invitation. Port 465
// uses implicit TLS; any other port goes through smtp.SendMail, which
// upgrades via STARTTLS when the server offers it.
func (m Mailer) SendInvitation(to, projectName, url, expiresAt string) error {
	msg := m.buildInvitationMessage(to, projectName, url, expiresAt)
	addr := m.Host + ":" + m.Port
	auth := smtp.PlainAuth("", m.User, m.Password, m.Host)

	if m.Port == "465" {
		return m.sendTLS(addr, auth, to, msg)
	}
	return smtp.SendMail(addr, auth, m.User, []string{to}, msg)
}

func (m Mailer) buildInvitationMessage(to, projectName, url, expiresAt string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: \"Projet Solaire\" <%s>\r\n", m.User)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Lien de suivi projet solaire\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Bonjour !\r\n\r\nVoici le lien de suivi de votre projet %q : %s\r\n\r\nCe lien expirera le %s\r\n",
		projectName, url, expiresAt)
	return []byte(b.String())
}

// sendTLS handles SMTPS (implicit TLS) servers, which smtp.SendMail cannot.
func (m Mailer) sendTLS(addr string, auth smtp.Auth, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.Host})
	if err != nil {
		return err
	}
	c, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(m.User); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
