package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for the low-stock alert emails.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

// NewMailer returns nil when no SMTP host is configured; callers treat a nil
// mailer as "alerts log only".
func NewMailer(host string, port int, user, password string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		addr:     fmt.Sprintf("%s:%d", host, port),
	}
}

// SendAlertaStock mails a low-stock warning for one product.
func (m *Mailer) SendAlertaStock(to, producto string, stock int) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = fmt.Sprintf("⚠ Stock crítico: %s", producto)
	e.Text = []byte(fmt.Sprintf(
		"El producto %q quedó con %d unidad(es) en inventario.\n\nReponer stock pronto.",
		producto, stock))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
