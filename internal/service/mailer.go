package service

import (
	"fmt"

	"eventify/event-api/internal/model"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends the outbound notification mails. Delivery is
// best-effort everywhere: callers log returned errors and move on,
// a failed send never affects the mutation that triggered it.
// The zero value is a disabled mailer whose sends are logged no-ops.
type Mailer struct {
	enabled  bool
	host     string
	port     int
	sender   string
	password string
	domain   string
	ssl      bool
}

func NewMailer() *Mailer {
	return &Mailer{
		enabled:  viper.GetBool("mail.enabled"),
		host:     viper.GetString("mail.host"),
		port:     viper.GetInt("mail.port"),
		sender:   viper.GetString("mail.sender"),
		password: viper.GetString("mail.password"),
		domain:   viper.GetString("host.domain"),
		ssl:      viper.GetBool("host.ssl.enabled"),
	}
}

// ActivationMail mails the signed activation link for a pending
// account.
func (m *Mailer) ActivationMail(u *model.User, token string) error {
	scheme := "http"
	if m.ssl {
		scheme = "https"
	}

	link := fmt.Sprintf("%s://%s/api/auth/activate/%d/%s", scheme, m.domain, u.ID, token)

	body := fmt.Sprintf(
		"Hi %s,<br><br>Welcome to Eventify!<br><br>"+
			"Please click <a href='%s'>here</a> to activate your account.<br><br>"+
			"If you didn't create this account, please ignore this email.<br><br>"+
			"Thank you!<br>The Eventify Team",
		u.Username, link)

	return m.send(u.Email, "Activate your Eventify account", body)
}

// RSVPConfirmation mails the confirmation for a newly added RSVP.
func (m *Mailer) RSVPConfirmation(u *model.User, e *model.Event) error {
	body := fmt.Sprintf(
		"Dear %s,<br><br>You have successfully RSVP'd to <b>%s</b>.<br><br>"+
			"Date: %s<br>Time: %s<br>Location: %s<br>Category: %s<br><br>"+
			"We're excited to see you there! If you need to cancel your RSVP, "+
			"please visit the event page on Eventify.<br><br>"+
			"Best regards,<br>The Eventify Team",
		u.Username, e.Name, e.Date.Format("2006-01-02"), e.StartTime, e.Location, e.Category.Name)

	return m.send(u.Email, fmt.Sprintf("RSVP Confirmation for %s", e.Name), body)
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.enabled {
		zap.L().Debug("Mail disabled, skipping send", zap.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.sender, m.password)

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail, %w", err)
	}

	return nil
}
