package utils

import (
	"fmt"
	"html"
	"strings"

	"ruha/config"
	"ruha/logger"
	"ruha/models"
	"ruha/models/athenaeum"
	"ruha/models/cosmos"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gorm.io/gorm"
)

// SendEmail delivers one html email through SendGrid. Without an API key the message
// is logged and dropped.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	cfg := config.AppConfig
	if cfg == nil || cfg.SendgridAPIKey == "" {
		logger.Log.Debug("SENDGRID_API_KEY not set, email skipped", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(cfg.EmailName, cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText(htmlBody), htmlBody)

	resp, err := sendgrid.NewSendClient(cfg.SendgridAPIKey).Send(message)
	if err != nil {
		logger.Log.Error("Error sending email", "to", toEmail, "subject", subject, "error", err)
		return err
	}
	if resp.StatusCode >= 300 {
		err := fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, resp.Body)
		logger.Log.Error("Email rejected", "to", toEmail, "subject", subject, "error", err)
		return err
	}

	logger.Log.Info("Email sent", "to", toEmail, "subject", subject)
	return nil
}

func plainText(htmlBody string) string {
	var b strings.Builder
	inTag := false
	for _, r := range htmlBody {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: Georgia, 'Times New Roman', serif; background-color: #0E0B16; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #1C1528; border-radius: 8px; overflow: hidden; }
			.header { background-color: #2A1F3D; padding: 30px; text-align: center; }
			.header h1 { color: #E7C873; margin: 0; font-size: 24px; letter-spacing: 2px; }
			.content { padding: 40px 30px; color: #EDE6F6; line-height: 1.6; }
			.content h2 { color: #E7C873; margin-top: 0; }
			.footer { padding: 20px; text-align: center; font-size: 12px; color: #9A8FB0; border-top: 1px solid #2A1F3D; }
			.info-box { background: #2A1F3D; padding: 15px; border-radius: 4px; border-left: 4px solid #E7C873; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>JAKINTZA RUHA</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				You receive this because you walk the path of Jakintza Ruha.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Jakintza Ruha"
	body := fmt.Sprintf(`
		<p>Blessed be, %s.</p>
		<p>Your place in the <strong>Athenaeum</strong> is prepared. Begin as a Prophyte and let every lesson, reflection and ritual carry you further.</p>
	`, html.EscapeString(name))

	go SendEmail(email, name, subject, getEmailTemplate("The Gates Are Open", body))
}

func SendEnrollmentEmail(email, name, courseTitle string) {
	subject := "Enrolled: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have entered <strong>%s</strong>.</p>
		<div class="info-box">Complete every lesson to finish the course and earn its certificate.</div>
	`, html.EscapeString(name), html.EscapeString(courseTitle))

	go SendEmail(email, name, subject, getEmailTemplate("A New Study Begins", body))
}

func SendCertificateEmail(email, name, title, certificateNumber string) {
	subject := "Certificate issued: " + title
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>A certificate has been inscribed in your name for <strong>%s</strong>.</p>
		<div class="info-box">Certificate number: <strong>%s</strong></div>
	`, html.EscapeString(name), html.EscapeString(title), html.EscapeString(certificateNumber))

	go SendEmail(email, name, subject, getEmailTemplate("Your Work Is Recognised", body))
}

// NotifyCertificates emails the learner once per credential issued by a committed
// action and returns how many emails were queued.
func NotifyCertificates(db *gorm.DB, userID string, certs []athenaeum.Certificate) int {
	if len(certs) == 0 {
		return 0
	}
	var user models.User
	if err := db.Select("id", "name", "email").Where("id = ?", userID).First(&user).Error; err != nil {
		logger.Log.Warn("Skipping certificate email", "user_id", userID, "error", err)
		return 0
	}
	for _, cert := range certs {
		SendCertificateEmail(user.Email, user.Name, cert.Title, cert.CertificateNumber)
	}
	return len(certs)
}

// EventReminderBody renders the list of today's sacred events.
func EventReminderBody(name string, events []cosmos.SacredEvent) string {
	var items strings.Builder
	for _, event := range events {
		items.WriteString(fmt.Sprintf("<li><strong>%s</strong> (%s)<br>%s</li>",
			html.EscapeString(event.Title), FormatEventDate(event.StartsAt, event.EndsAt), html.EscapeString(event.Description)))
	}
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The heavens mark the following today:</p>
		<ul>%s</ul>
	`, html.EscapeString(name), items.String())
}

// SendEventReminderEmail is synchronous; the scheduler already runs off the request path.
func SendEventReminderEmail(email, name string, events []cosmos.SacredEvent) error {
	return SendEmail(email, name, "Today's sacred events", getEmailTemplate("Sacred Days", EventReminderBody(name, events)))
}
