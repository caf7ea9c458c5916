package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"lms/config"
)

// SendEmail delivers an HTML email through sendgrid. A missing API key
// logs the message instead of failing the caller's request.
func SendEmail(toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendgridAPIKey == "" {
		log.Printf("Sendgrid not configured, skipping email to %s: %s", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("LMS", config.AppConfig.EmailSender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 300 {
		log.Printf("Failed to send email to %s, response code: %d", toEmail, resp.StatusCode)
		return fmt.Errorf("failed to send email, code: %d", resp.StatusCode)
	}
	return nil
}

// SendPasswordChangedEmail notifies a user that their password was reset.
func SendPasswordChangedEmail(toEmail, username string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif;">
				<p>Hi %s,</p>
				<p>The password for your account was just reset. If this was not you, contact support immediately.</p>
			</body>
		</html>`, username)

	return SendEmail(toEmail, "Your password was reset", body)
}
