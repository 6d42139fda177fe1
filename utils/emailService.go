package utils

import (
	"fmt"
	"log"
	"strings"

	"tms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML email through SendGrid. A missing API
// key disables delivery with a log line instead of an error so local
// setups keep working.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("Email disabled, skipping: %q to %s", subject, strings.Join(to, ","))
		return nil
	}

	from := mail.NewEmail("Training Portal", config.AppConfig.EmailSender)
	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = subject

	p := mail.NewPersonalization()
	for _, addr := range to {
		p.AddTos(mail.NewEmail("", addr))
	}
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/html", htmlBody))

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	if resp.StatusCode >= 300 {
		log.Printf("Email rejected, status %d: %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the portal chrome.
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00334D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00334D; line-height: 1.6; }
			.content h2 { color: #00334D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #2E86AB; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>TRAINING PORTAL</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Training Portal. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a new account and shows its assigned number.
func SendWelcomeEmail(email, name, numberSeries string) {
	subject := "Welcome to the Training Portal"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your account has been created successfully.</p>
		<div class="info-box">
			<strong>Your ID:</strong> %s
		</div>
		<p>Log in to browse your courses and start training.</p>
	`, name, numberSeries)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendCertificateSubmittedEmail confirms a completion submission.
func SendCertificateSubmittedEmail(email, name, courseName string) {
	subject := "Certificate Submitted: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your completion of <strong>%s</strong> has been submitted for approval.</p>
		<p>Status: <strong style="color: #FFC107;">PENDING APPROVAL</strong></p>
		<p>You will receive an email once it is approved.</p>
	`, name, courseName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Certificate Submitted", body))
}

// SendCertificateApprovedEmail notifies a trainee of an approved
// certificate with its verification link.
func SendCertificateApprovedEmail(email, name, courseName, certificateURL string) {
	subject := "Certificate Approved: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! Your certificate for <strong>%s</strong> has been APPROVED.</p>
		<div class="info-box">
			<strong>Certificate:</strong> <a href="%s">%s</a>
		</div>
		<p>You can use this link for verification purposes.</p>
	`, name, courseName, certificateURL, certificateURL)

	go SendEmail([]string{email}, subject, getEmailTemplate("Certificate Approved", body))
}

// SendPendingDigestEmail sends the authority team its daily count of
// certificates waiting for approval.
func SendPendingDigestEmail(emails []string, pendingCount int) {
	if len(emails) == 0 || pendingCount == 0 {
		return
	}
	subject := fmt.Sprintf("%d certificates awaiting approval", pendingCount)
	body := fmt.Sprintf(`
		<p>Good morning,</p>
		<p>There are <strong>%d</strong> certificates pending approval.</p>
		<p>Please review them in the authority portal.</p>
	`, pendingCount)

	go SendEmail(emails, subject, getEmailTemplate("Daily Approval Digest", body))
}
