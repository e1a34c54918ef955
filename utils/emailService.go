package utils

import (
	"fmt"
	"log"
	"time"
	"visadesk/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one transactional email through SendGrid. When no API
// key is configured the message is logged to the console instead so local
// environments keep working.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Printf("--- Email (console fallback) ---\nTo: %s <%s>\nSubject: %s\n", toName, toEmail, subject)
		return nil
	}

	from := mail.NewEmail("VisaDesk", config.AppConfig.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: status %d body %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}

// HTML wrapper shared by all triggers
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A2B4C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2B4C; line-height: 1.6; }
			.content h2 { color: #1A2B4C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #2E86DE; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #2E86DE; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>VISADESK</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 VisaDesk. All rights reserved.<br>
				This is not migration advice. Always confirm requirements with official sources.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to VisaDesk"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>VisaDesk</strong>! Your account has been created.</p>
		<p>Upload a visa rejection letter, offer letter or CoE from your dashboard to get your first analysis.</p>
		<a href="%s" class="btn">Open Dashboard</a>
	`, name, config.AppConfig.FrontendURL)

	go SendEmail(email, name, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Analysis finished
func SendAnalysisReadyEmail(email, name, fileName string) {
	subject := "Your document analysis is ready"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The analysis of <strong>%s</strong> has finished.</p>
		<div class="info-box">Open your dashboard to review the findings and recommended next steps.</div>
		<a href="%s" class="btn">View Analysis</a>
	`, name, fileName, config.AppConfig.FrontendURL)

	go SendEmail(email, name, subject, getEmailTemplate("Analysis Ready", body))
}

// 3. Appointment status changed (confirmed / cancelled / completed)
func SendAppointmentStatusEmail(email, name, purpose, status string, scheduledAt time.Time) {
	subject := fmt.Sprintf("Consultation %s: %s", status, purpose)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your consultation <strong>%s</strong> is now <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Scheduled for:</strong> %s
		</div>
	`, name, purpose, status, scheduledAt.Format("Mon, 02 Jan 2006 15:04 MST"))

	go SendEmail(email, name, subject, getEmailTemplate("Consultation Update", body))
}

// 4. Appointment reminder (sent by the scheduler the day before)
func SendAppointmentReminderEmail(email, name, purpose string, scheduledAt time.Time) {
	subject := "Reminder: consultation tomorrow"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming consultation:</p>
		<div class="info-box">
			<strong>%s</strong><br>
			%s
		</div>
		<p>If you can no longer attend, please cancel from your dashboard.</p>
	`, name, purpose, scheduledAt.Format("Mon, 02 Jan 2006 15:04 MST"))

	go SendEmail(email, name, subject, getEmailTemplate("Consultation Reminder", body))
}

// 5. Scholarship deadline approaching
func SendDeadlineWarningEmail(email, name, scholarship string, deadline time.Time) {
	subject := "Deadline approaching: " + scholarship
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The application deadline for <strong>%s</strong> on your watchlist is approaching:</p>
		<div class="info-box">
			<strong>Deadline:</strong> %s
		</div>
		<a href="%s" class="btn">Open Watchlist</a>
	`, name, scholarship, deadline.Format("Mon, 02 Jan 2006"), config.AppConfig.FrontendURL)

	go SendEmail(email, name, subject, getEmailTemplate("Scholarship Deadline", body))
}
