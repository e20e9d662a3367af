package services

import (
	"expedientes_app_go/config"
	"fmt"
	"log"
	"strings"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	// Validate configuration
	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	// Build the from address
	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}

	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode - not actually sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// SendEmailAsync sends an email asynchronously using a goroutine
// This is the recommended method for sending emails in handlers to avoid blocking HTTP responses
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Create a copy of the email to avoid race conditions
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// BuildWelcomeEmail creates a welcome email for new users
func BuildWelcomeEmail(userEmail, username string) *Email {
	return &Email{
		To:      []string{userEmail},
		Subject: "Tu cuenta de Expedientes JLCA",
		TextBody: fmt.Sprintf(
			"Hola %s,\n\nTu cuenta en el sistema de expedientes fue creada. Ya podés iniciar sesión con tu usuario.\n\nEquipo del estudio",
			username,
		),
	}
}

// BuildAlertaEmail creates a notification email for a newly created high
// priority alert
func BuildAlertaEmail(to, titulo, fechaVencimiento, codigoInterno string) *Email {
	return &Email{
		To:      []string{to},
		Subject: fmt.Sprintf("Alerta de vencimiento: %s", titulo),
		TextBody: fmt.Sprintf(
			"Se cargó una alerta de prioridad alta en el expediente %s.\n\nTítulo: %s\nVencimiento: %s",
			codigoInterno, titulo, fechaVencimiento,
		),
	}
}
