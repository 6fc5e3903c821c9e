package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"cargobridge/internal/config"
)

type Service interface {
	SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error
	SendQuotationReadyEmail(ctx context.Context, toEmail, fullName, reference string) error
	SendContactAckEmail(ctx context.Context, toEmail, fullName string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var layoutTmpl = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; max-width: 560px; margin: 0 auto; padding: 24px;">
  <h2 style="color: #0f766e;">{{.Title}}</h2>
  <p>Hi {{.Name}},</p>
  <p>{{.Body}}</p>
  {{if .Link}}<p><a href="{{.Link}}" style="background: #0f766e; color: #ffffff; padding: 10px 20px; border-radius: 6px; text-decoration: none;">{{.LinkLabel}}</a></p>{{end}}
  <p style="color: #6b7280; font-size: 13px;">CargoBridge Logistics</p>
</body>
</html>`))

type mailData struct {
	Title     string
	Name      string
	Body      string
	Link      string
	LinkLabel string
}

func (s *service) sendEmail(toEmail, subject string, data mailData) error {
	var body bytes.Buffer
	if err := layoutTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("CargoBridge <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error {
	return s.sendEmail(toEmail, "Verify your email - CargoBridge", mailData{
		Title:     "Verify your email",
		Name:      fullName,
		Body:      "Thanks for signing up. Please confirm your email address to activate your account.",
		Link:      fmt.Sprintf("https://%s/verify-email?token=%s", s.config.Domain, verificationToken),
		LinkLabel: "Verify email",
	})
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	return s.sendEmail(toEmail, "Reset your password - CargoBridge", mailData{
		Title:     "Password reset",
		Name:      fullName,
		Body:      "We received a request to reset your password. The link below is valid for one hour.",
		Link:      fmt.Sprintf("https://%s/reset-password?token=%s", s.config.Domain, resetToken),
		LinkLabel: "Reset password",
	})
}

func (s *service) SendQuotationReadyEmail(ctx context.Context, toEmail, fullName, reference string) error {
	return s.sendEmail(toEmail, "Your quotation is ready - CargoBridge", mailData{
		Title:     "Quotation ready",
		Name:      fullName,
		Body:      fmt.Sprintf("Your quotation request %s has been priced. Log in to review and accept it.", reference),
		Link:      fmt.Sprintf("https://%s/login", s.config.Domain),
		LinkLabel: "View quotation",
	})
}

func (s *service) SendContactAckEmail(ctx context.Context, toEmail, fullName string) error {
	return s.sendEmail(toEmail, "We received your message - CargoBridge", mailData{
		Title: "Thanks for reaching out",
		Name:  fullName,
		Body:  "Your message has been received. Our team will get back to you within one business day.",
	})
}
