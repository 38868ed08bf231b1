package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ContactInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=100"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

type ContactService struct {
	mailer    MailSender
	recipient string
	validator *validator.Validate
}

func NewContactService(mailer MailSender, recipient string, v *validator.Validate) *ContactService {
	return &ContactService{mailer: mailer, recipient: recipient, validator: v}
}

func (s *ContactService) Send(ctx context.Context, in ContactInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if err := failed(validationFields(s.validator, in)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := fmt.Sprintf("[Contact] %s", in.Subject)
	if err := s.mailer.SendHTMLEmail(s.recipient, subject, BuildContactEmailBody(in)); err != nil {
		log.Printf("ContactService.Send: message from %s not delivered: %v", in.Email, err)
		return err
	}
	return nil
}

// BuildContactEmailBody escapes every user supplied value.
func BuildContactEmailBody(in ContactInput) string {
	message := strings.ReplaceAll(html.EscapeString(in.Message), "\n", "<br>")
	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <head>
            <meta charset="utf-8">
            <title>New contact message</title>
            <style>
                body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
                .container { max-width: 600px; margin: 20px auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
                .header { background-color: #f8f8f8; padding: 10px 0; text-align: center; border-bottom: 1px solid #ddd; }
                .content { padding: 20px; }
            </style>
        </head>
        <body>
            <div class="container">
                <div class="header">
                    <h2>%s</h2>
                </div>
                <div class="content">
                    <p><strong>From:</strong> %s &lt;%s&gt;</p>
                    <p>%s</p>
                </div>
            </div>
        </body>
        </html>
    `, html.EscapeString(in.Subject), html.EscapeString(in.Name), html.EscapeString(in.Email), message)
}
