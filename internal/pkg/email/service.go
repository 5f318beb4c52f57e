// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/config"
	"github.com/your-org/beauty-store/internal/domain/order"
	"github.com/your-org/beauty-store/internal/pkg/pricing"
)

// Providers understood by SendEmail.
const (
	ProviderLog  = "log"
	ProviderSMTP = "smtp"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles all email operations
type EmailService struct {
	config    config.EmailConfig
	siteName  string
	pricing   config.PricingConfig
	templates map[string]*template.Template
	logger    logrus.FieldLogger
	sendMail  sendMailFunc
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config, logger logrus.FieldLogger) *EmailService {
	return &EmailService{
		config:   cfg.External.Email,
		siteName: cfg.App.Name,
		pricing:  cfg.Pricing,
		templates: map[string]*template.Template{
			string(EmailTypeOrderConfirmation): template.Must(template.New("order_confirmation").Parse(orderConfirmationTemplate)),
		},
		logger:   logger,
		sendMail: smtp.SendMail,
	}
}

// SendEmail sends an email using the configured provider
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch s.config.Provider {
	case ProviderLog, "":
		s.logger.WithFields(logrus.Fields{
			"to":      strings.Join(email.To, ", "),
			"subject": email.Subject,
			"type":    email.Type,
		}).Info("Email queued (log provider)")
		return nil
	case ProviderSMTP:
		return s.sendSMTPEmail(email)
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.Provider)
	}
}

// SendOrderConfirmation mails the order summary to the shipping address.
func (s *EmailService) SendOrderConfirmation(ctx context.Context, o *order.Order) error {
	if o.ShippingAddress.Email == "" {
		return nil
	}

	data := s.orderConfirmationData(o)
	htmlContent, err := s.renderTemplate(string(EmailTypeOrderConfirmation), data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	email := &Email{
		To:          []string{o.ShippingAddress.Email},
		Subject:     fmt.Sprintf("Order Confirmation - %s", data.OrderNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
		Data: map[string]interface{}{
			"order_id":    o.ID,
			"order_total": data.OrderTotal,
		},
	}

	return s.SendEmail(ctx, email)
}

func (s *EmailService) orderConfirmationData(o *order.Order) OrderConfirmationData {
	addr := o.ShippingAddress
	data := OrderConfirmationData{
		EmailTemplateData: GetBaseTemplateData(s.siteName, s.config.BaseURL, addr.FullName(), addr.Email),
		OrderNumber:       "#" + o.Number(),
		OrderDate:         o.CreatedAt.Format("January 2, 2006"),
		OrderURL:          fmt.Sprintf("%s/orders/%s", s.config.BaseURL, o.ID),
		Subtotal:          s.money(o.Subtotal, o.Currency),
		Shipping:          s.money(o.Shipping, o.Currency),
		Tax:               s.money(o.Tax, o.Currency),
		OrderTotal:        s.money(o.Total, o.Currency),
		PaymentMethod:     o.PaymentMethod,
		ShippingAddress: Address{
			Name:    addr.FullName(),
			Line:    addr.Address,
			City:    addr.City,
			State:   addr.State,
			ZipCode: addr.ZipCode,
			Country: addr.Country,
			Phone:   addr.Phone,
		},
	}

	for _, item := range o.Items {
		line := OrderItem{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    s.money(item.Price, s.pricing.BaseCurrency),
			Total:    s.money(item.Price*float64(item.Quantity), s.pricing.BaseCurrency),
		}
		if item.Shade != nil {
			line.Shade = *item.Shade
		}
		data.Items = append(data.Items, line)
	}
	return data
}

func (s *EmailService) money(amount float64, currency string) string {
	return pricing.Format(decimal.NewFromFloat(amount), s.pricing.Locale, currency)
}

// renderTemplate renders an email template with data
func (s *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

const orderConfirmationTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}} order {{.OrderNumber}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #fdf2f8;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #be185d;">{{.SiteName}}</h1>
        <p>Hello {{.UserName}},</p>
        <p>Thank you for your order {{.OrderNumber}} placed on {{.OrderDate}}.</p>
        <table style="width: 100%; border-collapse: collapse;">
            <tr><th align="left">Item</th><th align="right">Qty</th><th align="right">Price</th><th align="right">Total</th></tr>
            {{range .Items}}
            <tr>
                <td>{{.Name}}{{if .Shade}} ({{.Shade}}){{end}}</td>
                <td align="right">{{.Quantity}}</td>
                <td align="right">{{.Price}}</td>
                <td align="right">{{.Total}}</td>
            </tr>
            {{end}}
        </table>
        <p>Subtotal: {{.Subtotal}}<br>Shipping: {{.Shipping}}<br>Tax: {{.Tax}}<br><strong>Total: {{.OrderTotal}}</strong></p>
        <p>Payment: {{.PaymentMethod}}</p>
        <p>Shipping to:<br>{{.ShippingAddress.Name}}<br>{{.ShippingAddress.Line}}<br>{{.ShippingAddress.City}}, {{.ShippingAddress.State}} {{.ShippingAddress.ZipCode}}<br>{{.ShippingAddress.Country}}</p>
        <p><a href="{{.OrderURL}}">View your order</a></p>
        <hr>
        <p style="font-size: 12px; color: #666;">&copy; {{.Year}} {{.SiteName}}. Questions? {{.SupportURL}}</p>
    </div>
</body>
</html>`
