// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/shopspring/decimal"
	"github.com/your-org/beauty-store/internal/config"
	"github.com/your-org/beauty-store/internal/domain/order"
	"github.com/your-org/beauty-store/internal/pkg/pricing"
)

// Converter turns an HTML document into a PDF.
type Converter func(html []byte) ([]byte, error)

// Service handles PDF generation
type Service struct {
	company CompanyInfo
	pricing config.PricingConfig
	tmpl    *template.Template
	convert Converter
}

// NewService creates a new PDF service backed by the wkhtmltopdf binary.
func NewService(cfg *config.Config) *Service {
	return NewServiceWithConverter(cfg, WKHTMLToPDF)
}

// NewServiceWithConverter creates a PDF service that renders with convert.
func NewServiceWithConverter(cfg *config.Config, convert Converter) *Service {
	return &Service{
		company: CompanyInfo{
			Name:    cfg.App.Name,
			Email:   cfg.External.Email.FromEmail,
			Website: cfg.External.Email.BaseURL,
		},
		pricing: cfg.Pricing,
		tmpl:    template.Must(template.New("invoice").Parse(invoiceTemplate)),
		convert: convert,
	}
}

// GenerateInvoice generates a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.RenderHTML(o)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	out, err := s.convert(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}
	return bytes.NewBuffer(out), nil
}

// RenderHTML renders the invoice document that is fed to the converter.
func (s *Service) RenderHTML(o *order.Order) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, s.invoiceData(o)); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// WKHTMLToPDF converts html with the wkhtmltopdf binary found on PATH or in
// WKHTMLTOPDF_PATH.
func WKHTMLToPDF(html []byte) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, err
	}
	return pdfg.Bytes(), nil
}

func (s *Service) invoiceData(o *order.Order) InvoiceData {
	data := InvoiceData{
		InvoiceNumber: "INV-" + o.Number(),
		InvoiceDate:   o.CreatedAt.Format("January 2, 2006"),
		Order:         o,
		Company:       s.company,
		Subtotal:      s.money(o.Subtotal, o.Currency),
		Shipping:      s.money(o.Shipping, o.Currency),
		Tax:           s.money(o.Tax, o.Currency),
		Total:         s.money(o.Total, o.Currency),
	}
	for _, item := range o.Items {
		line := InvoiceLine{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    s.money(item.Price, s.pricing.BaseCurrency),
			Total:    s.money(item.Price*float64(item.Quantity), s.pricing.BaseCurrency),
		}
		if item.Shade != nil {
			line.Shade = *item.Shade
		}
		data.Lines = append(data.Lines, line)
	}
	return data
}

func (s *Service) money(amount float64, currency string) string {
	return pricing.Format(decimal.NewFromFloat(amount), s.pricing.Locale, currency)
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string        `json:"invoice_number"`
	InvoiceDate   string        `json:"invoice_date"`
	Order         *order.Order  `json:"order"`
	Company       CompanyInfo   `json:"company"`
	Lines         []InvoiceLine `json:"lines"`
	Subtotal      string        `json:"subtotal"`
	Shipping      string        `json:"shipping"`
	Tax           string        `json:"tax"`
	Total         string        `json:"total"`
}

// InvoiceLine is one item row, priced in the base currency.
type InvoiceLine struct {
	Name     string `json:"name"`
	Shade    string `json:"shade"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Total    string `json:"total"`
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// Invoice HTML template
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #be185d; margin-bottom: 10px; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; color: #374151; }
        .items-table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 12px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; }
        .num { text-align: right; }
        .totals { float: right; width: 300px; }
        .totals td { padding: 8px; border-bottom: 1px solid #eee; }
        .total-row { font-size: 18px; font-weight: bold; }
        .status-badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 12px; text-transform: uppercase; background-color: #fef3c7; }
        .footer { margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Company.Name}}</h1>
        <p>{{.Company.Email}} &middot; {{.Company.Website}}</p>
        <div class="invoice-title">INVOICE</div>
        <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
        <p><strong>Order Date:</strong> {{.InvoiceDate}}</p>
        <p><strong>Status:</strong> <span class="status-badge">{{.Order.Status}}</span></p>
        <p><strong>Payment:</strong> {{.Order.PaymentMethod}} &middot; <strong>Currency:</strong> {{.Order.Currency}}</p>
    </div>

    <div class="section-title">Ship To:</div>
    {{with .Order.ShippingAddress}}
    <p><strong>{{.FullName}}</strong></p>
    <p>{{.Address}}</p>
    <p>{{.City}}, {{.State}} {{.ZipCode}}</p>
    <p>{{.Country}}</p>
    {{if .Phone}}<p>Phone: {{.Phone}}</p>{{end}}
    {{if .Email}}<p>Email: {{.Email}}</p>{{end}}
    {{end}}

    <table class="items-table">
        <thead>
            <tr><th>Item</th><th>Shade</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Total</th></tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr>
                <td><strong>{{.Name}}</strong></td>
                <td>{{.Shade}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{.Price}}</td>
                <td class="num">{{.Total}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr><td>Subtotal:</td><td class="num">{{.Subtotal}}</td></tr>
            <tr><td>Shipping:</td><td class="num">{{.Shipping}}</td></tr>
            <tr><td>Tax:</td><td class="num">{{.Tax}}</td></tr>
            <tr class="total-row"><td>Total:</td><td class="num">{{.Total}}</td></tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Thank you for shopping with {{.Company.Name}}!</p>
        <p>Questions about this invoice? Contact us at {{.Company.Email}}</p>
    </div>
</body>
</html>
`
