package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"storefront/application/notification"
	"storefront/config"
	"storefront/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailNotifier sends HTML mails over SMTP. Status updates carry the receipt
// PDF when the renderer succeeds; a failed render only drops the attachment.
type MailNotifier struct {
	sender    mailSender
	from      string
	storeName string
	renderer  notification.ReceiptRenderer
	now       func() time.Time
}

func NewMailNotifier(cfg config.MailConfig, storeName string, renderer notification.ReceiptRenderer) *MailNotifier {
	return &MailNotifier{
		sender:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:      cfg.From,
		storeName: storeName,
		renderer:  renderer,
		now:       time.Now,
	}
}

var statusMessages = map[string]string{
	"processing": "Your order is now being processed.",
	"shipped":    "Your order has been shipped and is on its way!",
	"delivered":  "Your order has been delivered successfully.",
	"cancelled":  "Your order has been cancelled.",
}

type mailData struct {
	Store         string
	Order         notification.OrderView
	Status        string
	StatusMessage string
	Date          string
	Attached      bool
	Year          int
}

var mailTemplates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}).Parse(`
{{define "lines"}}
<table style="width:100%;border-collapse:collapse">
  <tr><th style="text-align:left">Product</th><th>Qty</th><th style="text-align:right">Price</th><th style="text-align:right">Total</th></tr>
  {{range .Order.Lines}}<tr>
    <td style="padding:10px;border-bottom:1px solid #eee">{{.Name}}</td>
    <td style="padding:10px;border-bottom:1px solid #eee;text-align:center">{{.Quantity}}</td>
    <td style="padding:10px;border-bottom:1px solid #eee;text-align:right">&#8369;{{.Price}}</td>
    <td style="padding:10px;border-bottom:1px solid #eee;text-align:right">&#8369;{{.Total}}</td>
  </tr>{{end}}
</table>
<p>Subtotal: &#8369;{{.Order.Subtotal}}</p>
<p>Tax (8%): &#8369;{{.Order.Tax}}</p>
<p><strong>Total: &#8369;{{.Order.Total}}</strong></p>
{{end}}

{{define "confirmation"}}
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <div style="background-color:#4CAF50;color:white;padding:20px;text-align:center">
    <h1>Order Confirmation</h1><p>Thank you for your order!</p>
  </div>
  <div style="padding:20px">
    <h2>Order Details</h2>
    <p><strong>Order Number:</strong> {{.Order.OrderNumber}}</p>
    <p><strong>Order Date:</strong> {{.Date}}</p>
    <p><strong>Status:</strong> {{title .Order.Status}}</p>
    <h3>Customer Information</h3>
    <p><strong>Name:</strong> {{.Order.Customer.Name}}</p>
    <p><strong>Email:</strong> {{.Order.Customer.Email}}</p>
    {{with .Order.Customer.Phone}}<p><strong>Phone:</strong> {{.}}</p>{{end}}
    {{with .Order.Customer.Address}}<p><strong>Address:</strong> {{.}}</p>{{end}}
    {{template "lines" .}}
    <p>Thank you for shopping with {{.Store}}!</p>
  </div>
</div>
{{end}}

{{define "status"}}
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <div style="background-color:#2196F3;color:white;padding:20px;text-align:center"><h1>Order Status Update</h1></div>
  <div style="padding:20px">
    <h2>Order {{.Order.OrderNumber}}</h2>
    <p><strong>Status:</strong> {{title .Status}}</p>
    <p><strong>Updated Date:</strong> {{.Date}}</p>
    <p>{{.StatusMessage}}</p>
    {{template "lines" .}}
    <p>Thank you for choosing {{.Store}}!</p>
    {{if .Attached}}<p><strong>Receipt attached as PDF</strong></p>{{end}}
  </div>
  <div style="background-color:#f8f9fa;padding:20px;text-align:center;color:#666">&copy; {{.Year}} {{.Store}}. All rights reserved.</div>
</div>
{{end}}
`))

func (n *MailNotifier) SendOrderConfirmation(ctx context.Context, view notification.OrderView, email string) error {
	body, err := n.render("confirmation", mailData{
		Store: n.storeName,
		Order: view,
		Date:  view.CreatedAt.Format("January 2, 2006"),
		Year:  n.now().Year(),
	})
	if err != nil {
		return err
	}
	m := n.message(email, "Order Confirmation - "+view.OrderNumber, body)
	return n.send(ctx, m)
}

func (n *MailNotifier) SendOrderStatusUpdate(ctx context.Context, view notification.OrderView, status, email string) error {
	var receipt []byte
	if n.renderer != nil {
		pdf, err := n.renderer.RenderReceipt(view)
		if err != nil {
			logger.FromContext(ctx).Warn("Receipt attachment skipped",
				zap.String("order_number", view.OrderNumber),
				zap.Error(err))
		} else {
			receipt = pdf
		}
	}

	message, ok := statusMessages[status]
	if !ok {
		message = "Your order status has been updated."
	}
	body, err := n.render("status", mailData{
		Store:         n.storeName,
		Order:         view,
		Status:        status,
		StatusMessage: message,
		Date:          n.now().Format("January 2, 2006"),
		Attached:      receipt != nil,
		Year:          n.now().Year(),
	})
	if err != nil {
		return err
	}

	m := n.message(email, "Order Status Update - "+view.OrderNumber, body)
	if receipt != nil {
		m.Attach("Receipt-"+view.OrderNumber+".pdf",
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(receipt)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
		)
	}
	return n.send(ctx, m)
}

func (n *MailNotifier) render(name string, data mailData) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s mail: %w", name, err)
	}
	return buf.String(), nil
}

func (n *MailNotifier) message(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.from, n.storeName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}

// send gomail has no context support; a cancelled ctx only prevents the dial
func (n *MailNotifier) send(ctx context.Context, m *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

var _ notification.Notifier = (*MailNotifier)(nil)
