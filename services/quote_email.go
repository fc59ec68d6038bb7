package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var ErrMissingRequiredFields = errors.New("missing required fields")

// RenderedEmail is what goes to the mail transport.
type RenderedEmail struct {
	Kind    string
	Subject string
	HTML    string
	Text    string
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// formatCurrency renders whole dollars with thousands separators: 6000 -> "$6,000".
func formatCurrency(d decimal.Decimal) string {
	return "$" + humanize.Comma(d.Round(0).IntPart())
}

// QuoteKind tells which layout a request gets.
func QuoteKind(req *models.QuoteRequest) string {
	switch {
	case req.HasCart():
		return models.QuoteKindCart
	case req.IsConsultation:
		return models.QuoteKindConsultation
	default:
		return models.QuoteKindInquiry
	}
}

// RenderQuoteEmail builds the owner notification for a lead. Absent optional fields are skipped;
// every user-supplied value is escaped in the HTML body.
func RenderQuoteEmail(req *models.QuoteRequest) (RenderedEmail, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return RenderedEmail{}, ErrMissingRequiredFields
	}

	out := RenderedEmail{
		Kind:    QuoteKind(req),
		Subject: req.Subject,
		Text:    buildTextEmail(req),
	}

	switch out.Kind {
	case models.QuoteKindCart:
		summary := models.CartSummary{}
		if req.CartSummary != nil {
			summary = *req.CartSummary
		}
		out.HTML = buildCartQuoteHTML(req, summary)
		out.Subject = fmt.Sprintf("🔥 HIGH-VALUE LEAD: Quote Request - %s - %s", formatCurrency(summary.Total), req.Name)
	case models.QuoteKindConsultation:
		out.HTML = buildConsultationHTML(req)
	default:
		out.HTML = buildInquiryHTML(req)
	}

	return out, nil
}

func buildTextEmail(req *models.QuoteRequest) string {
	lines := []string{
		"Name: " + req.Name,
		"Email: " + req.Email,
	}
	optional := []struct{ label, value string }{
		{"Phone", req.Phone},
		{"Postal Code", req.PostalCode},
		{"Province", req.Province},
		{"Address", req.Address},
		{"City", req.City},
		{"Message", req.Message},
	}
	for _, f := range optional {
		if f.value != "" {
			lines = append(lines, f.label+": "+f.value)
		}
	}
	return strings.Join(lines, "\n")
}

// ═══════════════════════════════════════════════════════════
// Cart quote
// ═══════════════════════════════════════════════════════════

const (
	detailRow   = `<tr><td style="padding: 4px 8px; color: #666;">%s:</td><td style="padding: 4px 8px;">%s</td></tr>`
	customerRow = `<tr><td style="padding: 8px 0; color: #666; width: 120px;"><strong>%s:</strong></td><td style="padding: 8px 0;">%s</td></tr>`
	summaryRow  = `<tr><td style="padding: 8px 0; color: #666;">%s:</td><td style="padding: 8px 0; text-align: right;">%s</td></tr>`
	sectionH2   = `<h2 style="color: #4E7302; margin: 0 0 15px 0; font-size: 20px; border-bottom: 2px solid #4E7302; padding-bottom: 10px;">%s</h2>`
)

func pricedList(lines []models.PricedLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%s (+%s)", escapeHTML(l.Name), formatCurrency(l.Price)))
	}
	return strings.Join(parts, ", ")
}

func configurationRows(cfg *models.CartConfiguration) []string {
	var rows []string

	if cfg.Size != nil {
		label := cfg.Size.Label
		if label == "" {
			label = cfg.Size.Key
		}
		rows = append(rows, fmt.Sprintf(detailRow, "Size", escapeHTML(label)))
	}
	if cfg.WoodType != nil {
		rows = append(rows, fmt.Sprintf(detailRow, "Wood Type", escapeHTML(cfg.WoodType.Name)))
	}
	if cfg.Stove != nil {
		stove := escapeHTML(cfg.Stove.Name)
		if cfg.Stove.Wifi {
			stove += " (WiFi)"
		}
		rows = append(rows, fmt.Sprintf(detailRow, "Heater", stove))
	}
	if cfg.Installation != nil {
		rows = append(rows, fmt.Sprintf(detailRow, "Installation", escapeHTML(cfg.Installation.Name)))
	}
	if cfg.Delivery != nil {
		text := "Included"
		if !cfg.Delivery.Included {
			text = formatCurrency(cfg.Delivery.Cost)
		}
		rows = append(rows, fmt.Sprintf(detailRow, "Delivery", text))
	}
	if len(cfg.HeaterOptions) > 0 {
		rows = append(rows, fmt.Sprintf(detailRow, "Heater Options", pricedList(cfg.HeaterOptions)))
	}
	if len(cfg.Upgrades) > 0 {
		rows = append(rows, fmt.Sprintf(detailRow, "Add-ons", pricedList(cfg.Upgrades)))
	}
	return rows
}

// legacyOptionRows renders the older {"key": {"type", "price"}} shape, keys sorted.
func legacyOptionRows(options map[string]models.CartItemOption) []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]string, 0, len(keys))
	for _, k := range keys {
		opt := options[k]
		value := escapeHTML(opt.Type)
		if opt.Price.IsPositive() {
			value += fmt.Sprintf(" (+%s)", formatCurrency(opt.Price))
		}
		rows = append(rows, fmt.Sprintf(
			`<tr><td style="padding: 4px 8px; color: #666; text-transform: capitalize;">%s:</td><td style="padding: 4px 8px;">%s</td></tr>`,
			escapeHTML(k), value))
	}
	return rows
}

func buildCartItemHTML(item models.CartItem) string {
	var rows []string
	switch {
	case item.Configuration != nil:
		rows = configurationRows(item.Configuration)
	case len(item.SelectedOptions) > 0:
		rows = legacyOptionRows(item.SelectedOptions)
	}

	details := ""
	if len(rows) > 0 {
		details = `<table style="width: 100%; margin-top: 10px;">` + strings.Join(rows, "") + `</table>`
	}

	image := ""
	if item.Image != "" {
		image = fmt.Sprintf(`<img src="%s" alt="%s" style="width: 100px; height: 100px; object-fit: cover; border-radius: 8px;">`,
			escapeHTML(item.Image), escapeHTML(item.Name))
	}

	return fmt.Sprintf(`
    <div style="background-color: #fff; border: 1px solid #e0e0e0; border-radius: 8px; padding: 20px; margin-bottom: 15px;">
      <div style="display: flex; align-items: flex-start; gap: 15px;">
        %s
        <div style="flex: 1;">
          <h3 style="margin: 0 0 5px 0; color: #333; font-size: 18px;">%s</h3>
          <p style="margin: 0; color: #666;">Quantity: %d</p>
          <p style="margin: 5px 0 0 0; color: #4E7302; font-weight: bold; font-size: 18px;">%s</p>
        </div>
      </div>
      %s
    </div>
  `, image, escapeHTML(item.Name), item.Qty, formatCurrency(item.LineTotal()), details)
}

func buildCartQuoteHTML(req *models.QuoteRequest, summary models.CartSummary) string {
	var items strings.Builder
	for _, item := range req.CartItems {
		items.WriteString(buildCartItemHTML(item))
	}

	var customer strings.Builder
	customer.WriteString(fmt.Sprintf(customerRow, "Name", escapeHTML(req.Name)))
	customer.WriteString(fmt.Sprintf(customerRow, "Email",
		fmt.Sprintf(`<a href="mailto:%s" style="color: #4E7302;">%s</a>`, escapeHTML(req.Email), escapeHTML(req.Email))))
	if req.Phone != "" {
		customer.WriteString(fmt.Sprintf(customerRow, "Phone",
			fmt.Sprintf(`<a href="tel:%s" style="color: #4E7302;">%s</a>`, escapeHTML(req.Phone), escapeHTML(req.Phone))))
	}
	for _, f := range []struct{ label, value string }{
		{"Province", req.Province},
		{"Address", req.Address},
		{"City", req.City},
		{"Postal Code", req.PostalCode},
	} {
		if f.value != "" {
			customer.WriteString(fmt.Sprintf(customerRow, f.label, escapeHTML(f.value)))
		}
	}

	notes := ""
	if req.Message != "" {
		notes = fmt.Sprintf(`
        <div style="margin-top: 15px; padding: 15px; background-color: #f9f9f9; border-radius: 5px;">
          <strong style="color: #666;">Additional Notes:</strong>
          <p style="margin: 10px 0 0 0; white-space: pre-wrap;">%s</p>
        </div>`, escapeHTML(req.Message))
	}

	var totals strings.Builder
	totals.WriteString(fmt.Sprintf(summaryRow, "Subtotal", formatCurrency(summary.Subtotal)))
	totals.WriteString(fmt.Sprintf(summaryRow, "Est. Shipping", formatCurrency(summary.Shipping)))
	totals.WriteString(fmt.Sprintf(summaryRow, "Tax", formatCurrency(summary.Tax)))
	totals.WriteString(fmt.Sprintf(
		`<tr style="border-top: 2px solid #4E7302;"><td style="padding: 12px 0; font-weight: bold; font-size: 18px;">Total:</td><td style="padding: 12px 0; text-align: right; font-weight: bold; font-size: 18px; color: #4E7302;">%s</td></tr>`,
		formatCurrency(summary.Total)))

	return fmt.Sprintf(`
    <div style="font-family: 'Segoe UI', Arial, sans-serif; max-width: 700px; margin: 0 auto; background-color: #f5f5f5; padding: 20px;">
      <!-- Header -->
      <div style="background-color: #4E7302; color: white; padding: 30px; text-align: center; border-radius: 8px 8px 0 0;">
        <h1 style="margin: 0; font-size: 28px; font-weight: 600;">New Quote Request</h1>
        <p style="margin: 10px 0 0 0; opacity: 0.9;">High-Value Lead from Pacific Tide Saunas</p>
      </div>

      <!-- Customer Info -->
      <div style="background-color: #fff; padding: 25px; border-left: 1px solid #e0e0e0; border-right: 1px solid #e0e0e0;">
        %s
        <table style="width: 100%%;">%s</table>
        %s
      </div>

      <!-- Cart Items -->
      <div style="background-color: #f9f9f9; padding: 25px; border-left: 1px solid #e0e0e0; border-right: 1px solid #e0e0e0;">
        %s
        %s
      </div>

      <!-- Summary -->
      <div style="background-color: #fff; padding: 25px; border-left: 1px solid #e0e0e0; border-right: 1px solid #e0e0e0; border-radius: 0 0 8px 8px;">
        %s
        <table style="width: 100%%; max-width: 300px; margin-left: auto;">%s</table>
      </div>

      <!-- Footer -->
      <div style="text-align: center; padding: 20px; color: #666; font-size: 12px;">
        <p style="margin: 0;">This quote request was submitted via pacifictidesaunas.com</p>
        <p style="margin: 5px 0 0 0;">Please respond promptly to this high-value lead.</p>
      </div>
    </div>
  `,
		fmt.Sprintf(sectionH2, "Customer Information"), customer.String(), notes,
		fmt.Sprintf(sectionH2, fmt.Sprintf("Requested Items (%d)", len(req.CartItems))), items.String(),
		fmt.Sprintf(sectionH2, "Quote Summary"), totals.String(),
	)
}

// ═══════════════════════════════════════════════════════════
// Consultation and general inquiry
// ═══════════════════════════════════════════════════════════

const (
	infoBlock = `
          <div style="background-color: #f9f9f9; padding: 15px; margin: 15px 0; border-radius: 5px;">
            <h3 style="color: #444; margin-top: 0;">%s</h3>
            %s
          </div>`
	infoLine = `<p><strong>%s:</strong> %s</p>`
)

// formatPreferredDate renders a submitted date as "Monday, January 2, 2006"; unparseable input is
// returned unchanged.
func formatPreferredDate(v string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05.000Z07:00"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("Monday, January 2, 2006")
		}
	}
	return v
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func buildConsultationHTML(req *models.QuoteRequest) string {
	contact := fmt.Sprintf(infoLine, "Name", escapeHTML(req.Name)) +
		fmt.Sprintf(infoLine, "Email", escapeHTML(req.Email)) +
		fmt.Sprintf(infoLine, "Phone", escapeHTML(orDefault(req.Phone, "Not provided")))
	if req.ContactMethod != "" {
		contact += fmt.Sprintf(infoLine, "Preferred Contact Method", escapeHTML(req.ContactMethod))
	}

	var details strings.Builder
	for _, f := range []struct{ label, value string }{
		{"Preferred Date", formatPreferredDate(req.PreferredDate)},
		{"Preferred Time", req.PreferredTime},
		{"Sauna Type Interest", req.SaunaType},
		{"Budget Range", req.BudgetRange},
	} {
		if f.value != "" {
			details.WriteString(fmt.Sprintf(infoLine, f.label, escapeHTML(f.value)))
		}
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf(infoBlock, "Contact Information", contact))
	if details.Len() > 0 {
		body.WriteString(fmt.Sprintf(infoBlock, "Consultation Details", details.String()))
	}
	body.WriteString(fmt.Sprintf(infoBlock, "Additional Information",
		fmt.Sprintf(`<p style="white-space: pre-wrap;">%s</p>`, escapeHTML(req.Message))))

	return wrapSimpleLayout("New Consultation Request", body.String())
}

func buildInquiryHTML(req *models.QuoteRequest) string {
	var contact strings.Builder
	contact.WriteString(fmt.Sprintf(infoLine, "Name", escapeHTML(req.Name)))
	contact.WriteString(fmt.Sprintf(infoLine, "Email", escapeHTML(req.Email)))
	for _, f := range []struct{ label, value string }{
		{"Phone", req.Phone},
		{"Postal Code", req.PostalCode},
		{"Province", req.Province},
		{"Address", req.Address},
		{"City", req.City},
	} {
		if f.value != "" {
			contact.WriteString(fmt.Sprintf(infoLine, f.label, escapeHTML(f.value)))
		}
	}

	body := fmt.Sprintf(infoBlock, "Contact Information", contact.String()) +
		fmt.Sprintf(infoBlock, "Message", fmt.Sprintf(`<p style="white-space: pre-wrap;">%s</p>`, escapeHTML(req.Message)))

	return wrapSimpleLayout("New General Inquiry", body)
}

func wrapSimpleLayout(title, body string) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2 style="color: #333; border-bottom: 2px solid #f0f0f0; padding-bottom: 10px;">%s</h2>
          %s
        </div>
      `, title, body)
}
