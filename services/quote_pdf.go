package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/pricing"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// QuotePDFFilename names the attachment for a quote generated at t.
func QuotePDFFilename(t time.Time) string {
	return fmt.Sprintf("quote-%s.pdf", t.UTC().Format("20060102-150405"))
}

// configurationLines flattens a cart item's configuration into "Label: value" lines.
func configurationLines(item models.CartItem) []string {
	var lines []string
	if cfg := item.Configuration; cfg != nil {
		if cfg.Size != nil {
			lines = append(lines, "Size: "+orDefault(cfg.Size.Label, cfg.Size.Key))
		}
		if cfg.WoodType != nil {
			lines = append(lines, "Wood Type: "+cfg.WoodType.Name)
		}
		if cfg.Stove != nil {
			lines = append(lines, "Heater: "+cfg.Stove.Name)
		}
		for _, o := range cfg.HeaterOptions {
			lines = append(lines, fmt.Sprintf("  %s (+%s)", o.Name, formatCurrency(o.Price)))
		}
		if cfg.Installation != nil {
			lines = append(lines, "Installation: "+cfg.Installation.Name)
		}
		if cfg.Delivery != nil && !cfg.Delivery.Included {
			lines = append(lines, "Delivery: "+formatCurrency(cfg.Delivery.Cost))
		}
		for _, u := range cfg.Upgrades {
			lines = append(lines, fmt.Sprintf("Add-on: %s (+%s)", u.Name, formatCurrency(u.Price)))
		}
		return lines
	}
	return sortedLegacyOptions(item.SelectedOptions)
}

func sortedLegacyOptions(options map[string]models.CartItemOption) []string {
	if len(options) == 0 {
		return nil
	}
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		line := fmt.Sprintf("%s: %s", pricing.HumanizeKey(k), options[k].Type)
		if options[k].Price.IsPositive() {
			line += fmt.Sprintf(" (+%s)", formatCurrency(options[k].Price))
		}
		out = append(out, line)
	}
	return out
}

// GenerateQuotePDF renders a printable copy of a cart quote.
func GenerateQuotePDF(req *models.QuoteRequest, issuedAt time.Time) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	darkGray := color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray := color.Color{Red: 121, Green: 119, Blue: 109}
	brand := color.Color{Red: 78, Green: 115, Blue: 2}

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("QUOTE REQUEST", props.Text{
				Size:  24,
				Style: consts.Bold,
				Color: brand,
			})
		})
	})

	m.Row(6, func() {
		m.Col(6, func() {
			m.Text("PACIFIC TIDE SAUNAS", props.Text{
				Size:  12,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(6, func() {
			m.Text(issuedAt.Format("Jan 02, 2006"), props.Text{
				Size:  9,
				Color: mediumGray,
				Align: consts.Right,
			})
		})
	})

	m.Row(8, func() {})

	customer := []string{req.Name, req.Email, req.Phone, req.Address, strings.TrimSpace(strings.Join(
		[]string{req.City, req.Province, req.PostalCode}, " "))}
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("CUSTOMER", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})
	for _, line := range customer {
		if strings.TrimSpace(line) == "" {
			continue
		}
		line := line
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text(line, props.Text{
					Size:  9,
					Color: mediumGray,
				})
			})
		})
	}

	m.Row(8, func() {})

	m.Row(6, func() {
		m.Col(8, func() {
			m.Text("Item", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(2, func() {
			m.Text("Qty", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
				Align: consts.Right,
			})
		})
		m.Col(2, func() {
			m.Text("Total", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
				Align: consts.Right,
			})
		})
	})

	for _, item := range req.CartItems {
		item := item
		m.Row(6, func() {
			m.Col(8, func() {
				m.Text(item.Name, props.Text{
					Size:  10,
					Style: consts.Bold,
					Color: darkGray,
				})
			})
			m.Col(2, func() {
				m.Text(fmt.Sprintf("%d", item.Qty), props.Text{
					Size:  9,
					Color: darkGray,
					Align: consts.Right,
				})
			})
			m.Col(2, func() {
				m.Text(formatCurrency(item.LineTotal()), props.Text{
					Size:  9,
					Color: darkGray,
					Align: consts.Right,
				})
			})
		})
		for _, line := range configurationLines(item) {
			line := line
			m.Row(5, func() {
				m.Col(12, func() {
					m.Text(line, props.Text{
						Size:  8,
						Color: mediumGray,
						Left:  4,
					})
				})
			})
		}
	}

	m.Row(8, func() {})

	summary := models.CartSummary{}
	if req.CartSummary != nil {
		summary = *req.CartSummary
	}
	for _, row := range []struct {
		label string
		value string
		bold  bool
	}{
		{"Subtotal", formatCurrency(summary.Subtotal), false},
		{"Est. Shipping", formatCurrency(summary.Shipping), false},
		{"Tax", formatCurrency(summary.Tax), false},
		{"Total", formatCurrency(summary.Total), true},
	} {
		row := row
		size, style := 9.0, consts.Normal
		if row.bold {
			size, style = 12, consts.Bold
		}
		m.Row(6, func() {
			m.Col(8, func() {})
			m.Col(2, func() {
				m.Text(row.label, props.Text{
					Size:  size,
					Style: style,
					Color: mediumGray,
					Align: consts.Right,
				})
			})
			m.Col(2, func() {
				m.Text(row.value, props.Text{
					Size:  size,
					Style: style,
					Color: darkGray,
					Align: consts.Right,
				})
			})
		})
	}

	m.Row(12, func() {})
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("Prices are estimates and exclude applicable taxes until confirmed by our team.", props.Text{
				Size:  8,
				Color: mediumGray,
			})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}
	return buf.Bytes(), nil
}
