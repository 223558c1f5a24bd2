package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/dibella/orderdesk/internal/domain"
)

// ── warm bakery palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	moneyStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderOrders formats the order listing.
func RenderOrders(orders []domain.OrderSummary) string {
	if len(orders) == 0 {
		return "  " + dimStyle.Render("No orders found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Orders") + "  " + dimStyle.Render(fmt.Sprintf("(%d)", len(orders))) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for _, o := range orders {
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			titleStyle.Render(padLeft("#"+o.ID.String(), 6)),
			dimStyle.Render(padRight(formatDate(o.Date, o.RawDate), 10)),
			moneyStyle.Render(padLeft(FormatMoney(o.TotalValue), 12)),
		)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderOrder formats one order with its line items. Product names come
// from products when known.
func RenderOrder(order *domain.Order, products []domain.Product) string {
	var b strings.Builder

	title := headerStyle.Render("Order " + order.ID.String())
	subtitle := dimStyle.Render(formatDate(order.Date, ""))
	total := moneyStyle.Render(FormatMoney(order.TotalValue))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + total))
	b.WriteString("\n\n")

	renderLineItems(&b, order.LineItems, domain.NewCatalog(products), -1)
	b.WriteString("\n")
	return b.String()
}

// RenderProducts formats the product catalog.
func RenderProducts(products []domain.Product) string {
	if len(products) == 0 {
		return "  " + dimStyle.Render("No products available.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Products") + "  " + dimStyle.Render(fmt.Sprintf("(%d)", len(products))) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for _, p := range products {
		stock := passStyle.Render(fmt.Sprintf("%d in stock", p.Stock))
		if p.Stock <= 0 {
			stock = failStyle.Render("out of stock")
		}
		fmt.Fprintf(&b, "  %s  %s  %s  %s  %s\n",
			dimStyle.Render(padLeft(p.ID.String(), 4)),
			titleStyle.Render(padRight(p.Name, 28)),
			dimStyle.Render(padRight(p.Size, 4)),
			moneyStyle.Render(padLeft(FormatMoney(p.UnitPrice), 10)),
			stock,
		)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderSaved confirms a successful create or update.
func RenderSaved(id domain.OrderID, created bool) string {
	verb := "updated"
	if created {
		verb = "created"
	}
	if id == 0 {
		return "  " + passStyle.Render("✓") + " Order " + verb + ".\n"
	}
	return fmt.Sprintf("  %s Order %s %s.\n", passStyle.Render("✓"), titleStyle.Render("#"+id.String()), verb)
}

// RenderError formats an error for the terminal.
func RenderError(err error) string {
	return "  " + errorTagStyle.Render("error") + " " + dimStyle.Render(err.Error()) + "\n"
}

func renderLineItems(b *strings.Builder, items domain.LineItems, catalog domain.Catalog, cursor int) {
	if len(items) == 0 {
		b.WriteString("  " + dimStyle.Render("No line items.") + "\n")
		return
	}
	for i, item := range items {
		marker := " "
		if i == cursor {
			marker = warnStyle.Render("›")
		}

		name := faintStyle.Render(padRight("(no product)", 28))
		price := decimal.Zero
		if item.ProductID != 0 {
			if p, ok := catalog.Lookup(item.ProductID); ok {
				name = titleStyle.Render(padRight(p.Name, 28))
				price = p.UnitPrice
			} else {
				name = warnStyle.Render(padRight("product "+item.ProductID.String(), 28))
			}
		}

		icon := passStyle.Render("●")
		if !item.IsComplete() {
			icon = warnStyle.Render("○")
		}

		subtotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(b, " %s %s %s %s %s  %s\n",
			marker,
			icon,
			dimStyle.Render(padLeft(fmt.Sprintf("%d.", i+1), 3)),
			name,
			dimStyle.Render(padLeft(fmt.Sprintf("× %d", item.Quantity), 6)),
			dimStyle.Render(padLeft(FormatMoney(subtotal), 10)),
		)
	}
}

// progressBar renders a percentage bar in [0,100].
func progressBar(percent float64, width int) string {
	p := int(percent)
	filled := max(0, min(p*width/100, width))
	empty := width - filled

	color := progressColor(p)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func progressColor(percent int) lipgloss.Color {
	switch {
	case percent >= 100:
		return success
	case percent >= 60:
		return lipgloss.Color("#A3E635") // lime
	case percent >= 30:
		return warning
	default:
		return danger
	}
}

// FormatMoney renders a value with two decimal places.
func FormatMoney(d decimal.Decimal) string {
	return "$ " + d.StringFixed(2)
}

// formatDate renders dd/mm/yyyy, falling back to the raw server string.
func formatDate(t time.Time, raw string) string {
	if t.IsZero() {
		if raw != "" {
			return raw
		}
		return "-"
	}
	return t.Format("02/01/2006")
}

func padRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func padLeft(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}
