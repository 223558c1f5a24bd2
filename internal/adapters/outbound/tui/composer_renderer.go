package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dibella/orderdesk/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
	inputStyle         = lipgloss.NewStyle().Foreground(fg).Underline(true)
)

// ComposerView is everything the interactive composer screen shows.
type ComposerView struct {
	Title       string
	State       string
	Order       domain.Order
	Progress    float64
	Products    []domain.Product
	Cursor      int
	Field       domain.Field
	Input       string
	Editing     bool
	Busy        bool
	Status      string
	Err         error
	ProductsErr error
}

// RenderComposer draws the composition screen: header with total and
// progress, the line items with the cursor row, the catalog and a status line.
func RenderComposer(v ComposerView) string {
	var b strings.Builder

	title := headerStyle.Render(v.Title)
	state := dimStyle.Render(v.State)
	total := moneyStyle.Render(FormatMoney(v.Order.TotalValue))
	progress := fmt.Sprintf("%s %s", progressBar(v.Progress, 30), dimStyle.Render(fmt.Sprintf("%3.0f%%", v.Progress)))
	b.WriteString(boxStyle.Render(title + "  " + state + "\n\n" + total + "\n" + progress))
	b.WriteString("\n\n")

	b.WriteString("  " + sectionHeaderStyle.Render("Line items") + "\n")
	renderLineItems(&b, v.Order.LineItems, domain.NewCatalog(v.Products), v.Cursor)

	if v.Editing {
		fmt.Fprintf(&b, "\n  %s %s %s\n",
			dimStyle.Render(fmt.Sprintf("item %d", v.Cursor+1)),
			titleStyle.Render(v.Field.String()+":"),
			inputStyle.Render(v.Input+" "),
		)
	}

	b.WriteString("\n  " + sectionHeaderStyle.Render("Products") + "\n")
	switch {
	case v.ProductsErr != nil:
		b.WriteString("  " + warnStyle.Render("catalog unavailable: ") + dimStyle.Render(v.ProductsErr.Error()) + "\n")
	case len(v.Products) == 0:
		b.WriteString("  " + dimStyle.Render("loading…") + "\n")
	default:
		for _, p := range v.Products {
			fmt.Fprintf(&b, "   %s %s %s\n",
				dimStyle.Render(padLeft(p.ID.String(), 4)),
				padRight(p.Name, 28),
				infoTagStyle.Render(FormatMoney(p.UnitPrice)),
			)
		}
	}

	b.WriteString("\n  " + separatorLine + "\n")
	switch {
	case v.Err != nil:
		b.WriteString("  " + errorTagStyle.Render("error") + " " + v.Err.Error() + "\n")
	case v.Busy:
		b.WriteString("  " + warnStyle.Render("working…") + "\n")
	case v.Status != "":
		b.WriteString("  " + passStyle.Render(v.Status) + "\n")
	}
	b.WriteString("  " + hintStyle.Render("a add · x remove · p product · n quantity · s submit · q quit") + "\n")
	return b.String()
}

// RenderPreview shows a draft that was priced but not submitted.
func RenderPreview(order domain.Order, progress float64, problem string, unknown []domain.ProductID, products []domain.Product) string {
	var b strings.Builder

	status := passStyle.Render("ready to submit")
	if problem != "" {
		status = failStyle.Render(problem)
	}
	total := moneyStyle.Render(FormatMoney(order.TotalValue))
	bar := fmt.Sprintf("%s %s", progressBar(progress, 30), dimStyle.Render(fmt.Sprintf("%3.0f%%", progress)))
	b.WriteString(boxStyle.Render(headerStyle.Render("Draft") + "\n\n" + total + "\n" + bar + "\n" + status))
	b.WriteString("\n\n")

	renderLineItems(&b, order.LineItems, domain.NewCatalog(products), -1)

	if len(unknown) > 0 {
		ids := make([]string, len(unknown))
		for i, id := range unknown {
			ids[i] = id.String()
		}
		b.WriteString("\n  " + warnStyle.Render("unknown products: "+strings.Join(ids, ", ")) + "\n")
	}
	b.WriteString("\n  " + hintStyle.Render("Nothing was sent. Run again without --dry-run to save.") + "\n")
	return b.String()
}
