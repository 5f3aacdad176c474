package shell

import (
	"io"
	"math"
	"strconv"

	"github.com/kennygrant/sanitize"
	"github.com/olekukonko/tablewriter"
	"github.com/tryanzu/cart/modules/cart"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats an amount in minor units for the given ISO currency. Unknown
// codes fall back to USD.
func Money(minor int64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	scale, _ := currency.Standard.Rounding(unit)
	amount := float64(minor) / math.Pow10(scale)
	return printer.Sprint(currency.Symbol(unit.Amount(amount)))
}

// Render writes the cart as a table. Titles are shown as plain text.
func Render(w io.Writer, items cart.State, code string) {
	if len(items) == 0 {
		io.WriteString(w, "cart is empty\n")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Title", "Price", "Qty", "Subtotal"})
	for _, item := range items {
		table.Append([]string{
			item.ID,
			sanitize.HTML(item.Title),
			Money(item.Price, code),
			strconv.Itoa(item.Quantity),
			Money(item.Subtotal(), code),
		})
	}
	table.SetFooter([]string{"", "", "", strconv.Itoa(items.Count()), Money(items.Total(), code)})
	table.Render()
}
