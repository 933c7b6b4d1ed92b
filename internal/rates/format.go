package rates

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/j0lvera/ratebot/internal/upstream"
	"github.com/shopspring/decimal"
)

// Format renders a lookup result for the chat. A failed lookup is a single
// error line and never includes a partial rate.
func Format(r Result) string {
	code := r.Query.Code

	if r.Err != nil {
		return fmt.Sprintf("❌ Не удалось получить курс %s: %s", code, upstream.Describe(r.Err))
	}

	available := r.Available()
	if len(available) == 0 {
		return fmt.Sprintf("❌ Не удалось получить курс %s: нет данных", code)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💱 Курс %s:", code)
	for _, q := range available {
		fmt.Fprintf(&b, "\n1 %s = %s %s", code, FormatRate(q.Rate), q.Target)
	}
	for _, q := range r.Quotes {
		if !q.OK {
			fmt.Fprintf(&b, "\n⚠️ Нет данных для %s", q.Target)
		}
	}

	return b.String()
}

// FormatRate renders a rate with two decimals and comma thousands grouping.
func FormatRate(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
}
