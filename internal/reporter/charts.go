package reporter

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"finance-analyzer/pkg/errors"

	"github.com/shopspring/decimal"
)

// MonthPoint is one month's expense total for the trend chart.
type MonthPoint struct {
	Month    string
	Expenses decimal.Decimal
}

func svgHeader(width, height int) string {
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height,
	)
}

func (g *Generator) writeSVG(name, content string) error {
	if err := os.WriteFile(g.path(name), []byte(content), 0644); err != nil {
		return errors.FileError(errors.CodeFilePermission, g.path(name), err)
	}
	g.logger.WithField("file", name).Debug("Wrote chart")
	return nil
}

// WriteSpendingTrendSVG renders monthly expense totals as a polyline with
// point markers and month labels along the x axis.
func (g *Generator) WriteSpendingTrendSVG(series []MonthPoint) error {
	const (
		width     = 900
		height    = 360
		padLeft   = 60
		padRight  = 20
		padTop    = 20
		padBottom = 60
	)
	chartW := float64(width - padLeft - padRight)
	chartH := float64(height - padTop - padBottom)

	if len(series) == 0 {
		return g.writeSVG(TrendChartFile, svgHeader(width, height)+"<text x='20' y='40'>No data</text></svg>")
	}

	maxV := 0.0
	for _, point := range series {
		if v := point.Expenses.InexactFloat64(); v > maxV {
			maxV = v
		}
	}
	if maxV == 0 {
		maxV = 1.0
	}

	span := float64(len(series) - 1)
	if span < 1 {
		span = 1
	}

	var points []string
	var circles strings.Builder
	var labels strings.Builder
	for i, point := range series {
		x := float64(padLeft) + (float64(i)/span)*chartW
		y := float64(padTop) + chartH - (point.Expenses.InexactFloat64()/maxV)*chartH
		points = append(points, fmt.Sprintf("%.1f,%.1f", x, y))
		fmt.Fprintf(&circles, "<circle cx='%.1f' cy='%.1f' r='4' fill='#0b7285'/>", x, y)
		fmt.Fprintf(&labels, "<text x='%.1f' y='%d' font-size='11' text-anchor='middle'>%s</text>",
			x, height-20, point.Month)
	}

	var svg strings.Builder
	svg.WriteString(svgHeader(width, height))
	svg.WriteString("<rect x='0' y='0' width='100%' height='100%' fill='#f8f9fa'/>")
	fmt.Fprintf(&svg, "<line x1='%d' y1='%.0f' x2='%.0f' y2='%.0f' stroke='#adb5bd'/>",
		padLeft, float64(padTop)+chartH, float64(padLeft)+chartW, float64(padTop)+chartH)
	fmt.Fprintf(&svg, "<line x1='%d' y1='%d' x2='%d' y2='%.0f' stroke='#adb5bd'/>",
		padLeft, padTop, padLeft, float64(padTop)+chartH)
	fmt.Fprintf(&svg, "<polyline points='%s' fill='none' stroke='#0b7285' stroke-width='3'/>",
		strings.Join(points, " "))
	svg.WriteString(circles.String())
	svg.WriteString(labels.String())
	svg.WriteString("<text x='20' y='20' font-size='14' font-weight='bold'>Monthly Spending Trend</text>")
	svg.WriteString("</svg>")

	return g.writeSVG(TrendChartFile, svg.String())
}

// WriteCategoryBarSVG renders one month's category spending as a bar
// chart, bars sorted by spend descending.
func (g *Generator) WriteCategoryBarSVG(categorySpending map[string]decimal.Decimal, title string) error {
	const (
		width     = 900
		height    = 420
		padLeft   = 60
		padRight  = 20
		padTop    = 30
		padBottom = 80
	)
	chartW := float64(width - padLeft - padRight)
	chartH := float64(height - padTop - padBottom)

	if len(categorySpending) == 0 {
		return g.writeSVG(CategoryChartFile, svgHeader(width, height)+"<text x='20' y='40'>No data</text></svg>")
	}

	type item struct {
		category string
		spend    float64
	}
	items := make([]item, 0, len(categorySpending))
	for category, spend := range categorySpending {
		items = append(items, item{category, spend.InexactFloat64()})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].spend != items[j].spend {
			return items[i].spend > items[j].spend
		}
		return items[i].category < items[j].category
	})

	maxV := items[0].spend
	if maxV == 0 {
		maxV = 1.0
	}
	barW := chartW / float64(len(items))

	var bars strings.Builder
	var labels strings.Builder
	for i, it := range items {
		x := float64(padLeft) + float64(i)*barW + 8
		barHeight := (it.spend / maxV) * chartH
		y := float64(padTop) + chartH - barHeight
		barWidth := barW - 16
		if barWidth < 10 {
			barWidth = 10
		}
		fmt.Fprintf(&bars, "<rect x='%.1f' y='%.1f' width='%.1f' height='%.1f' fill='#1971c2'/>",
			x, y, barWidth, barHeight)
		fmt.Fprintf(&labels, "<text x='%.1f' y='%d' font-size='11' text-anchor='middle'>%s</text>",
			x+barW/2, height-40, it.category)
	}

	var svg strings.Builder
	svg.WriteString(svgHeader(width, height))
	svg.WriteString("<rect x='0' y='0' width='100%' height='100%' fill='#f8f9fa'/>")
	fmt.Fprintf(&svg, "<line x1='%d' y1='%.0f' x2='%.0f' y2='%.0f' stroke='#adb5bd'/>",
		padLeft, float64(padTop)+chartH, float64(padLeft)+chartW, float64(padTop)+chartH)
	svg.WriteString(bars.String())
	svg.WriteString(labels.String())
	fmt.Fprintf(&svg, "<text x='20' y='20' font-size='14' font-weight='bold'>%s</text>", title)
	svg.WriteString("</svg>")

	return g.writeSVG(CategoryChartFile, svg.String())
}
