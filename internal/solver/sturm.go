package solver

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aquaa/alphamath/internal/algebra"
	"github.com/aquaa/alphamath/internal/explain"
	"github.com/aquaa/alphamath/internal/poly"
)

// Sturm builds the Sturm sequence of a polynomial, tabulates its signs at
// evaluation points and reports the intervals that contain real roots.
type Sturm struct {
	points []float64
	eps    float64
}

// NewSturm returns a Sturm solver. opts.SturmPoints are used when the input
// names no evaluation points.
func NewSturm(opts Options) *Sturm {
	return &Sturm{points: opts.SturmPoints, eps: opts.Epsilon}
}

func (*Sturm) Name() string    { return "sturm" }
func (*Sturm) Title() string   { return "Sturm's theorem" }
func (*Sturm) Usage() string   { return "polynomial, x1, x2, ..." }
func (*Sturm) Example() string { return "x^3 - x, -2, -1, 0, 1, 2" }

func (s *Sturm) Solve(ctx context.Context, input string) *explain.Explanation {
	e := explain.New(s.Name(), input)
	e.Add("title", "")
	if cancelled(ctx, e) {
		return e
	}

	var parts []string
	for _, p := range strings.Split(input, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return e.Fail(explain.Inputf("No input provided. Expected format: %s", s.Usage()))
	}

	f, err := algebra.ParseUnivariate(parts[0])
	if err != nil {
		return e.Fail(explain.Inputf("Failed to parse polynomial: %v", err))
	}
	if f.IsZero() {
		return e.Fail(explain.Inputf("The zero polynomial has no Sturm sequence."))
	}

	points := s.points
	if len(parts) > 1 {
		points = make([]float64, 0, len(parts)-1)
		for _, raw := range parts[1:] {
			x, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return e.Fail(explain.Inputf("Invalid evaluation point '%s'.", raw))
			}
			points = append(points, x)
		}
	}

	v := f.Var
	e.Add("f", f.Pretty(), v)
	e.Add("derivative", f.Derivative().Pretty(), v)

	labels := make([]string, len(points))
	for i, x := range points {
		labels[i] = formatPoint(x)
	}
	e.Add("points", strings.Join(labels, ", "))

	seq := poly.SturmSequence(f)
	e.Add("sequence", "")
	for i, p := range seq {
		e.Add("member", p.Pretty(), strconv.Itoa(i), v)
	}

	width := 3
	for _, l := range labels {
		width = max(width, utf8.RuneCountInString(l))
	}
	width += 2
	w := strconv.Itoa(width)

	table := poly.SignTable(seq, points, s.eps)
	e.Add("table-header", "", append([]string{w}, labels...)...)
	for i, row := range table {
		cells := []string{w, strconv.Itoa(i)}
		for _, sign := range row {
			cells = append(cells, sign.String())
		}
		e.Add("table-row", "", cells...)
	}

	changes := poly.ChangesAt(table, len(points))
	counts := []string{w}
	for _, c := range changes {
		counts = append(counts, strconv.Itoa(c))
	}
	e.Add("table-changes", "", counts...)

	e.Add("intervals", "")
	intervals := poly.RootIntervals(points, changes)
	if len(intervals) == 0 {
		return e.Add("no-roots", "")
	}
	for _, iv := range intervals {
		e.Add("interval", strconv.Itoa(iv.Roots), formatPoint(iv.From), formatPoint(iv.To))
	}
	return e
}

func formatPoint(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func (*Sturm) Templates() explain.Templates {
	return sturmTemplates
}

var sturmTemplates = explain.Templates{
	"title":         explain.Text("\n=== Sturm's Theorem Evaluation ==="),
	"f":             explain.Text("Parsed polynomial: f({0}) = {r}"),
	"derivative":    explain.Text("Derivative: f'({0}) = {r}"),
	"points":        explain.Text("Using evaluation points: [{r}]"),
	"sequence":      explain.Text("--- Final Sturm Sequence ---"),
	"member":        explain.Text("f{0}({1}) = {r}"),
	"table-header":  tableHeader,
	"table-row":     tableRow,
	"table-changes": tableChanges,
	"intervals":     explain.Text("\n=== Intervals Containing Roots ==="),
	"no-roots":      explain.Text(" - No real roots detected in the evaluated range."),
	"interval": func(st explain.Step) string {
		noun := "root"
		if st.Result != "1" {
			noun = "roots"
		}
		return " - " + st.Result + " real " + noun + " in interval (" + st.Operands[0] + ", " + st.Operands[1] + ")"
	},
}

// Sign table rows carry the column width as operand 0.

func tableHeader(st explain.Step) string {
	line := tableLine("f⁰(x)", st.Operands)
	return line + "\n" + tableRule(line)
}

func tableRow(st explain.Step) string {
	return tableLine("f"+st.Operands[1]+"(x)", append([]string{st.Operands[0]}, st.Operands[2:]...))
}

func tableChanges(st explain.Step) string {
	line := tableLine("V(x)", st.Operands)
	return tableRule(line) + "\n" + line
}

func tableLine(label string, operands []string) string {
	width, _ := strconv.Atoi(operands[0])
	var b strings.Builder
	b.WriteString(padRight(label, 6))
	b.WriteString("| ")
	for i, cell := range operands[1:] {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(center(cell, width))
		b.WriteString(" |")
	}
	return b.String()
}

func tableRule(line string) string {
	return strings.Repeat("-", utf8.RuneCountInString(line))
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// center pads s to width, putting the extra space on the right.
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
