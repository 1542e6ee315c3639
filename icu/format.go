package icu

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formats ICU-style message templates. It caches one
// message.Printer per language and is safe for concurrent use.
type Formatter struct {
	printers sync.Map // language.Tag -> *message.Printer
}

// New creates a Formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format substitutes params into the ICU-style template for the given
// language. Plural and ordinal branches are selected with CLDR rules for
// the language; numbers are rendered with its digit grouping.
func (f *Formatter) Format(template string, params map[string]any, lang string) (string, error) {
	nodes, err := parse(template)
	if err != nil {
		return "", err
	}

	tag := language.Make(lang)

	var sb strings.Builder
	if err := f.eval(&sb, nodes, params, tag, ""); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// eval renders nodes into sb. pound carries the formatted number that '#'
// expands to inside the current plural branch; it is empty outside one.
func (f *Formatter) eval(sb *strings.Builder, nodes []node, params map[string]any, tag language.Tag, pound string) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case textNode:
			sb.WriteString(string(n))

		case poundNode:
			sb.WriteString(pound)

		case argNode:
			value, ok := params[n.name]
			if !ok {
				return fmt.Errorf("%w: %q", ErrMissingParam, n.name)
			}
			sb.WriteString(f.formatValue(value, tag))

		case numberNode:
			value, ok := params[n.name]
			if !ok {
				return fmt.Errorf("%w: %q", ErrMissingParam, n.name)
			}
			num, ok := toFloat(value)
			if !ok {
				return fmt.Errorf("%w: %q", ErrNotANumber, n.name)
			}
			sb.WriteString(f.formatNumber(num, tag))

		case selectNode:
			value, ok := params[n.name]
			if !ok {
				return fmt.Errorf("%w: %q", ErrMissingParam, n.name)
			}
			branch, ok := n.keyword[fmt.Sprint(value)]
			if !ok {
				branch = n.keyword["other"]
			}
			if err := f.eval(sb, branch, params, tag, pound); err != nil {
				return err
			}

		case pluralNode:
			value, ok := params[n.name]
			if !ok {
				return fmt.Errorf("%w: %q", ErrMissingParam, n.name)
			}
			num, ok := toFloat(value)
			if !ok {
				return fmt.Errorf("%w: %q", ErrNotANumber, n.name)
			}

			branch, offsetted := n.pick(num, tag)
			if err := f.eval(sb, branch, params, tag, f.formatNumber(offsetted, tag)); err != nil {
				return err
			}

		default:
			return fmt.Errorf("%w: unknown node %T", ErrBadArgument, n)
		}
	}
	return nil
}

// pick selects the branch for num: an exact =N match on the un-offsetted
// value first, then the CLDR plural category of the offsetted value, then
// "other". It also returns the offsetted number for '#' substitution.
func (n pluralNode) pick(num float64, tag language.Tag) ([]node, float64) {
	if num == math.Trunc(num) {
		if branch, ok := n.exact[int64(num)]; ok {
			return branch, num - float64(n.offset)
		}
	}

	offsetted := num - float64(n.offset)

	rules := plural.Cardinal
	if n.ordinal {
		rules = plural.Ordinal
	}

	i, v, w, frac, t := operands(offsetted)
	form := rules.MatchPlural(tag, i, v, w, frac, t)

	if branch, ok := n.keyword[formKeyword(form)]; ok {
		return branch, offsetted
	}
	return n.keyword["other"], offsetted
}

// operands derives the CLDR plural operands (i, v, w, f, t) from a number:
// integer part, visible fraction digit counts, and fraction values with and
// without trailing zeros. Only digits actually present in the default
// decimal rendering count as visible.
func operands(num float64) (i, v, w, f, t int) {
	abs := math.Abs(num)
	i = int(abs)

	formatted := strconv.FormatFloat(abs, 'f', -1, 64)
	_, fracDigits, ok := strings.Cut(formatted, ".")
	if !ok {
		return i, 0, 0, 0, 0
	}

	v = len(fracDigits)
	f, _ = strconv.Atoi(fracDigits)

	trimmed := strings.TrimRight(fracDigits, "0")
	w = len(trimmed)
	if trimmed == "" {
		t = 0
	} else {
		t, _ = strconv.Atoi(trimmed)
	}
	return i, v, w, f, t
}

func formKeyword(form plural.Form) string {
	switch form {
	case plural.Zero:
		return "zero"
	case plural.One:
		return "one"
	case plural.Two:
		return "two"
	case plural.Few:
		return "few"
	case plural.Many:
		return "many"
	default:
		return "other"
	}
}

// formatValue renders a plain argument. Numeric values go through the
// locale-aware number path; everything else is stringified as-is.
func (f *Formatter) formatValue(value any, tag language.Tag) string {
	if num, ok := toFloat(value); ok {
		return f.formatNumber(num, tag)
	}
	return fmt.Sprint(value)
}

func (f *Formatter) formatNumber(num float64, tag language.Tag) string {
	p := f.printer(tag)
	if num == math.Trunc(num) {
		return p.Sprint(number.Decimal(int64(num)))
	}
	return p.Sprint(number.Decimal(num))
}

func (f *Formatter) printer(tag language.Tag) *message.Printer {
	if p, ok := f.printers.Load(tag); ok {
		return p.(*message.Printer)
	}
	p := message.NewPrinter(tag)
	f.printers.Store(tag, p)
	return p
}

// toFloat widens any numeric value (or numeric string) to float64.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		num, err := strconv.ParseFloat(v, 64)
		return num, err == nil
	default:
		return 0, false
	}
}
