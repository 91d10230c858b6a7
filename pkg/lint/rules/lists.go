package rules

import (
	"math"
	"strconv"

	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

// OrderedListPrefixRule renumbers ordered lists sequentially from 1.
type OrderedListPrefixRule struct {
	lint.BaseRule
}

// NewOrderedListPrefixRule creates the ORDERED_LIST_PREFIX fixer.
func NewOrderedListPrefixRule() *OrderedListPrefixRule {
	return &OrderedListPrefixRule{
		BaseRule: lint.NewBaseRule(
			lint.OrderedListPrefix,
			"ol-prefix",
			"MD029",
			"Ordered list item prefix",
			[]string{"ol"},
		),
	}
}

// Fix renumbers ordered list items. An item directly below an ordered item
// with the same indentation continues that list; any other item starts a
// new list at 1. Only the digits are rewritten.
func (r *OrderedListPrefixRule) Fix(rc *lint.RuleContext) string {
	doc := rc.Doc
	counters := make(map[string]uint32)
	out := make([]string, doc.Len())

	for i, line := range doc.Lines {
		out[i] = line
		if doc.Opaque(i) {
			continue
		}
		item, ok := mdline.ExtractOrderedItem(line)
		if !ok {
			continue
		}

		next := uint32(1)
		if i > 0 && !doc.Opaque(i-1) {
			if prev, ok := mdline.ExtractOrderedItem(out[i-1]); ok && prev.Indent == item.Indent {
				if counters[item.Indent] == math.MaxUint32 {
					continue
				}
				next = counters[item.Indent] + 1
			}
		}
		counters[item.Indent] = next

		digitsStart := len(item.Indent)
		digitsEnd := digitsStart
		for digitsEnd < len(line) && line[digitsEnd] >= '0' && line[digitsEnd] <= '9' {
			digitsEnd++
		}
		out[i] = line[:digitsStart] + strconv.FormatUint(uint64(next), 10) + line[digitsEnd:]
	}
	return mdline.Join(out)
}
