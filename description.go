package slashdoc

import "strings"

// segmentDescription consumes the description lines following prev and splits
// them into prose and example segments. first is the text already found on
// prev itself, if any.
//
// Lines indented more than two levels past baseline are examples; they are
// joined with newlines and keep their indent relative to the shallowest
// example level. Prose lines are joined with spaces. A skipped source line or
// a change between prose and example starts a new segment. Consumption stops
// at a section header or at a line indented less than baseline+1.
func segmentDescription(c *cursor, baseline int, prev Line, first string) Description {
	var segs Description
	if first != "" {
		segs = append(segs, Segment{Text: first})
	}

	lastNumber := prev.Number
	for c.more() {
		l := c.peek()
		if l.isSectionHeader() || l.Indent < baseline+1 {
			break
		}

		c.next()

		example := l.Indent > baseline+2
		text := l.Text
		if example {
			text = strings.Repeat(" ", 2*(l.Indent-baseline-3)) + text
		}

		gap := l.Number-lastNumber > 1
		lastNumber = l.Number

		if n := len(segs); n > 0 {
			tail := &segs[n-1]

			switch {
			case !gap && tail.Example == example:
				sep := " "
				if example {
					sep = "\n"
				}

				tail.Text += sep + text

				continue
			case gap && example && tail.Example:
				segs = append(segs, Segment{})
			}
		}

		segs = append(segs, Segment{Example: example, Text: text})
	}

	return segs
}
