package slashdoc

import (
	"fmt"
	"strings"
)

// formatParamList formats declared parameters as "type name", bracketing
// optional ones.
func formatParamList(params []*Node) string {
	if len(params) == 0 {
		return ""
	}

	parts := make([]string, 0, len(params))
	for _, p := range params {
		var part string
		switch {
		case p.Type != "" && p.Name != "":
			part = fmt.Sprintf("%s %s", p.Type, p.Name)
		case p.Name != "":
			part = p.Name
		default:
			part = "_"
		}

		if p.Optional {
			part = "[" + part + "]"
		}

		parts = append(parts, part)
	}

	return strings.Join(parts, ", ")
}

// signature returns the display signature of a function node, e.g.
// "int doit(int food, [function cheese])".
func signature(n *Node) string {
	sig := fmt.Sprintf("%s(%s)", n.ShortName(), formatParamList(n.Params))
	if n.HasReturn() {
		return n.ReturnType + " " + sig
	}

	return sig
}
