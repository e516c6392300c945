package xml

import (
	"strings"

	"github.com/dzjyyds666/serde/value"
	"github.com/pkg/errors"
)

const indentUnit = "  "

// Encode renders m as indented elements, starting at the given indent level.
// Falsy values become self-closing elements, maps nest one level deeper and
// other scalars are written inline. Sequences are not supported and yield
// value.ErrUnsupportedValueKind. Text is written without escaping.
func Encode(m *value.Map, indent int) ([]byte, error) {
	if indent < 0 {
		indent = 0
	}
	var sb strings.Builder
	if err := encodeMap(&sb, m, indent); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func encodeMap(sb *strings.Builder, m *value.Map, indent int) error {
	pad := strings.Repeat(indentUnit, indent)
	for key, n := range m.All() {
		if !value.Truthy(n) {
			sb.WriteString(pad + "<" + key + "/>\n")
			continue
		}
		switch v := n.(type) {
		case *value.Map:
			sb.WriteString(pad + "<" + key + ">\n")
			if err := encodeMap(sb, v, indent+1); err != nil {
				return err
			}
			sb.WriteString("</" + key + ">\n")
		case *value.Value:
			sb.WriteString(pad + "<" + key + ">" + value.Text(v) + "</" + key + ">\n")
		default:
			return errors.Wrapf(value.ErrUnsupportedValueKind, "xml: element %q holds a %s", key, n.Kind())
		}
	}
	return nil
}
