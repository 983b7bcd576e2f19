package payload

import (
	"fmt"
)

func toStrings(raw any) []string {
	switch value := raw.(type) {
	case nil:
		return []string{}
	case string:
		return []string{value}
	case []string:
		return append([]string{}, value...)
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(value)}
	}
}
