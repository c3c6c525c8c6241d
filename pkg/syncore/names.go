package syncore

import "strings"

// elementName joins typ with an optional colon-separated list of
// caller-supplied names, for the diagnostic labels set with WithName.
func elementName(typ string, names ...string) string {
	name := strings.Join(names, ":")
	if len(name) > 0 {
		return typ + ":" + name
	}
	return typ
}
