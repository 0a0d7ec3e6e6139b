package clipboard

import "strings"

// FormatBothTexts builds the "Copy Both" payload. The translated section is
// left out when translated is empty or only whitespace.
func FormatBothTexts(original, translated string) string {
	content := "ORIGINAL TEXT:\n" + original
	if strings.TrimSpace(translated) != "" {
		content += "\n\nTRANSLATED TEXT:\n" + translated
	}
	return content
}
