// Package markup extracts speakable plain text from HTML-bearing note
// field values. The rest of the pipeline treats this as an opaque
// conversion and never inspects markup itself.
package markup

import (
	"strings"

	"github.com/k3a/html2text"
)

// PlainText strips HTML markup from a field value and collapses the
// remaining whitespace, yielding the text handed to speech synthesis.
func PlainText(fieldHTML string) string {
	text := html2text.HTML2Text(fieldHTML)
	return strings.Join(strings.Fields(text), " ")
}
