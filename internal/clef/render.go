package clef

import (
	"fmt"
	"strings"
)

// NoMessage is shown for events with neither @mt nor @m.
const NoMessage = "No message"

// RenderMessage picks the event's template, falling back to the
// pre-rendered message and then to NoMessage, and substitutes every
// "{Key}" token for which the event has a rendering.
//
// Each rendering is applied independently over the whole text, so when one
// substituted value itself contains a "{Other}" token that a later rendering
// matches, the later rendering replaces it too. Tokens without a matching
// rendering, including format-specified ones such as "{Elapsed:0.00}", are
// left as they are.
func RenderMessage(e Event) string {
	text := e.template
	if text == "" {
		text = e.message
	}
	if text == "" {
		return NoMessage
	}

	for _, r := range e.renderings {
		token := "{" + r.Key + "}"
		if strings.Contains(text, token) {
			text = strings.ReplaceAll(text, token, r.Text())
		}
	}
	return text
}

// DisplayLine formats the event as "<timestamp>: [<LEVEL>] <message>".
func DisplayLine(e Event) string {
	return fmt.Sprintf("%s: [%s] %s", e.DisplayTimestamp(), e.level, RenderMessage(e))
}
