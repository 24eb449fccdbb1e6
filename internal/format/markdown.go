package format

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Escape makes s safe as plain text in a legacy Markdown message.
func Escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// Bold wraps s in a bold entity. Escapes are not allowed inside an entity,
// so a literal asterisk closes it, is escaped and reopens it.
func Bold(s string) string {
	return "*" + strings.ReplaceAll(s, "*", `*\**`) + "*"
}
