package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// fieldRule bounds what a form input accepts. A nil accept allows any
// printable rune.
type fieldRule struct {
	limit  int
	accept func(r rune) bool
}

var (
	textRule  = fieldRule{limit: 128}
	brandRule = fieldRule{limit: 32}
	emailRule = fieldRule{limit: 254, accept: func(r rune) bool {
		return !unicode.IsSpace(r)
	}}
	phoneRule = fieldRule{limit: 20, accept: func(r rune) bool {
		return unicode.IsDigit(r) || strings.ContainsRune("+-() ", r)
	}}
)

// ruleFor returns the input rule of a login or registration field.
func ruleFor(f loginField) fieldRule {
	switch f {
	case fieldEmail:
		return emailRule
	case fieldPhone:
		return phoneRule
	}
	return textRule
}

// edit applies one keystroke to text. Backspace drops the last rune; a
// single printable rune is appended if the rule accepts it and the limit
// is not reached. Every other key leaves text unchanged.
func (r fieldRule) edit(text, key string) string {
	if key == "backspace" {
		if text == "" {
			return text
		}
		_, size := utf8.DecodeLastRuneInString(text)
		return text[:len(text)-size]
	}
	if utf8.RuneCountInString(key) != 1 {
		return text
	}
	c, _ := utf8.DecodeRuneInString(key)
	if !unicode.IsPrint(c) || (r.accept != nil && !r.accept(c)) {
		return text
	}
	if r.limit > 0 && utf8.RuneCountInString(text) >= r.limit {
		return text
	}
	return text + key
}

// truncateToHeight keeps at most maxLines lines of s. maxLines <= 0 keeps
// everything.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// renderField renders one labelled form input. Masked fields show one
// bullet per rune.
func renderField(label, value, placeholder string, focused, masked bool) string {
	shown := value
	if masked {
		shown = strings.Repeat("•", utf8.RuneCountInString(value))
	}

	cursor := "  "
	labelStyle := metaStyle
	if focused {
		cursor = inputPromptStyle.Render("> ")
		labelStyle = selectedStyle
	}

	var body string
	switch {
	case shown == "" && !focused:
		body = inputPlaceholderStyle.Render(placeholder)
	case focused:
		body = normalStyle.Render(shown) + accentStyle.Render("█")
	default:
		body = dimStyle.Render(shown)
	}
	return cursor + labelStyle.Render(padRight(label, 10)) + " " + body
}

func padRight(s string, n int) string {
	if w := utf8.RuneCountInString(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
