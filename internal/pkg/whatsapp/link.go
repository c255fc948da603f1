package whatsapp

import (
	"net/url"
	"strings"
)

// Link builds a wa.me deep link for a phone number. Everything but digits is
// stripped from the number. It returns "" when no digits remain.
func Link(number, text string) string {
	digits := Digits(number)
	if digits == "" {
		return ""
	}
	link := "https://wa.me/" + digits
	if strings.TrimSpace(text) != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}

// ShareLink builds a number-less share link carrying text only.
func ShareLink(text string) string {
	return "https://api.whatsapp.com/send?text=" + url.QueryEscape(text)
}

func Digits(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
