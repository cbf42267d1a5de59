package messaging

import (
	"fmt"
	"net/url"
	"strings"

	"roadside-dispatch-service/internal/domain"
)

const waBaseURL = "https://wa.me/"

// WhatsAppLink builds a wa.me deep link that opens a chat prefilled with message.
// A blank phone produces a recipient-less link, letting the user pick the chat.
func WhatsAppLink(phone, message string) (string, error) {
	digits, err := normalizePhone(phone)
	if err != nil {
		return "", fmt.Errorf("whatsapp link: %w", err)
	}

	q := url.Values{}
	q.Set("text", message)

	// wa.me expects %20 rather than '+' for spaces.
	return waBaseURL + digits + "?" + strings.ReplaceAll(q.Encode(), "+", "%20"), nil
}

// normalizePhone strips common formatting from an international number.
func normalizePhone(phone string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", fmt.Errorf("%w: phone %q contains %q", domain.ErrInvalidArgument, phone, r)
		}
	}
	return b.String(), nil
}
