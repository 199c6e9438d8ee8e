package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Offer is a single proposed funding amount with its justification.
// Offers are immutable once constructed: negotiators create them, the
// history records them, nobody edits them afterwards.
type Offer struct {
	amount    float64
	message   string
	createdAt time.Time
}

func NewOffer(amount float64, message string, createdAt time.Time) Offer {
	return Offer{
		amount:    amount,
		message:   message,
		createdAt: createdAt,
	}
}

func (o Offer) Amount() float64 {
	return o.amount
}

func (o Offer) Message() string {
	return o.message
}

func (o Offer) CreatedAt() time.Time {
	return o.createdAt
}

func (o Offer) String() string {
	return fmt.Sprintf("%s: %s", FormatAmount(o.amount), o.message)
}

// FormatAmount renders a funding amount as "$1,234,567.89".
func FormatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	return sign + "$" + b.String() + "." + fracPart
}

var amountPattern = regexp.MustCompile(`\$?(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)`)

// ParseAmount extracts the first dollar figure from free text. It reports
// false when the text contains no recognizable amount.
func ParseAmount(text string) (float64, bool) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
