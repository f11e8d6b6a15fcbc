package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	// Clean 10-digit numbers pass through unchanged
	assert.Equal(t, "9876543210", NormalizePhone("9876543210"))
	assert.Equal(t, "9876543210", NormalizePhone("98765-43210"))
	assert.Equal(t, "9876543210", NormalizePhone("(98765) 43210"))

	// Country code and national prefix are trimmed to the trailing 10
	assert.Equal(t, "9876543210", NormalizePhone("+91 98765 43210"))
	assert.Equal(t, "9876543210", NormalizePhone("919876543210"))
	assert.Equal(t, "9876543210", NormalizePhone("09876543210"))

	// Anything else passes through verbatim
	assert.Equal(t, "12345", NormalizePhone("12345"))
	assert.Equal(t, "call us", NormalizePhone("call us"))
	assert.Equal(t, "1234567890123", NormalizePhone("1234567890123"))
	// 11 digits without a recognized prefix
	assert.Equal(t, "89876543210", NormalizePhone("89876543210"))

	assert.Equal(t, "", NormalizePhone(""))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "sales@acme.com", NormalizeEmail("sales@acme.com"))
	assert.Equal(t, "sales@acme.com", NormalizeEmail("  Sales@Acme.COM  "))
	assert.Equal(t, "info@sub.example.co.in", NormalizeEmail("Info@sub.example.co.in"))

	// Missing "@" or missing "." after "@" is rejected
	assert.Equal(t, "", NormalizeEmail("not-an-email"))
	assert.Equal(t, "", NormalizeEmail("user@localhost"))
	assert.Equal(t, "", NormalizeEmail(""))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Acme Sports", SanitizeText("  Acme   Sports  "))
	assert.Equal(t, "Leather Cricket Ball, size 5", SanitizeText("Leather\nCricket\tBall, size 5"))
	assert.Equal(t, "a b c", SanitizeText("a\n\nb\t\tc"))
	assert.Equal(t, "", SanitizeText("   \n\t "))
}
