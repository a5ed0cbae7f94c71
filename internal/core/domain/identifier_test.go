package domain_test

import (
	"testing"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyIdentifier_Email(t *testing.T) {
	testCases := []struct {
		name       string
		identifier string
		expected   domain.IdentifierKind
	}{
		{"SimpleEmail", "a@b.co", domain.IdentifierEmail},
		{"DottedLocalPart", "first.last+tag@example.com", domain.IdentifierEmail},
		{"UppercaseOK", "USER@EXAMPLE.COM", domain.IdentifierEmail},
		{"MissingAt", "user.example.com", domain.IdentifierUnknown},
		{"MissingTLD", "user@example", domain.IdentifierUnknown},
		{"SingleCharTLD", "user@example.c", domain.IdentifierUnknown},
		{"Empty", "", domain.IdentifierUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, domain.ClassifyIdentifier(tc.identifier))
		})
	}
}

func TestClassifyIdentifier_Phone(t *testing.T) {
	testCases := []struct {
		name       string
		identifier string
		expected   domain.IdentifierKind
	}{
		{"TenDigits", "0912345678", domain.IdentifierPhone},
		{"ElevenDigits", "09123456789", domain.IdentifierPhone},
		{"NineDigits", "091234567", domain.IdentifierUnknown},
		{"TwelveDigits", "091234567890", domain.IdentifierUnknown},
		{"NonASCIIDigits", "０９１２３４５６７８", domain.IdentifierUnknown},
		{"WithDashes", "091-234-5678", domain.IdentifierUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, domain.ClassifyIdentifier(tc.identifier))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", domain.NormalizeEmail("  A@B.com "))
	assert.Equal(t, "user@example.com", domain.NormalizeEmail("USER@EXAMPLE.COM"))
}
