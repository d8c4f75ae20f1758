package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReceiptNumberFormat(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	rct := ReceiptNumber(id, at)

	assert.Regexp(t, regexp.MustCompile(`^RCT-\d{4}-[A-Z0-9]{8}$`), rct)
	assert.True(t, strings.HasPrefix(rct, "RCT-2026-"))

	compact := strings.ReplaceAll(id.String(), "-", "")
	assert.Equal(t, strings.ToUpper(compact[:8]), rct[len(rct)-8:])
}

func TestNewOTPCodeSixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := NewOTPCode()
		assert.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)
	}
}
