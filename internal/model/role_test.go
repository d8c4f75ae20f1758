package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoleNormalizes(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("Admin"))
	assert.Equal(t, RoleCS, ParseRole("  Customer Service "))
	assert.Equal(t, RoleCS, ParseRole("CS"))
	assert.Equal(t, RoleSales, ParseRole("SALES REPRESENTATIVE"))
	assert.Equal(t, RoleSales, ParseRole("sales"))
	assert.Equal(t, RoleClient, ParseRole("client"))
	assert.Equal(t, RoleUnknown, ParseRole("superuser"))
	assert.Equal(t, RoleUnknown, ParseRole(""))
}

func TestValidInquiryStatus(t *testing.T) {
	for _, s := range InquiryStatuses {
		assert.True(t, ValidInquiryStatus(s))
	}
	assert.False(t, ValidInquiryStatus("archived"))
	assert.False(t, ValidInquiryStatus("PENDING"))
}
