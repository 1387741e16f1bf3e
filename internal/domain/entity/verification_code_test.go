package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerificationCode_IsExpired(t *testing.T) {
	issued := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	code := VerificationCode{
		CreatedAt: issued,
		ExpiresAt: issued.Add(10 * time.Minute),
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just issued", issued, false},
		{"one second before expiry", code.ExpiresAt.Add(-time.Second), false},
		{"exactly at expiry", code.ExpiresAt, true},
		{"after expiry", code.ExpiresAt.Add(time.Second), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, code.IsExpired(tt.now))
		})
	}
}

func TestValidPurpose(t *testing.T) {
	assert.True(t, ValidPurpose(PurposeRegistration))
	assert.True(t, ValidPurpose(PurposePasswordReset))
	assert.True(t, ValidPurpose(PurposeEmailChange))
	assert.False(t, ValidPurpose("login"))
	assert.False(t, ValidPurpose(""))
}
