package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRequestStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"pending", StatusPending, true},
		{"APPROVED", StatusApproved, true},
		{"for pickup", StatusForPickup, true},
		{"  Completed ", StatusCompleted, true},
		{"rejected", StatusRejected, true},
		{"shipped", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeRequestStatus(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestNormalizeBlotterStatus(t *testing.T) {
	got, ok := NormalizeBlotterStatus("under investigation")
	assert.True(t, ok)
	assert.Equal(t, BlotterInvestigating, got)

	_, ok = NormalizeBlotterStatus("Approved")
	assert.False(t, ok)
}

func TestIsVerifiedStatus(t *testing.T) {
	assert.False(t, IsVerifiedStatus(StatusPending))
	assert.True(t, IsVerifiedStatus(StatusApproved))
	assert.True(t, IsVerifiedStatus(StatusForPickup))
	assert.True(t, IsVerifiedStatus(StatusCompleted))
	assert.False(t, IsVerifiedStatus(StatusRejected))
}

func TestDocumentKinds(t *testing.T) {
	assert.True(t, ValidDocumentKind(KindCedula))
	assert.False(t, ValidDocumentKind(KindBlotter))
	assert.True(t, ValidRelatedKind(KindBlotter))
	assert.False(t, ValidRelatedKind("passport"))
	assert.Equal(t, "Cedula", KindLabel(KindCedula))
	assert.Equal(t, "Barangay Clearance", KindLabel(KindBarangayClearance))
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod("cash"))
	assert.True(t, ValidPaymentMethod("GCash"))
	assert.False(t, ValidPaymentMethod("bitcoin"))
}
