package domain

import "strings"

const (
	RoleResident   = "user"
	RoleSecretary  = "secretary"
	RoleChairman   = "chairman"
	RoleTreasurer  = "treasurer"
	RoleSuperAdmin = "superAdmin"
)

// StaffRoles may review resident accounts and transition request statuses.
var StaffRoles = []string{RoleSecretary, RoleChairman, RoleSuperAdmin}

const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusForPickup = "For Pickup"
	StatusCompleted = "Completed"
	StatusRejected  = "Rejected"
)

var requestStatuses = []string{StatusPending, StatusApproved, StatusForPickup, StatusCompleted, StatusRejected}

const (
	BlotterPending       = "Pending"
	BlotterInvestigating = "Under Investigation"
	BlotterResolved      = "Resolved"
	BlotterClosed        = "Closed"
)

var blotterStatuses = []string{BlotterPending, BlotterInvestigating, BlotterResolved, BlotterClosed}

const (
	IncidentNew        = "New"
	IncidentInProgress = "In Progress"
	IncidentResolved   = "Resolved"
)

var incidentStatuses = []string{IncidentNew, IncidentInProgress, IncidentResolved}

const (
	NotifCategoryRequest      = "request"
	NotifCategoryStatusUpdate = "status_update"
	NotifCategoryVerification = "verification"
	NotifCategoryDocument     = "document"
	NotifCategorySystem       = "system"
)

const (
	KindBarangayClearance = "barangay_clearance"
	KindBarangayIndigency = "barangay_indigency"
	KindBusinessClearance = "business_clearance"
	KindCedula            = "cedula"
	KindBlotter           = "blotter"
	KindIncident          = "incident"
)

// DocumentKinds is the closed set of request kinds exposed under
// /document-requests. Blotter and incident reports have their own routes
// but share the kind namespace for related-document references.
var DocumentKinds = []string{KindBarangayClearance, KindBarangayIndigency, KindBusinessClearance, KindCedula}

var kindLabels = map[string]string{
	KindBarangayClearance: "Barangay Clearance",
	KindBarangayIndigency: "Barangay Indigency",
	KindBusinessClearance: "Business Clearance",
	KindCedula:            "Cedula",
	KindBlotter:           "Blotter Report",
	KindIncident:          "Incident Report",
}

const (
	PaymentCash    = "cash"
	PaymentGCash   = "gcash"
	PaymentPayMaya = "paymaya"
)

var paymentMethods = []string{PaymentCash, PaymentGCash, PaymentPayMaya}

const (
	OTPPurposeLogin = "login"
	OTPPurposeReset = "reset"
	OTPPurposeMFA   = "mfa"
)

// NormalizeRequestStatus matches raw case-insensitively against the
// canonical request status set. ok is false for unknown values.
func NormalizeRequestStatus(raw string) (string, bool) {
	return normalize(raw, requestStatuses)
}

func NormalizeBlotterStatus(raw string) (string, bool) {
	return normalize(raw, blotterStatuses)
}

func NormalizeIncidentStatus(raw string) (string, bool) {
	return normalize(raw, incidentStatuses)
}

func normalize(raw string, set []string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, s := range set {
		if strings.EqualFold(trimmed, s) {
			return s, true
		}
	}
	return "", false
}

// IsVerifiedStatus reports whether a request status implies the document
// has been verified by staff.
func IsVerifiedStatus(status string) bool {
	return status == StatusApproved || status == StatusForPickup || status == StatusCompleted
}

func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if role == r {
			return true
		}
	}
	return false
}

func ValidDocumentKind(kind string) bool {
	for _, k := range DocumentKinds {
		if kind == k {
			return true
		}
	}
	return false
}

// ValidRelatedKind covers every collection a notification may point at.
func ValidRelatedKind(kind string) bool {
	_, ok := kindLabels[kind]
	return ok
}

// KindLabel returns the human-readable document name for a kind,
// e.g. "Cedula" for KindCedula.
func KindLabel(kind string) string {
	return kindLabels[kind]
}

func ValidPaymentMethod(method string) bool {
	for _, m := range paymentMethods {
		if strings.EqualFold(method, m) {
			return true
		}
	}
	return false
}
