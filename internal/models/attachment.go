package models

// Attachment is an inline base64 file stored on the owning row.
// Data may arrive with a data: URI prefix; it is stored stripped.
type Attachment struct {
	Filename    string `gorm:"size:255" json:"filename"`
	ContentType string `gorm:"size:100" json:"content_type"`
	Data        string `gorm:"type:longtext" json:"data"`
}

func (a Attachment) Empty() bool {
	return a.Filename == "" && a.Data == ""
}

// Payment is the payment sub-record carried by document requests and
// blotter reports. ReferenceNumber is required for non-cash methods.
type Payment struct {
	Method          string     `gorm:"size:20" json:"method"`
	Amount          float64    `json:"amount"`
	ReferenceNumber string     `gorm:"size:100" json:"reference_number"`
	Proof           Attachment `gorm:"embedded;embeddedPrefix:proof_" json:"proof"`
}
