package model

type PrescriptionStatus string

const (
	PrescriptionStatusPending  PrescriptionStatus = "pending"
	PrescriptionStatusApproved PrescriptionStatus = "approved"
	PrescriptionStatusRejected PrescriptionStatus = "rejected"
)

// Prescription records an uploaded prescription document. The file itself
// lives under the uploads directory; only metadata is stored here.
type Prescription struct {
	Base
	PatientName  string             `db:"patient_name" json:"patientName"`
	Notes        string             `db:"notes" json:"notes,omitempty"`
	FilePath     string             `db:"file_path" json:"filePath"`
	OriginalName string             `db:"original_name" json:"originalName"`
	MimeType     string             `db:"mime_type" json:"mimeType"`
	Size         int64              `db:"size" json:"size"`
	Status       PrescriptionStatus `db:"status" json:"status"`
}

type CreatePrescriptionRequest struct {
	PatientName  string `json:"patientName" validate:"required"`
	Notes        string `json:"notes"`
	FilePath     string `json:"filePath" validate:"required"`
	OriginalName string `json:"originalName" validate:"required"`
	MimeType     string `json:"mimeType" validate:"required"`
	Size         int64  `json:"size" validate:"required,gt=0"`
}

type UpdatePrescriptionStatusRequest struct {
	Status PrescriptionStatus `json:"status" binding:"required,oneof=pending approved rejected"`
}
