package model

import "time"

// Document represents a stored file belonging to a client. Filename is the
// generated stored name; OriginalName is the user-supplied name kept for
// download headers. StoragePath is the blob key inside the client's storage
// namespace, and the row must never outlive the blob it points to.
type Document struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	StoragePath  string    `json:"storage_path"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	LabelID      *string   `json:"label_id"`
	CreatedAt    time.Time `json:"created_at"`

	// LabelName and LabelColor are populated by listings that join the
	// label taxonomy. Nil when the document is unlabeled.
	LabelName  *string `json:"label_name,omitempty"`
	LabelColor *string `json:"label_color,omitempty"`
}

// Label is an admin-managed taxonomy entry for classifying documents.
// Read-only in this service: listed, assigned to documents, never created here.
type Label struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ColorCode string `json:"color_code"`
}
