package models

import "time"

// FileType distinguishes the two attachment slots of a product.
type FileType string

const (
	FileTypeSample        FileType = "SAMPLE_FILE"
	FileTypeDocumentation FileType = "DOCUMENTATION"
)

// FileTypes lists the attachment slots in display order.
var FileTypes = []FileType{FileTypeSample, FileTypeDocumentation}

// Valid reports whether t is a known file type.
func (t FileType) Valid() bool {
	return t == FileTypeSample || t == FileTypeDocumentation
}

// Label is the human-readable slot name.
func (t FileType) Label() string {
	switch t {
	case FileTypeSample:
		return "Sample file"
	case FileTypeDocumentation:
		return "Documentation"
	default:
		return string(t)
	}
}

// ProductFileResponse is the backend's attachment representation.
type ProductFileResponse struct {
	ID          ID       `json:"id"`
	FileName    string   `json:"fileName"`
	FileType    FileType `json:"fileType"`
	ContentType string   `json:"contentType"`
	Size        int64    `json:"size"`
	DownloadURL string   `json:"downloadUrl"`
	CreatedAt   string   `json:"createdAt"`
}

// ProductFile describes a file attached to exactly one product, as the console shows it.
type ProductFile struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	FileName    string    `json:"fileName"`
	FileType    FileType  `json:"fileType"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	DownloadURL string    `json:"downloadUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	// Placeholder marks a record that only exists in memory because the backend
	// has no upload endpoint.
	Placeholder bool `json:"placeholder,omitempty"`
}
