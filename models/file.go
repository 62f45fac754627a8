package models

// FileAsset 파일 서버에 저장된 자산 메타데이터. The catalog backend keeps one per
// uploaded attachment; ProductFileResponse is derived from it.
type FileAsset struct {
	ID          int64    `json:"id"`
	ProductID   int64    `json:"product_id"`
	FileType    FileType `json:"file_type"`
	FileName    string   `json:"file_name"`
	StoredName  string   `json:"stored_name"`
	ContentType string   `json:"content_type"`
	Size        int64    `json:"size"`
	Checksum    string   `json:"checksum,omitempty"`
	StoragePath string   `json:"storage_path"`
	CreatedAt   string   `json:"created_at"`
}
