package model

import "time"

// StoredFile describes one uploaded file as read back from storage.
// Images expose only the name; UploadedAt and Size are filled for documents.
type StoredFile struct {
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploadedAt"`
	Size       int64     `json:"size"`
}
