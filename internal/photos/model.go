package photos

import "time"

// Photo represents an uploaded travel photo owned by a user. Photos are
// immutable after upload except for deletion, which also removes the
// associated analysis.
type Photo struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"originalFilename"`
	StorageURL       string    `json:"storageUrl"`
	FileSize         int64     `json:"fileSize"`
	MimeType         string    `json:"mimeType"`
	CreatedAt        time.Time `json:"createdAt"`
}
