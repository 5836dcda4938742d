package models

// Document is a backend-indexed PDF available for retrieval-augmented
// answering within a conversation. The client never constructs one locally;
// it only renders what the backend returned. UploadDate stays a string
// because the backend's timestamp format is authoritative and is displayed,
// never computed with.
type Document struct {
	DocID       string `json:"doc_id"`
	Filename    string `json:"filename"`
	UploadDate  string `json:"upload_date"`
	TotalChunks int    `json:"total_chunks"`
}
