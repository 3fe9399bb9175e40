package entity

// UploadedFile describes a stored upload. URL is root-relative for local storage.
type UploadedFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
}
