package gdrive

// Folder represents a Google Drive folder as exposed to the rest of the
// application. The ID is the provider-assigned opaque identifier.
type Folder struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	CreatedTime  string `json:"createdTime"`
	ModifiedTime string `json:"modifiedTime"`
}

// File represents a Google Drive file. Size is zero for provider-native
// document types (Docs, Sheets) which report no byte size. The link fields
// are always requested so a UI row can be rendered without a second call.
type File struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MimeType       string `json:"mimeType"`
	Size           int64  `json:"size,omitempty"`
	CreatedTime    string `json:"createdTime"`
	ModifiedTime   string `json:"modifiedTime"`
	WebViewLink    string `json:"webViewLink,omitempty"`
	WebContentLink string `json:"webContentLink,omitempty"`
	ThumbnailLink  string `json:"thumbnailLink,omitempty"`
	IconLink       string `json:"iconLink,omitempty"`
}
