package model

// DocumentType is the coarse category a parsed document is detected as.
type DocumentType string

const (
	DocFeatureList  DocumentType = "FeatureList"
	DocWBS          DocumentType = "WBS"
	DocMeetingNotes DocumentType = "MeetingNotes"
	DocOther        DocumentType = "Other"
)

// Valid reports whether d is a known document type.
func (d DocumentType) Valid() bool {
	switch d {
	case DocFeatureList, DocWBS, DocMeetingNotes, DocOther:
		return true
	}
	return false
}

// FileMetadata describes an uploaded file.
type FileMetadata struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	MimeType   string `json:"mime_type,omitempty"`
	ParserType string `json:"parser_type,omitempty"`
}
