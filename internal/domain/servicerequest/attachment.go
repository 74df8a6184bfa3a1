package servicerequest

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"servicedesk/internal/shared/biztime"
	"servicedesk/internal/shared/id"
)

// UploadNamespace is the key prefix under which attachment blobs live.
const UploadNamespace = "attachments/uploads"

const maxFileNameLength = 120

// Attachment is a file uploaded together with a service request. Its blob
// lives at StorageKey, which embeds the attachment SID so that two
// uploads never share a key.
type Attachment struct {
	id               uint
	sid              string
	serviceRequestID uint
	fileName         string
	storageKey       string
	contentType      string
	size             int64
	uploadedAt       time.Time
}

func NewAttachment(serviceRequestID uint, fileName, contentType string, size int64) (*Attachment, error) {
	if serviceRequestID == 0 {
		return nil, fmt.Errorf("service request ID is required")
	}
	if size < 0 {
		return nil, fmt.Errorf("attachment size cannot be negative")
	}

	sid, err := id.NewAttachmentID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate attachment ID: %w", err)
	}

	name := SanitizeFileName(fileName)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Attachment{
		sid:              sid,
		serviceRequestID: serviceRequestID,
		fileName:         name,
		storageKey:       path.Join(UploadNamespace, sid, name),
		contentType:      contentType,
		size:             size,
		uploadedAt:       biztime.NowUTC(),
	}, nil
}

func ReconstructAttachment(
	id uint,
	sid string,
	serviceRequestID uint,
	fileName string,
	storageKey string,
	contentType string,
	size int64,
	uploadedAt time.Time,
) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if storageKey == "" {
		return nil, fmt.Errorf("attachment storage key is required")
	}
	return &Attachment{
		id:               id,
		sid:              sid,
		serviceRequestID: serviceRequestID,
		fileName:         fileName,
		storageKey:       storageKey,
		contentType:      contentType,
		size:             size,
		uploadedAt:       uploadedAt,
	}, nil
}

func (a *Attachment) ID() uint               { return a.id }
func (a *Attachment) SID() string            { return a.sid }
func (a *Attachment) ServiceRequestID() uint { return a.serviceRequestID }
func (a *Attachment) FileName() string       { return a.fileName }
func (a *Attachment) StorageKey() string     { return a.storageKey }
func (a *Attachment) ContentType() string    { return a.contentType }
func (a *Attachment) Size() int64            { return a.size }
func (a *Attachment) UploadedAt() time.Time  { return a.uploadedAt }

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}

// SanitizeFileName keeps the base name of a client-supplied file name and
// replaces anything outside letters, digits, dot, dash and underscore.
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	if len(out) > maxFileNameLength {
		ext := path.Ext(out)
		if len(ext) > 16 {
			ext = ""
		}
		out = out[:maxFileNameLength-len(ext)] + ext
	}
	return out
}
