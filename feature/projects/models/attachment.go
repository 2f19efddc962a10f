package models

import (
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment is a file uploaded to a project. The content lives in object
// storage under ObjectKey.
type Attachment struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	ProjectID   string    `gorm:"size:36;not null;index" json:"projectId"`
	FileName    string    `gorm:"size:255;not null" json:"fileName"`
	ContentType string    `gorm:"size:127" json:"contentType"`
	Size        int64     `json:"size"`
	ObjectKey   string    `gorm:"size:512;not null" json:"-"`
	UploadedBy  string    `gorm:"size:36;not null" json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BeforeCreate assigns a UUID when none is set.
func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ObjectKeyFor builds the storage key of an attachment:
// projects/<projectID>/<attachmentID>/<file name>.
func ObjectKeyFor(projectID, attachmentID, fileName string) string {
	return path.Join("projects", projectID, attachmentID, SanitizeFileName(fileName))
}

// maxFileNameBytes bounds the stored file name. Longer names keep their tail so
// the extension survives.
const maxFileNameBytes = 200

// SanitizeFileName strips directories and characters that do not belong in an
// object key. An empty result becomes "file".
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || r == utf8.RuneError {
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return "file"
	}
	if len(name) > maxFileNameBytes {
		start := len(name) - maxFileNameBytes
		for start < len(name) && !utf8.RuneStart(name[start]) {
			start++
		}
		name = name[start:]
	}
	return name
}
