package domain

import "time"

// User represents a registered account
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string `gorm:"column:password"`
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the sanitized view of a User returned to clients
type PublicUser struct {
	ID    uint   `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public strips the password hash and internal fields
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Passcode is the single live one-time passcode for an email address
type Passcode struct {
	Email    string
	Code     string
	IssuedAt time.Time
}

// AssetCategory is the coarse content kind of an asset
type AssetCategory string

const (
	CategoryImage    AssetCategory = "image"
	CategoryVideo    AssetCategory = "video"
	CategoryAudio    AssetCategory = "audio"
	CategoryDocument AssetCategory = "document"
	CategoryFile     AssetCategory = "file"
)

// Asset is the locally persisted metadata of an externally stored binary
type Asset struct {
	ID           string        `json:"_id"`
	OwnerID      uint          `json:"user"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	FileURL      string        `json:"fileUrl"`
	Category     AssetCategory `json:"fileType"`
	MediaType    string        `json:"mimeType"`
	OriginalName string        `json:"originalName"`
	SizeBytes    int64         `json:"size"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Classification is the outcome of inspecting a source reference
type Classification struct {
	Category     AssetCategory
	MediaType    string
	SizeBytes    int64
	OriginalName string
}

// ResourceMetadata is what the cloud media host reports for a stored resource
type ResourceMetadata struct {
	Type   string
	Format string
	Bytes  int64
}

// UploadCredential lets a client push a file straight to the cloud media host
type UploadCredential struct {
	UploadURL string    `json:"uploadUrl"`
	Method    string    `json:"method"`
	Key       string    `json:"key"`
	FileURL   string    `json:"fileUrl"`
	Timestamp int64     `json:"timestamp"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StoredFile describes a file written to local fallback storage
type StoredFile struct {
	FileURL      string
	Filename     string
	OriginalName string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User  *User
	Token string
}

// CodeRequestResult reports both halves of a "request code" action
type CodeRequestResult struct {
	Issued    bool
	Delivered bool
}

// VerificationResult reports a verify attempt; Ticket is set on success
type VerificationResult struct {
	Verified bool
	Reason   string
	Ticket   string
}
