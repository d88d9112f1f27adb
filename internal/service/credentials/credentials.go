package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/zjregee/usagewidget/internal/models"
)

// DefaultExpiryMargin is how close to expiry a token may be before it is
// treated as already expired.
const DefaultExpiryMargin = 30 * time.Second

var (
	ErrUnreadable   = errors.New("credentials unreadable")
	ErrMalformed    = errors.New("credentials malformed")
	ErrTokenExpired = errors.New("access token expired")
)

type credentialsFile struct {
	ClaudeAiOauth *struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresAt    int64  `json:"expiresAt"`
	} `json:"claudeAiOauth"`
}

// FileReader loads the OAuth token written by the Claude CLI. Every call
// goes to disk so that a token refreshed by another process is picked up.
type FileReader struct {
	path string
}

func NewFileReader(path string) *FileReader {
	return &FileReader{path: path}
}

func (r *FileReader) Path() string {
	return r.path
}

func (r *FileReader) Read() (models.Credential, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return models.Credential{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	var file credentialsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return models.Credential{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if file.ClaudeAiOauth == nil || file.ClaudeAiOauth.AccessToken == "" {
		return models.Credential{}, fmt.Errorf("%w: accessToken not found", ErrMalformed)
	}

	return models.Credential{
		AccessToken: file.ClaudeAiOauth.AccessToken,
		ExpiresAt:   file.ClaudeAiOauth.ExpiresAt,
	}, nil
}

// IsExpired reports whether now+margin has reached the credential's expiry.
func IsExpired(cred models.Credential, now time.Time, margin time.Duration) bool {
	return now.Add(margin).UnixMilli() >= cred.ExpiresAt
}
