package instagram

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/astropost/internal/domain"
)

// settings is the exported session blob. It carries everything needed to
// resume without a password.
type settings struct {
	Username  string    `json:"username"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	DeviceID  string    `json:"device_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (s settings) validate() error {
	var missing []string
	if strings.TrimSpace(s.Username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(s.SessionID) == "" {
		missing = append(missing, "session_id")
	}
	if strings.TrimSpace(s.DeviceID) == "" {
		missing = append(missing, "device_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: blob is missing %s", domain.ErrSessionRejected, strings.Join(missing, ", "))
	}
	return nil
}

func decodeSettings(blob []byte) (settings, error) {
	var s settings
	if err := json.Unmarshal(blob, &s); err != nil {
		return settings{}, fmt.Errorf("%w: decode session blob: %v", domain.ErrSessionRejected, err)
	}
	if err := s.validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

func (s settings) encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session blob: %w", err)
	}
	return data, nil
}
