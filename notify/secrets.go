// Copyright (c) 2025 BVK Chaitanya

package notify

import (
	"encoding/json"
	"fmt"
	"os"
)

// Secrets holds optional credentials for the external notification channels.
// Channels with no credentials are simply not configured.
type Secrets struct {
	Pushover *PushoverKeys `json:"pushover,omitempty"`

	Telegram *TelegramSecrets `json:"telegram,omitempty"`
}

// SecretsFromFile loads channel credentials from a JSON file. A missing file
// returns empty secrets.
func SecretsFromFile(fpath string) (*Secrets, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Secrets{}, nil
		}
		return nil, fmt.Errorf("could not read secrets file: %w", err)
	}
	s := new(Secrets)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("could not parse secrets file %q: %w", fpath, err)
	}
	return s, nil
}
