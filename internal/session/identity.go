package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Role gates what an Identity may open.
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleAnalyst Role = "analyst"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleAnalyst:
		return true
	}
	return false
}

// MedicalRecord is one entry of an identity's medical history.
type MedicalRecord struct {
	Date      string `json:"date"`
	Condition string `json:"condition"`
	Doctor    string `json:"doctor"`
	Notes     string `json:"notes"`
}

// Identity is the signed-in user. It is persisted as JSON under the session key.
// Empty but non-nil history and preferences are kept as [] and {}.
type Identity struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           Role            `json:"role"`
	MedicalHistory []MedicalRecord `json:"medicalHistory,omitzero"`
	Preferences    map[string]any  `json:"preferences,omitzero"`
}

var errMalformed = errors.New("malformed session record")

func decodeIdentity(raw string) (Identity, error) {
	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if id.ID == "" {
		return Identity{}, fmt.Errorf("%w: missing id", errMalformed)
	}
	if !id.Role.Valid() {
		return Identity{}, fmt.Errorf("%w: unknown role %q", errMalformed, id.Role)
	}
	return id, nil
}

func encodeIdentity(id Identity) (string, error) {
	b, err := json.Marshal(id)
	if err != nil {
		return "", fmt.Errorf("encode identity: %w", err)
	}
	return string(b), nil
}
