package sessionstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/repeatharmony/repeatharmony/internal/model"
)

// RecordVersion is the schema version written by Encode.
const RecordVersion = 1

// SchemaError reports a stored value that is not a valid user record.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "session record schema mismatch: " + e.Reason
}

// record is the persisted layout. Version 0 means the field was absent,
// which is the unversioned layout with identical fields.
type record struct {
	Version  int    `json:"version,omitempty"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Initials string `json:"initials"`
	JoinedAt string `json:"joinedAt"`
}

// Encode serializes user in the current record layout.
func Encode(user *model.User) ([]byte, error) {
	if user == nil {
		return nil, fmt.Errorf("encode session: nil user")
	}
	data, err := json.Marshal(record{
		Version:  RecordVersion,
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Initials: user.Initials,
		JoinedAt: user.JoinedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// Decode validates and parses a stored record.
func Decode(data []byte) (*model.User, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &SchemaError{Reason: "invalid JSON: " + err.Error()}
	}

	if rec.Version != 0 && rec.Version != RecordVersion {
		return nil, &SchemaError{Reason: fmt.Sprintf("unsupported version %d", rec.Version)}
	}

	required := []struct{ field, value string }{
		{"id", rec.ID},
		{"name", rec.Name},
		{"email", rec.Email},
		{"initials", rec.Initials},
		{"joinedAt", rec.JoinedAt},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, &SchemaError{Reason: "missing " + r.field}
		}
	}

	joinedAt, err := time.Parse(time.RFC3339Nano, rec.JoinedAt)
	if err != nil {
		return nil, &SchemaError{Reason: "invalid joinedAt: " + err.Error()}
	}

	return &model.User{
		ID:       rec.ID,
		Name:     rec.Name,
		Email:    rec.Email,
		Initials: rec.Initials,
		JoinedAt: joinedAt.UTC(),
	}, nil
}
