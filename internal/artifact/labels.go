package artifact

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

// LabelEncoder decodes class ids using the classes_ of a fitted encoder,
// exported as {"classes": ["BARBUNYA", ...]}.
type LabelEncoder struct {
	Classes []string `json:"classes"`
}

// LoadLabelEncoder reads an exported label encoder from path.
func LoadLabelEncoder(path string) (*LabelEncoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read label encoder: %w", err)
	}
	return ParseLabelEncoder(data)
}

func ParseLabelEncoder(data []byte) (*LabelEncoder, error) {
	var enc LabelEncoder
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, fmt.Errorf("failed to parse label encoder: %w", err)
	}
	seen := make(map[string]struct{}, len(enc.Classes))
	for i, c := range enc.Classes {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("label encoder: class %d is empty", i)
		}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("label encoder: duplicate class %q", c)
		}
		seen[c] = struct{}{}
	}
	return &enc, nil
}

func (e *LabelEncoder) Decode(classID int64) (string, error) {
	if e == nil || len(e.Classes) == 0 {
		return "", fmt.Errorf("label encoder is not fitted")
	}
	if classID < 0 || classID >= int64(len(e.Classes)) {
		return "", fmt.Errorf("y contains previously unseen label: %d", classID)
	}
	return e.Classes[classID], nil
}

// Known returns a copy of the labels the encoder can produce.
func (e *LabelEncoder) Known() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.Classes))
	copy(out, e.Classes)
	return out
}
