// Package authoring validates user-authored test drafts and hands the
// normalized result to the repository.
package authoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Draft is the raw authoring input, before trimming and validation.
type Draft struct {
	Title     string          `json:"title" yaml:"title"`
	Questions []DraftQuestion `json:"questions" yaml:"questions"`
}

// DraftQuestion is one question as typed by the author. CorrectAnswer is nil
// until an option has been selected.
type DraftQuestion struct {
	Text          string   `json:"text" yaml:"text"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer *int     `json:"correctAnswer" yaml:"correctAnswer"`
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	out := Draft{Title: d.Title, Questions: make([]DraftQuestion, len(d.Questions))}
	for i, q := range d.Questions {
		out.Questions[i] = q.clone()
	}
	return out
}

func (q DraftQuestion) clone() DraftQuestion {
	c := DraftQuestion{Text: q.Text, Options: append([]string(nil), q.Options...)}
	if q.CorrectAnswer != nil {
		v := *q.CorrectAnswer
		c.CorrectAnswer = &v
	}
	return c
}

// Format is a draft file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from a file extension. Unknown extensions
// are read as YAML, which also accepts JSON documents.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// ParseDraft decodes a draft file.
func ParseDraft(data []byte, format Format) (Draft, error) {
	var d Draft
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return Draft{}, fmt.Errorf("parse JSON draft: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return Draft{}, fmt.Errorf("parse YAML draft: %w", err)
		}
	default:
		return Draft{}, fmt.Errorf("unknown draft format %q", format)
	}
	return d, nil
}

// MarshalYAML renders the draft as a YAML document.
func MarshalYAML(d Draft) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
