// Package attachment validates and normalizes inline base64 file uploads
// of the shape {filename, content_type, data}.
package attachment

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrMissingFile = errors.New("file is required")
	ErrBadEncoding = errors.New("file data is not valid base64")
)

// Input is the wire shape clients send for any file upload.
type Input struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        string `json:"data"`
}

func (in Input) Empty() bool {
	return strings.TrimSpace(in.Data) == ""
}

// Normalize strips an optional data: URI prefix and verifies the payload
// decodes as base64. The stored form is the bare base64 string.
func Normalize(in Input) (Input, error) {
	if in.Empty() {
		return Input{}, ErrMissingFile
	}
	data := strings.TrimSpace(in.Data)
	if strings.HasPrefix(data, "data:") {
		// data:<mediatype>;base64,<payload>
		idx := strings.Index(data, ",")
		if idx < 0 {
			return Input{}, ErrBadEncoding
		}
		meta := data[len("data:"):idx]
		if in.ContentType == "" {
			if semi := strings.Index(meta, ";"); semi >= 0 {
				in.ContentType = meta[:semi]
			} else {
				in.ContentType = meta
			}
		}
		data = data[idx+1:]
	}
	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return Input{}, ErrBadEncoding
	}
	in.Data = data
	if in.ContentType == "" {
		in.ContentType = "application/octet-stream"
	}
	return in, nil
}

// Decode returns the raw bytes of a stored attachment.
func Decode(data string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, ErrBadEncoding
	}
	return raw, nil
}
