// ABOUTME: Multipart form assembly for file-bearing submit payloads
// ABOUTME: Supports both pending local uploads and existing references

package validate

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"folio-admin/internal/entity"
)

// BuildForm encodes a record as a multipart form body. Plain fields
// become string parts. A field the rule set types as a file becomes a
// raw file part when it holds a pending LocalFile, or its JSON
// serialization when it holds an existing server reference. A
// "gallery" array gets the same treatment per element, with existing
// references appended under "exist_gallery". Returns the body and the
// Content-Type to send with it.
func BuildForm(record entity.Record, rules entity.RuleSet) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for key, value := range record {
		if key == "gallery" {
			if items, ok := value.([]any); ok {
				if err := writeGallery(w, items); err != nil {
					return nil, "", err
				}
				continue
			}
		}

		if rules[key].Type == "file" {
			if err := writeFileField(w, key, value); err != nil {
				return nil, "", err
			}
			continue
		}

		if err := w.WriteField(key, stringForm(value)); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

func writeGallery(w *multipart.Writer, items []any) error {
	for _, item := range items {
		if file, ok := item.(LocalFile); ok {
			if err := writeFilePart(w, "gallery", file.Path); err != nil {
				return err
			}
			continue
		}
		serialized, err := json.Marshal(item)
		if err != nil {
			return err
		}
		if err := w.WriteField("exist_gallery", string(serialized)); err != nil {
			return err
		}
	}
	return nil
}

func writeFileField(w *multipart.Writer, key string, value any) error {
	if file, ok := value.(LocalFile); ok {
		return writeFilePart(w, key, file.Path)
	}
	// Existing reference: keep it by sending its serialized form
	serialized, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return w.WriteField(key, string(serialized))
}

func writeFilePart(w *multipart.Writer, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	part, err := w.CreateFormFile(key, filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}
