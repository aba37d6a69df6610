package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
)

// File is one file field of an upload.
type File struct {
	Name    string
	Content io.Reader
}

type formField struct {
	key   string
	value string
}

type formFile struct {
	field string
	file  File
}

// form is a payload that may carry files. Without files it is sent as JSON,
// with at least one file as multipart/form-data.
type form struct {
	fields []formField
	files  []formFile
	json   interface{}
	err    error
}

func newForm(jsonBody interface{}) *form {
	return &form{json: jsonBody}
}

func (f *form) set(key, value string) *form {
	if value != "" {
		f.fields = append(f.fields, formField{key: key, value: value})
	}
	return f
}

// setJSON adds v as a JSON encoded field. A marshal failure is kept and
// reported by encode.
func (f *form) setJSON(key string, v interface{}) *form {
	raw, err := json.Marshal(v)
	if err != nil {
		if f.err == nil {
			f.err = fmt.Errorf("encode field %s: %w", key, err)
		}
		return f
	}
	if string(raw) != "null" {
		f.fields = append(f.fields, formField{key: key, value: string(raw)})
	}
	return f
}

func (f *form) file(field string, file *File) *form {
	if file != nil && file.Content != nil {
		f.files = append(f.files, formFile{field: field, file: *file})
	}
	return f
}

func (f *form) hasFiles() bool {
	return len(f.files) > 0
}

// encode returns the body and its content type.
func (f *form) encode() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if !f.hasFiles() {
		raw, err := json.Marshal(f.json)
		if err != nil {
			return nil, "", fmt.Errorf("encode json body: %w", err)
		}
		return bytes.NewReader(raw), "application/json", nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, field := range f.fields {
		if err := w.WriteField(field.key, field.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", field.key, err)
		}
	}
	for _, ff := range f.files {
		part, err := w.CreateFormFile(ff.field, ff.file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", ff.field, err)
		}
		if _, err := io.Copy(part, ff.file.Content); err != nil {
			return nil, "", fmt.Errorf("copy file %s: %w", ff.file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
