package providers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// escapeQuotes matches mime/multipart's escaping of form-data parameters.
var escapeQuotes = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Form builds a multipart/form-data body in memory.
type Form struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

// NewForm starts an empty multipart body.
func NewForm() *Form {
	f := &Form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

// File adds a file part with an explicit content type. multipart.Writer's
// CreateFormFile always sends application/octet-stream, which vendors reject.
func (f *Form) File(field, filename, contentType string, data []byte) *Form {
	if f.err != nil {
		return f
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes.Replace(field), escapeQuotes.Replace(filename)))
	h.Set("Content-Type", contentType)
	part, err := f.w.CreatePart(h)
	if err != nil {
		f.err = err
		return f
	}
	_, f.err = part.Write(data)
	return f
}

// Field adds a plain form value.
func (f *Form) Field(name, value string) *Form {
	if f.err != nil {
		return f
	}
	f.err = f.w.WriteField(name, value)
	return f
}

// Close finishes the body and returns it with its Content-Type header value.
func (f *Form) Close() (*bytes.Buffer, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.w.Close(); err != nil {
		return nil, "", err
	}
	return &f.buf, f.w.FormDataContentType(), nil
}
