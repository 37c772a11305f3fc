// Package docconvert turns statement documents (PDF) into a markdown
// rendition that the fineval statement parser understands.
//
// Conversion itself is delegated to an external backend: a docling-serve
// instance ([Docling]) or the Gemini API ([Gemini]).
package docconvert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// Converter turns the document at path into a markdown string.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// Docling converts documents through a docling-serve instance.
type Docling struct {
	Addr   string       // base address, e.g. "http://localhost:5001"
	Client *http.Client // nil means http.DefaultClient
}

// Convert uploads the file to the docling-serve synchronous conversion
// endpoint and returns the markdown content of the response.
func (d *Docling) Convert(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read statement %q: %w", path, err)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := part.Write(content); err != nil {
		return "", err
	}
	if err := form.WriteField("to_formats", "md"); err != nil {
		return "", err
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	addr := d.Addr + "/v1alpha/convert/file"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, &body)
	if err != nil {
		return "", fmt.Errorf("cannot create http request %q: %w", addr, err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot execute http request: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return "", fmt.Errorf("cannot read receiving http body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cannot convert %q: %s: %s", path, resp.Status, buf.String())
	}

	var payload struct {
		Status   string `json:"status"`
		Document struct {
			MDContent string `json:"md_content"`
		} `json:"document"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		return "", fmt.Errorf("could not decode docling response: %w", err)
	}
	if payload.Document.MDContent == "" {
		return "", fmt.Errorf("docling returned no markdown for %q (status %q)", path, payload.Status)
	}
	return payload.Document.MDContent, nil
}
