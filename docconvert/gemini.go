package docconvert

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash"

const geminiInstruction = `Convert this brokerage statement document to GitHub-flavored markdown.
Render every table as a markdown table, keeping the original column headers
and cell values exactly as printed. Do not summarize, comment, or omit pages.`

// Gemini converts documents by asking a Gemini model for a faithful markdown
// transcription. It is an alternative to [Docling] when no converter service
// is available.
type Gemini struct {
	Model  string // defaults to gemini-2.5-flash
	client *genai.Client
}

// NewGemini creates a converter backed by the Gemini API. Credentials are
// read from the environment (GEMINI_API_KEY) by the genai client.
func NewGemini(ctx context.Context) (*Gemini, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize Gemini client: %w", err)
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) model() string {
	if g.Model == "" {
		return geminiModel
	}
	return g.Model
}

// Convert sends the document inline to the model and returns its markdown
// transcription.
func (g *Gemini) Convert(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read statement %q: %w", path, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	contents := []*genai.Content{{Parts: []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: content}},
		{Text: geminiInstruction},
	}}}
	resp, err := g.client.Models.GenerateContent(ctx, g.model(), contents, nil)
	if err != nil {
		return "", fmt.Errorf("conversion of %q failed: %w", path, err)
	}
	md := resp.Text()
	if md == "" {
		return "", fmt.Errorf("model returned no content for %q", path)
	}
	return md, nil
}

var _ Converter = (*Docling)(nil)
var _ Converter = (*Gemini)(nil)
