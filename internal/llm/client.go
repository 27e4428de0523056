package llm

import "context"

// Part is one element of a prompt: either text or inline image bytes.
type Part struct {
	Text      string
	ImageData []byte
	ImageMIME string
}

func TextPart(s string) Part { return Part{Text: s} }

func ImagePart(data []byte, mime string) Part {
	return Part{ImageData: data, ImageMIME: mime}
}

func (p Part) IsImage() bool { return len(p.ImageData) > 0 }

type Response struct {
	Content string
	Model   string
}

// Client is the boundary to a generative model. Failures are opaque to
// callers and surfaced verbatim.
type Client interface {
	Generate(ctx context.Context, parts []Part, systemInstruction string) (Response, error)
}
