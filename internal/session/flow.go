// Package session sequences one user action against the model and the
// conversation log: validate, record the user side, invoke the model,
// record the AI side. Log failures never block the answer; a failed
// model call aborts the action before anything is recorded for the AI.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"goldpan/internal/llm"
	"goldpan/internal/prompt"
	"goldpan/internal/sheetlog"
)

// ErrNoInput rejects an action carrying neither text nor an image.
var ErrNoInput = errors.New("no text or image provided")

// DefaultImagePrompt stands in for the text when the user sends only an
// image.
const DefaultImagePrompt = "請描述這張圖片的內容。"

// Appender is the write half of the log store.
type Appender interface {
	Append(ctx context.Context, role, tag, content string) error
}

type Request struct {
	Mode      string
	Depth     string
	Text      string
	Image     []byte
	ImageMIME string
}

type Result struct {
	Answer string
	// Warnings carry soft failures (log writes) the surface may show
	// alongside the answer.
	Warnings []string
}

type Flow struct {
	logStore Appender
	model    llm.Client
}

func New(logStore Appender, model llm.Client) *Flow {
	return &Flow{logStore: logStore, model: model}
}

// Ask runs the full sequence for one AI request. The user record is
// written before the model call and the AI record after it, strictly in
// that order; the AI tag and content do not exist until the model
// responds.
func (f *Flow) Ask(ctx context.Context, req Request) (Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" && len(req.Image) == 0 {
		return Result{}, ErrNoInput
	}
	if text == "" {
		text = DefaultImagePrompt
	}

	tag := f.tagFor(req)
	var res Result

	if err := f.logStore.Append(ctx, sheetlog.RoleUser, tag, text); err != nil {
		log.Printf("⚠️ failed to log user record: %v", err)
		res.Warnings = append(res.Warnings, "對話記錄寫入失敗(使用者訊息)")
	}

	var parts []llm.Part
	if len(req.Image) > 0 {
		parts = append(parts, llm.ImagePart(req.Image, req.ImageMIME))
	}
	parts = append(parts, llm.TextPart(text))

	resp, err := f.model.Generate(ctx, parts, prompt.InstructionFor(req.Mode, req.Depth))
	if err != nil {
		return Result{}, fmt.Errorf("model invocation failed: %w", err)
	}
	res.Answer = resp.Content

	if err := f.logStore.Append(ctx, sheetlog.RoleAI, tag, resp.Content); err != nil {
		log.Printf("⚠️ failed to log ai record: %v", err)
		res.Warnings = append(res.Warnings, "對話記錄寫入失敗(AI 回應)")
	}
	return res, nil
}

// SubmitNote persists a user-authored note. Unlike Ask, the write is the
// whole point here, so its failure is the caller's error.
func (f *Flow) SubmitNote(ctx context.Context, category, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrNoInput
	}
	return f.logStore.Append(ctx, sheetlog.RoleUser, prompt.TagFor(category), content)
}

func (f *Flow) tagFor(req Request) string {
	if req.Mode == prompt.ModeExplain {
		return prompt.ExplainTag(req.Depth)
	}
	return prompt.TagFor(req.Mode)
}
