package telegram

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"goldpan/internal/auth"
	"goldpan/internal/llm"
	"goldpan/internal/session"
	"goldpan/internal/sheetlog"
)

type fakeSender struct{ sent []string }

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	sw := c.(tgbotapi.MessageConfig)
	f.sent = append(f.sent, sw.Text)
	return tgbotapi.Message{}, nil
}

type fakeLLM struct {
	resp llm.Response
	err  error
}

func (f fakeLLM) Generate(ctx context.Context, parts []llm.Part, systemInstruction string) (llm.Response, error) {
	return f.resp, f.err
}

type fakeAppender struct{ rows [][3]string }

func (f *fakeAppender) Append(ctx context.Context, role, tag, content string) error {
	f.rows = append(f.rows, [3]string{role, tag, content})
	return nil
}

type fakeReader struct{ records []sheetlog.Record }

func (f *fakeReader) FetchAll(ctx context.Context) []sheetlog.Record { return f.records }

func newTestBot(fl llm.Client, reader recordsFetcher) (*Bot, *fakeSender, *fakeAppender) {
	fs := &fakeSender{}
	fa := &fakeAppender{}
	b := &Bot{
		s:           fs,
		authSvc:     auth.New([]int64{42}, 99),
		flow:        session.New(fa, fl),
		reader:      reader,
		adminUserID: 99,
		now:         func() time.Time { return time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC) },
	}
	return b, fs, fa
}

func userMsg(userID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID, UserName: "user"},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
}

func TestUnauthorizedUserRejected(t *testing.T) {
	b, fs, fa := newTestBot(fakeLLM{}, &fakeReader{})
	b.handleIncomingMessage(context.Background(), userMsg(7, 100, "hello"))

	if len(fs.sent) != 1 || !strings.Contains(fs.sent[0], "沒有使用權限") {
		t.Fatalf("rejection not sent: %+v", fs.sent)
	}
	if len(fa.rows) != 0 {
		t.Fatalf("nothing should be logged for unauthorized users")
	}
}

func TestPlainMessageAnsweredAndLogged(t *testing.T) {
	b, fs, fa := newTestBot(fakeLLM{resp: llm.Response{Content: "回答內容"}}, &fakeReader{})
	b.handleIncomingMessage(context.Background(), userMsg(42, 100, "量子糾纏"))

	if len(fs.sent) != 1 || fs.sent[0] != "回答內容" {
		t.Fatalf("answer not delivered: %+v", fs.sent)
	}
	if len(fa.rows) != 2 || fa.rows[0][0] != "user" || fa.rows[1][0] != "ai" {
		t.Fatalf("user and ai records expected: %+v", fa.rows)
	}
	// Plain messages default to the standard explain tag.
	if fa.rows[0][1] != "explain_std" {
		t.Fatalf("unexpected tag: %+v", fa.rows[0])
	}
}

func TestModelFailureSurfacedVerbatim(t *testing.T) {
	b, fs, _ := newTestBot(fakeLLM{err: errTest}, &fakeReader{})
	b.handleIncomingMessage(context.Background(), userMsg(42, 100, "hi"))

	if len(fs.sent) != 1 || !strings.Contains(fs.sent[0], "AI 呼叫失敗") {
		t.Fatalf("model error not surfaced: %+v", fs.sent)
	}
}

func TestExplainCommandPeelsDepth(t *testing.T) {
	b, _, fa := newTestBot(fakeLLM{resp: llm.Response{Content: "ok"}}, &fakeReader{})
	msg := userMsg(42, 100, "/explain 摘要 黑洞")
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len("/explain")}}
	b.handleCommand(context.Background(), msg)

	if len(fa.rows) == 0 || fa.rows[0][1] != "explain_brief" || fa.rows[0][2] != "黑洞" {
		t.Fatalf("depth token not peeled: %+v", fa.rows)
	}
}

func TestNoteCommand(t *testing.T) {
	b, fs, fa := newTestBot(fakeLLM{}, &fakeReader{})
	msg := userMsg(42, 100, "/note question 為什麼天空是藍的")
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len("/note")}}
	b.handleCommand(context.Background(), msg)

	if len(fa.rows) != 1 || fa.rows[0][1] != "question" {
		t.Fatalf("note not recorded with category tag: %+v", fa.rows)
	}
	if len(fs.sent) != 1 || !strings.Contains(fs.sent[0], "已記錄") {
		t.Fatalf("confirmation missing: %+v", fs.sent)
	}
}

func TestHistoryCommandRendersNewestFirst(t *testing.T) {
	reader := &fakeReader{records: []sheetlog.Record{
		{Timestamp: "2026-03-01 12:00:01", Role: "ai", Tag: "vocab", Content: "world"},
		{Timestamp: "2026-03-01 12:00:00", Role: "user", Tag: "vocab", Content: "hello"},
	}}
	b, fs, _ := newTestBot(fakeLLM{}, reader)
	msg := userMsg(42, 100, "/history")
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len("/history")}}
	b.handleCommand(context.Background(), msg)

	if len(fs.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(fs.sent))
	}
	out := fs.sent[0]
	if strings.Index(out, "world") > strings.Index(out, "hello") {
		t.Fatalf("history must render newest first: %q", out)
	}
}

func TestDailyDigestGoesToAdmin(t *testing.T) {
	reader := &fakeReader{records: []sheetlog.Record{
		// 12:00 in the log's UTC+8 zone matches the bot's frozen 04:00 UTC clock.
		{Timestamp: "2026-03-01 12:00:00", Role: "user", Tag: "vocab", Content: "hello"},
	}}
	b, fs, _ := newTestBot(fakeLLM{}, reader)

	if err := b.DailyDigest(context.Background()); err != nil {
		t.Fatalf("digest failed: %v", err)
	}
	if len(fs.sent) != 1 || !strings.Contains(fs.sent[0], "2026-03-01") || !strings.Contains(fs.sent[0], "vocab") {
		t.Fatalf("digest not delivered: %+v", fs.sent)
	}
}

type markupRejectingSender struct{ sent []tgbotapi.MessageConfig }

func (f *markupRejectingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	mc := c.(tgbotapi.MessageConfig)
	f.sent = append(f.sent, mc)
	if mc.ParseMode != "" {
		return tgbotapi.Message{}, &testError{}
	}
	return tgbotapi.Message{}, nil
}

func TestSendMessageFallsBackToPlainText(t *testing.T) {
	fs := &markupRejectingSender{}
	b := &Bot{s: fs, parseMode: "HTML"}

	b.sendMessage(1, "若 x < y 則成立")

	if len(fs.sent) != 2 {
		t.Fatalf("expected markup attempt then plain retry, got %d sends", len(fs.sent))
	}
	if fs.sent[0].ParseMode != "HTML" {
		t.Fatalf("first attempt must use the configured parse mode: %+v", fs.sent[0])
	}
	if fs.sent[1].ParseMode != "" || fs.sent[1].Text != "若 x < y 則成立" {
		t.Fatalf("retry must deliver the same text without parse mode: %+v", fs.sent[1])
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "model unavailable" }
