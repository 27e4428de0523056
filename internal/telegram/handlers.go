package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"goldpan/internal/prompt"
	"goldpan/internal/session"
	"goldpan/internal/sheetlog"
	"goldpan/internal/summary"
)

const (
	historyDefaultLimit = 10
	historyPreviewRunes = 200
	maxPhotoBytes       = 20 << 20
)

var noteCategories = map[string]bool{"question": true, "idea": true, "note": true}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	if !b.authSvc.IsAllowed(msg.From.ID) {
		log.Printf("Unauthorized access attempt by user ID: %d, username: @%s", msg.From.ID, msg.From.UserName)
		b.sendMessage(msg.Chat.ID, "抱歉,您沒有使用權限。")
		return
	}

	args := strings.TrimSpace(msg.CommandArguments())
	switch msg.Command() {
	case "start", "help":
		b.sendMessage(msg.Chat.ID, helpText)
	case "translate":
		b.runAsk(ctx, msg, session.Request{Mode: prompt.ModeTranslate, Text: args})
	case "explain":
		depth, text := splitDepth(args)
		b.runAsk(ctx, msg, session.Request{Mode: prompt.ModeExplain, Depth: depth, Text: text})
	case "note":
		b.handleNote(ctx, msg, args)
	case "history":
		b.handleHistory(ctx, msg, args)
	case "digest":
		if !b.authSvc.IsAdmin(msg.From.ID) {
			b.sendMessage(msg.Chat.ID, "此指令僅限管理員使用。")
			return
		}
		records := b.reader.FetchAll(ctx)
		today := b.now().In(sheetlog.LogLocation()).Format("2006-01-02")
		b.sendMessage(msg.Chat.ID, summary.Analyze(records, today).Format())
	default:
		b.sendMessage(msg.Chat.ID, "未知的指令,輸入 /help 查看用法。")
	}
}

const helpText = `⛏️ 知識掏金盤
/translate <文字> — 翻譯成正式繁體中文
/explain [摘要|詳解|延伸] <文字> — 講解概念(預設:詳解)
/note [question|idea|note] <文字> — 記一筆筆記
/history [n] — 查看最近 n 筆記錄
直接傳文字或圖片,等同 /explain 詳解`

// splitDepth peels a leading depth token off the explain arguments.
func splitDepth(args string) (depth, text string) {
	fields := strings.SplitN(args, " ", 2)
	switch fields[0] {
	case prompt.DepthBrief, prompt.DepthStandard, prompt.DepthExtended:
		if len(fields) == 2 {
			return fields[0], strings.TrimSpace(fields[1])
		}
		return fields[0], ""
	}
	return "", args
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !b.authSvc.IsAllowed(msg.From.ID) {
		log.Printf("Unauthorized access attempt by user ID: %d, username: @%s", msg.From.ID, msg.From.UserName)
		b.sendMessage(msg.Chat.ID, "抱歉,您沒有使用權限。")
		return
	}
	log.Printf("Incoming message from %d (@%s): %q", msg.From.ID, msg.From.UserName, msg.Text)

	// A bare message is an explain request at the default depth; the
	// caption carries the text when a photo is attached.
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	req := session.Request{Mode: prompt.ModeExplain, Text: text}
	req.Image, req.ImageMIME = b.downloadPhoto(msg)
	b.runAsk(ctx, msg, req)
}

func (b *Bot) runAsk(ctx context.Context, msg *tgbotapi.Message, req session.Request) {
	res, err := b.flow.Ask(ctx, req)
	if errors.Is(err, session.ErrNoInput) {
		b.sendMessage(msg.Chat.ID, "請輸入文字或上傳圖片。")
		return
	}
	if err != nil {
		log.Printf("model invocation failed: %v", err)
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("AI 呼叫失敗:%v", err))
		return
	}

	out := res.Answer
	for _, w := range res.Warnings {
		out += "\n\n⚠️ " + w
	}
	b.sendMessage(msg.Chat.ID, out)
}

func (b *Bot) handleNote(ctx context.Context, msg *tgbotapi.Message, args string) {
	category := "note"
	content := args
	fields := strings.SplitN(args, " ", 2)
	if noteCategories[fields[0]] {
		category = fields[0]
		content = ""
		if len(fields) == 2 {
			content = strings.TrimSpace(fields[1])
		}
	}

	err := b.flow.SubmitNote(ctx, category, content)
	if errors.Is(err, session.ErrNoInput) {
		b.sendMessage(msg.Chat.ID, "筆記內容不能為空。")
		return
	}
	if err != nil {
		log.Printf("failed to persist note: %v", err)
		b.sendMessage(msg.Chat.ID, "⚠️ 筆記寫入失敗,請稍後再試。")
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("📝 已記錄(%s)", category))
}

func (b *Bot) handleHistory(ctx context.Context, msg *tgbotapi.Message, args string) {
	limit := historyDefaultLimit
	if n, err := strconv.Atoi(strings.TrimSpace(args)); err == nil && n > 0 {
		limit = n
	}

	records := b.reader.FetchAll(ctx)
	if len(records) == 0 {
		b.sendMessage(msg.Chat.ID, "目前沒有任何記錄。")
		return
	}
	if len(records) > limit {
		records = records[:limit]
	}

	var bld strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&bld, "🕑 %s [%s/%s]\n%s\n\n", rec.Timestamp, rec.Role, rec.Tag, preview(rec.Content))
	}
	b.sendMessage(msg.Chat.ID, strings.TrimRight(bld.String(), "\n"))
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= historyPreviewRunes {
		return content
	}
	return string(runes[:historyPreviewRunes]) + "…"
}

// DailyDigest posts today's activity summary to the admin chat; wired
// into the cron scheduler.
func (b *Bot) DailyDigest(ctx context.Context) error {
	if b.adminUserID == 0 {
		return fmt.Errorf("no admin user configured for digest")
	}
	records := b.reader.FetchAll(ctx)
	today := b.now().In(sheetlog.LogLocation()).Format("2006-01-02")
	b.sendMessage(b.adminUserID, summary.Analyze(records, today).Format())
	return nil
}

// downloadPhoto fetches the largest rendition of an attached photo.
// Failures degrade to a text-only request.
func (b *Bot) downloadPhoto(msg *tgbotapi.Message) ([]byte, string) {
	if len(msg.Photo) == 0 || b.api == nil {
		return nil, ""
	}
	ps := msg.Photo[len(msg.Photo)-1]
	url, err := b.api.GetFileDirectURL(ps.FileID)
	if err != nil {
		log.Printf("⚠️ failed to resolve photo url: %v", err)
		return nil, ""
	}
	resp, err := http.Get(url)
	if err != nil {
		log.Printf("⚠️ failed to download photo: %v", err)
		return nil, ""
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
	if err != nil {
		log.Printf("⚠️ failed to read photo: %v", err)
		return nil, ""
	}
	return data, http.DetectContentType(data)
}
