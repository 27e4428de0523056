package telegram

import (
	"context"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"goldpan/internal/auth"
	"goldpan/internal/session"
	"goldpan/internal/sheetlog"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type botAPISender struct{ api *tgbotapi.BotAPI }

func (s botAPISender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return s.api.Send(c)
}

type recordsFetcher interface {
	FetchAll(ctx context.Context) []sheetlog.Record
}

// Bot is the interactive surface: a thin caller that hands every action
// to the session flow and renders the outcome.
type Bot struct {
	api         *tgbotapi.BotAPI
	s           sender
	authSvc     *auth.Service
	flow        *session.Flow
	reader      recordsFetcher
	adminUserID int64
	parseMode   string
	now         func() time.Time
}

func New(botToken string, authSvc *auth.Service, flow *session.Flow, reader recordsFetcher, adminUserID int64, parseMode string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:         api,
		s:           botAPISender{api: api},
		authSvc:     authSvc,
		flow:        flow,
		reader:      reader,
		adminUserID: adminUserID,
		parseMode:   parseMode,
		now:         time.Now,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		if update.Message.IsCommand() {
			b.handleCommand(ctx, update.Message)
			continue
		}
		b.handleIncomingMessage(ctx, update.Message)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if b.parseMode != "" {
		msg.ParseMode = b.parseMode
	}
	_, err := b.s.Send(msg)
	if err != nil && msg.ParseMode != "" {
		// Model output is not guaranteed to be valid markup; a bare "<"
		// fails the whole send. Deliver it plain instead of dropping it.
		log.Printf("failed to send message with parse mode %s, retrying plain: %v", msg.ParseMode, err)
		msg.ParseMode = ""
		_, err = b.s.Send(msg)
	}
	if err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
