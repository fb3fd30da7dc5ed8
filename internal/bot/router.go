package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"filmvault-tg-bot/internal/web"
)

const handleTimeout = 30 * time.Second

// HandleUpdate dispatches one update. Each update gets its own bounded
// context so a stuck Mongo call cannot wedge the polling loop forever.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			b.log.WithField("panic", r).Error("recovered while handling update")
		}
	}()

	switch {
	case update.Message != nil:
		web.UpdatesTotal.WithLabelValues("message").Inc()
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		web.UpdatesTotal.WithLabelValues("callback").Inc()
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	log := b.log.WithFields(logrus.Fields{
		"chat_id": msg.Chat.ID,
		"user_id": msg.From.ID,
	})

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.handleStart(ctx, msg)
		case "id":
			b.handleID(msg)
		case "list":
			if b.cfg.IsAdmin(msg.From.ID) {
				b.listMovies(ctx, msg.From.ID, msg.Chat.ID, 0, 1)
			}
		default:
			log.WithField("command", msg.Command()).Debug("ignoring unknown command")
		}
		return
	}

	if msg.Chat.ID == b.cfg.StorageGroupID {
		if msg.Document != nil {
			b.receiveDocument(ctx, msg)
			return
		}
		if len(msg.Photo) > 0 {
			b.receivePhoto(ctx, msg)
			return
		}
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}
	if b.handleNameText(ctx, msg, text) {
		return
	}
	if b.handleDeleteNumber(ctx, msg, text) {
		return
	}
	if msg.Chat.ID == b.cfg.SearchGroupID {
		b.handleSearch(ctx, msg, text)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.From == nil || cq.Message == nil {
		return
	}
	data := cq.Data

	switch {
	case strings.HasPrefix(data, "menu_"), strings.HasPrefix(data, "cmd_"):
		b.handleMenuCallback(ctx, cq)
	case data == "edit_name", data == "continue_name":
		b.handleNameDecision(ctx, cq)
	case strings.HasPrefix(data, "movie_"):
		b.handleMovieFiles(ctx, cq, strings.TrimPrefix(data, "movie_"))
	case strings.HasPrefix(data, "page:"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "page:"))
		if err != nil || page < 1 {
			page = 1
		}
		_ = b.tp.AnswerCallback(cq.ID, "")
		b.listMovies(ctx, cq.From.ID, cq.Message.Chat.ID, cq.Message.MessageID, page)
	case data == "ask_delete":
		b.handleAskDelete(ctx, cq)
	case strings.HasPrefix(data, "confirm_del:"):
		b.handleConfirmDelete(ctx, cq, strings.TrimPrefix(data, "confirm_del:"))
	case data == "cancel_del":
		_ = b.tp.AnswerCallback(cq.ID, "")
		_ = b.tp.DeleteMessage(cq.Message.Chat.ID, cq.Message.MessageID)
	default:
		_ = b.tp.AnswerCallback(cq.ID, "")
		b.log.WithField("data", data).Debug("ignoring unknown callback")
	}
}

func (b *Bot) handleID(msg *tgbotapi.Message) {
	text := "👤 Your ID: " + strconv.FormatInt(msg.From.ID, 10) +
		"\n💬 Group ID: " + strconv.FormatInt(msg.Chat.ID, 10)
	if _, err := b.tp.SendText(msg.Chat.ID, text, nil); err != nil {
		b.log.WithError(err).Warn("failed to send id reply")
	}
}
