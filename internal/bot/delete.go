package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"filmvault-tg-bot/internal/session"
	"filmvault-tg-bot/internal/web"
)

// listMovies shows one page of the archive and snapshots it into the
// admin's delete session. Delete-by-number resolves against that
// snapshot, so the displayed numbering stays valid even if the
// collection changes underneath. With messageID set the existing list
// message is edited in place.
func (b *Bot) listMovies(ctx context.Context, userID, chatID int64, messageID, page int) {
	if !b.cfg.IsAdmin(userID) {
		return
	}
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * PageSize

	movies, total, err := b.store.ListByName(ctx, skip, PageSize)
	if err != nil {
		b.log.WithError(err).Error("failed to list movies")
		return
	}

	var text string
	if len(movies) == 0 {
		text = "No movies found."
	} else {
		var sb strings.Builder
		fmt.Fprintf(&sb, "🎬 **Total movies stored: %d**\n\n", total)
		for i, m := range movies {
			fmt.Fprintf(&sb, "%d. %s\n", skip+1+i, m.Name)
		}
		text = sb.String()
	}

	snapshot := &session.DeleteSession{Page: page}
	for _, m := range movies {
		snapshot.Movies = append(snapshot.Movies, session.MovieRef{
			ID:   m.ID.Hex(),
			Name: m.Name,
		})
	}
	if err := b.sessions.PutDelete(ctx, userID, snapshot); err != nil {
		b.log.WithError(err).Error("failed to store delete session")
	}

	kb := listKeyboard(page, skip, total)
	if messageID != 0 {
		if err := b.tp.EditText(chatID, messageID, text, kb); err != nil {
			b.log.WithError(err).Warn("failed to edit list message")
		}
		return
	}
	if _, err := b.tp.SendText(chatID, text, kb); err != nil {
		b.log.WithError(err).Warn("failed to send list message")
	}
}

func listKeyboard(page, skip int, total int64) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var nav []tgbotapi.InlineKeyboardButton
	if page > 1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Previous", fmt.Sprintf("page:%d", page-1)))
	}
	if int64(skip+PageSize) < total {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ➡️", fmt.Sprintf("page:%d", page+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", "ask_delete"),
	))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func (b *Bot) handleAskDelete(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	_ = b.tp.AnswerCallback(cq.ID, "")
	chatID := cq.Message.Chat.ID

	s, err := b.sessions.GetDelete(ctx, cq.From.ID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			_, _ = b.tp.SendText(chatID, "❌ No active list found.", nil)
		} else {
			b.log.WithError(err).Error("failed to load delete session")
		}
		return
	}
	text := fmt.Sprintf("✏️ **Send the movie number to delete (1–%d)**", len(s.Movies))
	_, _ = b.tp.SendText(chatID, text, nil)
}

// handleDeleteNumber interprets a text message as a delete-by-number
// selection. It only applies to admins with an active list; anything
// else falls through to the other text handlers. Reports whether the
// message was consumed.
func (b *Bot) handleDeleteNumber(ctx context.Context, msg *tgbotapi.Message, text string) bool {
	userID := msg.From.ID
	if !b.cfg.IsAdmin(userID) {
		return false
	}
	s, err := b.sessions.GetDelete(ctx, userID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			b.log.WithError(err).Error("failed to load delete session")
		}
		return false
	}

	if !isDigits(text) {
		_, _ = b.tp.SendText(msg.Chat.ID, "❌ Please send a valid number.", nil)
		return true
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > len(s.Movies) {
		_, _ = b.tp.SendText(msg.Chat.ID, "❌ Invalid number.\nPlease choose a number **from this page only**.", nil)
		return true
	}

	movie := s.Movies[n-1]
	s.Selected = &movie
	if err := b.sessions.PutDelete(ctx, userID, s); err != nil {
		b.log.WithError(err).Error("failed to store delete session")
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "cancel_del"),
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm", fmt.Sprintf("confirm_del:%s:%d", movie.ID, s.Page)),
		),
	)
	prompt := fmt.Sprintf("⚠️ **Are you sure you want to delete:**\n\n🎬 **%s**", movie.Name)
	_, _ = b.tp.SendText(msg.Chat.ID, prompt, &kb)
	return true
}

// handleConfirmDelete deletes the confirmed movie and refreshes the
// list on the page the admin was viewing.
func (b *Bot) handleConfirmDelete(ctx context.Context, cq *tgbotapi.CallbackQuery, payload string) {
	_ = b.tp.AnswerCallback(cq.ID, "")
	if !b.cfg.IsAdmin(cq.From.ID) {
		return
	}

	idHex, pageStr, ok := strings.Cut(payload, ":")
	if !ok {
		b.log.WithField("payload", payload).Warn("malformed delete confirmation")
		return
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	if err := b.store.DeleteByID(ctx, idHex); err != nil {
		b.log.WithError(err).Error("failed to delete movie")
		return
	}
	web.DeletesTotal.Inc()
	b.log.WithField("id", idHex).Info("deleted movie")

	if err := b.tp.EditText(cq.Message.Chat.ID, cq.Message.MessageID, "🗑 **Movie deleted successfully!**", nil); err != nil {
		b.log.WithError(err).Warn("failed to edit confirmation message")
	}
	b.listMovies(ctx, cq.From.ID, cq.Message.Chat.ID, cq.Message.MessageID, page)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
