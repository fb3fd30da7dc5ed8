package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"filmvault-tg-bot/internal/session"
	"filmvault-tg-bot/internal/storage"
	"filmvault-tg-bot/internal/title"
	"filmvault-tg-bot/internal/web"
)

func (b *Bot) uploadSession(ctx context.Context, userID int64) (*session.UploadSession, error) {
	s, err := b.sessions.GetUpload(ctx, userID)
	if errors.Is(err, session.ErrNotFound) {
		return &session.UploadSession{}, nil
	}
	return s, err
}

// receiveDocument handles a movie file posted in the storage group. The
// first file's normalized name becomes the movie name; admins get a
// chance to edit it before the record is saved.
func (b *Bot) receiveDocument(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	s, err := b.uploadSession(ctx, userID)
	if err != nil {
		b.log.WithError(err).Error("failed to load upload session")
		return
	}

	cleaned := title.Normalize(msg.Document.FileName)
	s.Files = append(s.Files, session.FileRef{
		FileID:   msg.Document.FileID,
		FileName: cleaned,
	})
	if s.MovieName == "" {
		s.MovieName = cleaned
	}

	if b.cfg.IsAdmin(userID) {
		if err := b.sessions.PutUpload(ctx, userID, s); err != nil {
			b.log.WithError(err).Error("failed to store upload session")
			return
		}
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✏️ Edit Name", "edit_name"),
				tgbotapi.NewInlineKeyboardButtonData("✅ Continue", "continue_name"),
			),
		)
		text := fmt.Sprintf("🎬 Detected Movie Name:\n\n**%s**\n\nEdit or continue?", cleaned)
		if _, err := b.tp.SendText(msg.Chat.ID, text, &kb); err != nil {
			b.log.WithError(err).Warn("failed to send name prompt")
		}
		return
	}

	if _, err := b.tp.SendText(msg.Chat.ID, fmt.Sprintf("✅ File received: %s", cleaned), nil); err != nil {
		b.log.WithError(err).Warn("failed to ack file")
	}
	b.tryPersist(ctx, userID, msg.Chat.ID, s)
}

// receivePhoto attaches the poster. Telegram sends several sizes; the
// largest by area wins. A later photo replaces an earlier one.
func (b *Bot) receivePhoto(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	s, err := b.uploadSession(ctx, userID)
	if err != nil {
		b.log.WithError(err).Error("failed to load upload session")
		return
	}

	largest := msg.Photo[0]
	for _, ps := range msg.Photo[1:] {
		if ps.Width*ps.Height > largest.Width*largest.Height {
			largest = ps
		}
	}
	s.Image = &session.ImageRef{
		FileID: largest.FileID,
		Width:  largest.Width,
		Height: largest.Height,
	}

	if _, err := b.tp.SendText(msg.Chat.ID, "🖼 Image received", nil); err != nil {
		b.log.WithError(err).Warn("failed to ack image")
	}

	if b.cfg.IsAdmin(userID) && s.AwaitingNameEdit {
		if err := b.sessions.PutUpload(ctx, userID, s); err != nil {
			b.log.WithError(err).Error("failed to store upload session")
		}
		return
	}
	b.tryPersist(ctx, userID, msg.Chat.ID, s)
}

// handleNameDecision processes the Edit Name / Continue buttons.
func (b *Bot) handleNameDecision(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	_ = b.tp.AnswerCallback(cq.ID, "")
	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	s, err := b.sessions.GetUpload(ctx, userID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			_, _ = b.tp.SendText(chatID, "❌ Session expired. Please restart the upload process.", nil)
		} else {
			b.log.WithError(err).Error("failed to load upload session")
		}
		return
	}

	switch cq.Data {
	case "edit_name":
		s.AwaitingNameEdit = true
		if err := b.sessions.PutUpload(ctx, userID, s); err != nil {
			b.log.WithError(err).Error("failed to store upload session")
			return
		}
		_, _ = b.tp.SendText(chatID, "✏️ Please send the new movie name:", nil)
	case "continue_name":
		s.AwaitingNameEdit = false
		if err := b.sessions.PutUpload(ctx, userID, s); err != nil {
			b.log.WithError(err).Error("failed to store upload session")
			return
		}
		_, _ = b.tp.SendText(chatID, fmt.Sprintf("✅ Name confirmed: **%s**", s.MovieName), nil)
		b.tryPersist(ctx, userID, chatID, s)
	}
}

// handleNameText consumes a storage-group text message as the new movie
// name when the sender has a pending name edit. Reports whether the
// message was consumed.
func (b *Bot) handleNameText(ctx context.Context, msg *tgbotapi.Message, text string) bool {
	if msg.Chat.ID != b.cfg.StorageGroupID {
		return false
	}
	userID := msg.From.ID
	s, err := b.sessions.GetUpload(ctx, userID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			b.log.WithError(err).Error("failed to load upload session")
		}
		return false
	}
	if !s.AwaitingNameEdit {
		return false
	}

	s.MovieName = strings.TrimSpace(text)
	s.AwaitingNameEdit = false
	if err := b.sessions.PutUpload(ctx, userID, s); err != nil {
		b.log.WithError(err).Error("failed to store upload session")
		return true
	}
	_, _ = b.tp.SendText(msg.Chat.ID, fmt.Sprintf("✅ Movie name updated to:\n\n**%s**", s.MovieName), nil)
	b.tryPersist(ctx, userID, msg.Chat.ID, s)
	return true
}

// tryPersist saves the movie once the session is complete. On failure
// the session is kept so the admin can retry; on success it is dropped
// and a preview goes to the search group.
func (b *Bot) tryPersist(ctx context.Context, userID, chatID int64, s *session.UploadSession) {
	if !s.Ready() {
		if err := b.sessions.PutUpload(ctx, userID, s); err != nil {
			b.log.WithError(err).Error("failed to store upload session")
		}
		return
	}

	movie := &storage.Movie{
		MovieID: uuid.NewString(),
		Name:    s.MovieName,
		Media: storage.Media{
			Documents: make([]storage.Document, 0, len(s.Files)),
			Image: storage.Image{
				FileID: s.Image.FileID,
				Width:  s.Image.Width,
				Height: s.Image.Height,
			},
		},
	}
	for _, f := range s.Files {
		movie.Media.Documents = append(movie.Media.Documents, storage.Document{
			FileID:   f.FileID,
			FileName: f.FileName,
		})
	}

	if err := b.store.Insert(ctx, movie); err != nil {
		web.PersistFailures.Inc()
		b.log.WithError(err).Error("failed to insert movie")
		if err := b.sessions.PutUpload(ctx, userID, s); err != nil {
			b.log.WithError(err).Error("failed to store upload session")
		}
		_, _ = b.tp.SendText(chatID, "❌ Failed to add the movie. Please try again later.", nil)
		return
	}

	web.PersistsTotal.Inc()
	b.log.WithField("movie_id", movie.MovieID).Infof("added movie %q", movie.Name)
	_, _ = b.tp.SendText(chatID, fmt.Sprintf("✅ Successfully added movie: %s", movie.Name), nil)
	if b.cfg.SearchGroupID != 0 {
		b.sendPreview(movie, b.cfg.SearchGroupID)
	}
	if err := b.sessions.DropUpload(ctx, userID); err != nil {
		b.log.WithError(err).Error("failed to drop upload session")
	}
}

// sendPreview posts a movie card with a deep-link Download button.
func (b *Bot) sendPreview(movie *storage.Movie, chatID int64) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🎬 Download", b.tp.DeepLink(movie.MovieID)),
		),
	)
	caption := fmt.Sprintf("🎥 **%s**", movie.Name)
	if movie.Media.Image.FileID != "" {
		if err := b.tp.SendPhoto(chatID, movie.Media.Image.FileID, caption, &kb); err != nil {
			b.log.WithError(err).Warnf("failed to send preview for %q", movie.Name)
		}
		return
	}
	if _, err := b.tp.SendText(chatID, caption, &kb); err != nil {
		b.log.WithError(err).Warnf("failed to send preview for %q", movie.Name)
	}
}
