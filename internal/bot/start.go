package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"filmvault-tg-bot/internal/storage"
)

// handleStart serves /start. With a deep-link payload it delivers the
// referenced movie straight to the chat; without one it shows the home
// menu.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	payload := strings.TrimSpace(msg.CommandArguments())
	if payload != "" {
		movie, err := b.store.FindByMovieID(ctx, payload)
		if err != nil {
			b.log.WithError(err).Error("deep link lookup failed")
			return
		}
		if movie != nil {
			b.deliverMovie(msg.Chat.ID, movie)
			return
		}
	}
	b.sendHomeMenu(msg.Chat.ID, 0, msg.From.FirstName)
}

// deliverMovie sends the poster card and then every stored file.
// Delivery is best effort; one failed document does not stop the rest.
func (b *Bot) deliverMovie(chatID int64, movie *storage.Movie) {
	if movie.Media.Image.FileID != "" {
		caption := fmt.Sprintf("🎥 **%s**", movie.Name)
		if err := b.tp.SendPhoto(chatID, movie.Media.Image.FileID, caption, nil); err != nil {
			b.log.WithError(err).Warnf("failed to send poster for %q", movie.Name)
		}
	}
	for _, doc := range movie.Media.Documents {
		if err := b.tp.SendDocument(chatID, doc.FileID, ""); err != nil {
			b.log.WithError(err).Warnf("failed to send document for %q", movie.Name)
		}
	}
}

// handleMovieFiles serves the Download button on a preview card,
// sending the files to the user's private chat.
func (b *Bot) handleMovieFiles(ctx context.Context, cq *tgbotapi.CallbackQuery, movieID string) {
	_ = b.tp.AnswerCallback(cq.ID, "")
	chatID := cq.Message.Chat.ID

	movie, err := b.store.FindByMovieID(ctx, movieID)
	if err != nil {
		b.log.WithError(err).Error("movie lookup failed")
		_, _ = b.tp.SendText(chatID, "❌ An error occurred while fetching the movie files.", nil)
		return
	}
	if movie == nil || len(movie.Media.Documents) == 0 {
		_, _ = b.tp.SendText(chatID, "❌ No files found for this movie.", nil)
		return
	}

	_, _ = b.tp.SendText(chatID, fmt.Sprintf("📤 Sending files for **%s**", movie.Name), nil)
	for _, doc := range movie.Media.Documents {
		name := doc.FileName
		if name == "" {
			name = "movie_file"
		}
		if err := b.tp.SendDocument(cq.From.ID, doc.FileID, fmt.Sprintf("🎥 %s", name)); err != nil {
			b.log.WithError(err).Warnf("failed to send document for %q", movie.Name)
		}
	}
	_, _ = b.tp.SendText(chatID, "✅ All files have been sent!", nil)
}
