package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"filmvault-tg-bot/internal/web"
)

// handleSearch treats any plain text in the search group as a query and
// replies with a preview card per match.
func (b *Bot) handleSearch(ctx context.Context, msg *tgbotapi.Message, query string) {
	if query == "" {
		_, _ = b.tp.SendText(msg.Chat.ID, "🚨 Provide a movie name to search.", nil)
		return
	}
	web.SearchesTotal.Inc()

	movies, err := b.store.SearchByName(ctx, query, searchLimit)
	if err != nil {
		b.log.WithError(err).Error("search failed")
		_, _ = b.tp.SendText(msg.Chat.ID, "❌ An unexpected error occurred. Please try again later.", nil)
		return
	}
	if len(movies) == 0 {
		text := fmt.Sprintf("🎬 No movies found for '%s'. Try a different search term.", query)
		_, _ = b.tp.SendText(msg.Chat.ID, text, nil)
		return
	}
	for i := range movies {
		b.sendPreview(&movies[i], msg.Chat.ID)
	}
}
