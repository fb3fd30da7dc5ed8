// Package bot routes Telegram updates and implements the archive's
// upload, search, list and delete flows.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"filmvault-tg-bot/internal/config"
	"filmvault-tg-bot/internal/session"
	"filmvault-tg-bot/internal/storage"
)

const (
	// PageSize is how many movies one list page shows.
	PageSize = 10

	searchLimit = 10
)

// MovieStore is the persistence surface the handlers need.
type MovieStore interface {
	Insert(ctx context.Context, movie *storage.Movie) error
	FindByMovieID(ctx context.Context, movieID string) (*storage.Movie, error)
	SearchByName(ctx context.Context, query string, limit int) ([]storage.Movie, error)
	ListByName(ctx context.Context, skip, limit int) ([]storage.Movie, int64, error)
	DeleteByID(ctx context.Context, idHex string) error
	Count(ctx context.Context) (int64, error)
}

// Transport is the Telegram surface the handlers need.
type Transport interface {
	SendText(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) (int, error)
	SendPhoto(chatID int64, fileID, caption string, kb *tgbotapi.InlineKeyboardMarkup) error
	SendDocument(chatID int64, fileID, caption string) error
	EditText(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) error
	DeleteMessage(chatID int64, messageID int) error
	AnswerCallback(callbackID, text string) error
	DeepLink(payload string) string
	StartGroupLink() string
	Name() string
}

type Bot struct {
	cfg      *config.Config
	tp       Transport
	store    MovieStore
	sessions session.Store
	log      *logrus.Logger
}

func New(cfg *config.Config, tp Transport, store MovieStore, sessions session.Store, log *logrus.Logger) *Bot {
	return &Bot{
		cfg:      cfg,
		tp:       tp,
		store:    store,
		sessions: sessions,
		log:      log,
	}
}
