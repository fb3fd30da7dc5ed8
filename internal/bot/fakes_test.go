package bot

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"filmvault-tg-bot/internal/config"
	"filmvault-tg-bot/internal/session"
	"filmvault-tg-bot/internal/storage"
)

const (
	testStorageGroupID int64 = -100
	testSearchGroupID  int64 = -200
	adminID            int64 = 1
	regularID          int64 = 2
)

type sentText struct {
	chatID int64
	text   string
	kb     *tgbotapi.InlineKeyboardMarkup
}

type sentPhoto struct {
	chatID  int64
	fileID  string
	caption string
	kb      *tgbotapi.InlineKeyboardMarkup
}

type sentDocument struct {
	chatID  int64
	fileID  string
	caption string
}

type editedText struct {
	chatID    int64
	messageID int
	text      string
	kb        *tgbotapi.InlineKeyboardMarkup
}

type fakeTransport struct {
	texts     []sentText
	photos    []sentPhoto
	documents []sentDocument
	edits     []editedText
	deleted   [][2]int64
	callbacks []string
	alerts    []string

	docErr map[string]error

	nextMessageID int
}

func (f *fakeTransport) SendText(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) (int, error) {
	f.texts = append(f.texts, sentText{chatID, text, kb})
	f.nextMessageID++
	return f.nextMessageID, nil
}

func (f *fakeTransport) SendPhoto(chatID int64, fileID, caption string, kb *tgbotapi.InlineKeyboardMarkup) error {
	f.photos = append(f.photos, sentPhoto{chatID, fileID, caption, kb})
	return nil
}

func (f *fakeTransport) SendDocument(chatID int64, fileID, caption string) error {
	if err := f.docErr[fileID]; err != nil {
		return err
	}
	f.documents = append(f.documents, sentDocument{chatID, fileID, caption})
	return nil
}

func (f *fakeTransport) EditText(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) error {
	f.edits = append(f.edits, editedText{chatID, messageID, text, kb})
	return nil
}

func (f *fakeTransport) DeleteMessage(chatID int64, messageID int) error {
	f.deleted = append(f.deleted, [2]int64{chatID, int64(messageID)})
	return nil
}

func (f *fakeTransport) AnswerCallback(callbackID, text string) error {
	f.callbacks = append(f.callbacks, callbackID)
	if text != "" {
		f.alerts = append(f.alerts, text)
	}
	return nil
}

func (f *fakeTransport) DeepLink(payload string) string {
	return "https://t.me/filmvault_bot?start=" + payload
}

func (f *fakeTransport) StartGroupLink() string {
	return "https://t.me/filmvault_bot?startgroup=true"
}

func (f *fakeTransport) Name() string { return "FilmVault" }

func (f *fakeTransport) lastText(t *testing.T) sentText {
	t.Helper()
	if len(f.texts) == 0 {
		t.Fatal("no text messages sent")
	}
	return f.texts[len(f.texts)-1]
}

func (f *fakeTransport) allTexts() []string {
	out := make([]string, 0, len(f.texts))
	for _, m := range f.texts {
		out = append(out, m.text)
	}
	return out
}

type fakeStore struct {
	movies    []storage.Movie
	insertErr error
	inserted  []storage.Movie
	deletedID []string
}

func (f *fakeStore) Insert(_ context.Context, movie *storage.Movie) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if movie.ID.IsZero() {
		movie.ID = newObjectID(len(f.movies) + 1)
	}
	f.movies = append(f.movies, *movie)
	f.inserted = append(f.inserted, *movie)
	return nil
}

func (f *fakeStore) FindByMovieID(_ context.Context, movieID string) (*storage.Movie, error) {
	for i := range f.movies {
		if f.movies[i].MovieID == movieID {
			m := f.movies[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) SearchByName(_ context.Context, query string, limit int) ([]storage.Movie, error) {
	var out []storage.Movie
	for _, m := range f.movies {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(query)) {
			out = append(out, m)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) ListByName(_ context.Context, skip, limit int) ([]storage.Movie, int64, error) {
	sorted := append([]storage.Movie(nil), f.movies...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	total := int64(len(sorted))
	if skip >= len(sorted) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[skip:end], total, nil
}

func (f *fakeStore) DeleteByID(_ context.Context, idHex string) error {
	f.deletedID = append(f.deletedID, idHex)
	for i := range f.movies {
		if f.movies[i].ID.Hex() == idHex {
			f.movies = append(f.movies[:i], f.movies[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.movies)), nil
}

// newObjectID builds a deterministic object id for tests.
func newObjectID(n int) primitive.ObjectID {
	var oid primitive.ObjectID
	copy(oid[:], fmt.Sprintf("%012d", n))
	return oid
}

func newTestBot(t *testing.T) (*Bot, *fakeTransport, *fakeStore, session.Store) {
	t.Helper()
	cfg := &config.Config{
		Token:          "test-token",
		StorageGroupID: testStorageGroupID,
		SearchGroupID:  testSearchGroupID,
		AdminIDs:       map[int64]bool{adminID: true},
		Port:           "8088",
	}
	tp := &fakeTransport{}
	store := &fakeStore{}
	sessions := session.NewMemoryStore()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(cfg, tp, store, sessions, log), tp, store, sessions
}

func textMessage(userID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, FirstName: "Tester"},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}
}

func commandMessage(userID, chatID int64, text string) *tgbotapi.Message {
	msg := textMessage(userID, chatID, text)
	length := len(text)
	if i := strings.Index(text, " "); i > 0 {
		length = i
	}
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}}
	return msg
}

func documentMessage(userID int64, fileID, fileName string) *tgbotapi.Message {
	msg := textMessage(userID, testStorageGroupID, "")
	msg.Document = &tgbotapi.Document{FileID: fileID, FileName: fileName}
	return msg
}

func photoMessage(userID int64, fileID string) *tgbotapi.Message {
	msg := textMessage(userID, testStorageGroupID, "")
	msg.Photo = []tgbotapi.PhotoSize{
		{FileID: fileID + "-small", Width: 90, Height: 60},
		{FileID: fileID, Width: 1280, Height: 720},
		{FileID: fileID + "-mid", Width: 320, Height: 240},
	}
	return msg
}

func callback(userID int64, chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		From: &tgbotapi.User{ID: userID, FirstName: "Tester"},
		Message: &tgbotapi.Message{
			MessageID: 77,
			Chat:      &tgbotapi.Chat{ID: chatID},
		},
		Data: data,
	}
}

func update(msg *tgbotapi.Message) tgbotapi.Update {
	return tgbotapi.Update{Message: msg}
}

func callbackUpdate(cq *tgbotapi.CallbackQuery) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: cq}
}
