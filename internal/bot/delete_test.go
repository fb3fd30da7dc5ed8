package bot

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmvault-tg-bot/internal/storage"
)

func seedMovies(store *fakeStore, n int) {
	for i := 1; i <= n; i++ {
		store.movies = append(store.movies, storage.Movie{
			ID:      newObjectID(i),
			MovieID: fmt.Sprintf("uuid-%02d", i),
			Name:    fmt.Sprintf("Movie %02d (2020)", i),
		})
	}
}

func TestListFirstPage(t *testing.T) {
	b, tp, store, sessions := newTestBot(t)
	seedMovies(store, 25)

	b.HandleUpdate(update(commandMessage(adminID, testStorageGroupID, "/list")))

	msg := tp.lastText(t)
	assert.Contains(t, msg.text, "🎬 **Total movies stored: 25**")
	assert.Contains(t, msg.text, "1. Movie 01 (2020)")
	assert.Contains(t, msg.text, "10. Movie 10 (2020)")
	assert.NotContains(t, msg.text, "11. Movie 11 (2020)")

	// First page has Next but no Previous, plus the Delete row.
	require.NotNil(t, msg.kb)
	require.Len(t, msg.kb.InlineKeyboard, 2)
	nav := msg.kb.InlineKeyboard[0]
	require.Len(t, nav, 1)
	assert.Equal(t, "Next ➡️", nav[0].Text)
	require.NotNil(t, nav[0].CallbackData)
	assert.Equal(t, "page:2", *nav[0].CallbackData)

	s, err := sessions.GetDelete(context.Background(), adminID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Page)
	require.Len(t, s.Movies, 10)
	assert.Equal(t, "Movie 01 (2020)", s.Movies[0].Name)
}

func TestListLastPageNumbersContinue(t *testing.T) {
	b, tp, store, sessions := newTestBot(t)
	seedMovies(store, 25)

	b.HandleUpdate(callbackUpdate(callback(adminID, testStorageGroupID, "page:3")))

	require.Len(t, tp.edits, 1)
	edit := tp.edits[0]
	assert.Equal(t, 77, edit.messageID)
	assert.Contains(t, edit.text, "21. Movie 21 (2020)")
	assert.Contains(t, edit.text, "25. Movie 25 (2020)")

	// Last page has Previous but no Next.
	nav := edit.kb.InlineKeyboard[0]
	require.Len(t, nav, 1)
	assert.Equal(t, "⬅️ Previous", nav[0].Text)

	s, err := sessions.GetDelete(context.Background(), adminID)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Page)
	assert.Len(t, s.Movies, 5)
}

func TestListEmpty(t *testing.T) {
	b, tp, _, _ := newTestBot(t)

	b.HandleUpdate(update(commandMessage(adminID, testStorageGroupID, "/list")))
	assert.Equal(t, "No movies found.", tp.lastText(t).text)
}

func TestListIgnoresNonAdmin(t *testing.T) {
	b, tp, store, _ := newTestBot(t)
	seedMovies(store, 3)

	b.HandleUpdate(update(commandMessage(regularID, testStorageGroupID, "/list")))
	assert.Empty(t, tp.texts)
}

func TestAskDelete(t *testing.T) {
	b, tp, store, _ := newTestBot(t)
	seedMovies(store, 25)

	b.HandleUpdate(update(commandMessage(adminID, testStorageGroupID, "/list")))
	b.HandleUpdate(callbackUpdate(callback(adminID, testStorageGroupID, "ask_delete")))

	assert.Contains(t, tp.lastText(t).text, "✏️ **Send the movie number to delete (1–10)**")
}

func TestAskDeleteWithoutList(t *testing.T) {
	b, tp, _, _ := newTestBot(t)

	b.HandleUpdate(callbackUpdate(callback(adminID, testStorageGroupID, "ask_delete")))
	assert.Contains(t, tp.allTexts(), "❌ No active list found.")
}

func TestDeleteByNumberConfirmFlow(t *testing.T) {
	b, tp, store, _ := newTestBot(t)
	seedMovies(store, 12)

	b.HandleUpdate(update(commandMessage(adminID, testStorageGroupID, "/list")))
	b.HandleUpdate(update(textMessage(adminID, testStorageGroupID, "3")))

	prompt := tp.lastText(t)
	assert.Contains(t, prompt.text, "⚠️ **Are you sure you want to delete:**")
	assert.Contains(t, prompt.text, "🎬 **Movie 03 (2020)**")
	require.NotNil(t, prompt.kb)
	confirm := prompt.kb.InlineKeyboard[0][1]
	require.NotNil(t, confirm.CallbackData)
	wantData := fmt.Sprintf("confirm_del:%s:1", newObjectID(3).Hex())
	assert.Equal(t, wantData, *confirm.CallbackData)

	b.HandleUpdate(callbackUpdate(callback(adminID, testStorageGroupID, wantData)))

	require.Len(t, store.deletedID, 1)
	assert.Equal(t, newObjectID(3).Hex(), store.deletedID[0])
	require.NotEmpty(t, tp.edits)
	assert.Equal(t, "🗑 **Movie deleted successfully!**", tp.edits[0].text)
	// The same message is refreshed with the updated listing.
	last := tp.edits[len(tp.edits)-1]
	assert.Contains(t, last.text, "🎬 **Total movies stored: 11**")
	assert.NotContains(t, last.text, "Movie 03 (2020)")
}

func TestDeleteSnapshotSurvivesCollectionChanges(t *testing.T) {
	b, tp, store, _ := newTestBot(t)
	seedMovies(store, 5)

	b.HandleUpdate(update(commandMessage(adminID, testStorageGroupID, "/list")))

	// Another admin removes a record after the page was rendered. The
	// numbering shown to this admin still resolves from the snapshot.
	require.NoError(t, store.DeleteByID(context.Background(), newObjectID(1).Hex()))
	store.deletedID = nil

	b.HandleUpdate(update(textMessage(adminID, testStorageGroupID, "2")))
	prompt := tp.lastText(t)
	assert.Contains(t, prompt.text, "🎬 **Movie 02 (2020)**")
}

func TestDeleteByNumberRejectsNonNumeric(t *testing.T) {
	b, tp, store, _ := newTestBot(t)
	seedMovies(store, 5)

	b.HandleUpdate(update(commandMessage(adminID, testStorageGroupID, "/list")))
	b.HandleUpdate(update(textMessage(adminID, testStorageGroupID, "two")))

	assert.Contains(t, tp.allTexts(), "❌ Please send a valid number.")
	assert.Empty(t, store.deletedID)
}

func TestDeleteByNumberRejectsOutOfRange(t *testing.T) {
	b, tp, store, _ := newTestBot(t)
	seedMovies(store, 5)

	b.HandleUpdate(update(commandMessage(adminID, testStorageGroupID, "/list")))
	b.HandleUpdate(update(textMessage(adminID, testStorageGroupID, "9")))

	assert.Contains(t, tp.allTexts(), "❌ Invalid number.\nPlease choose a number **from this page only**.")
	assert.Empty(t, store.deletedID)
}

func TestDigitsWithoutListFallThroughToSearch(t *testing.T) {
	b, tp, store, _ := newTestBot(t)
	seedMovies(store, 1)

	b.HandleUpdate(update(textMessage(adminID, testSearchGroupID, "2020")))

	// No delete session exists, so the digits are treated as a search.
	texts := tp.allTexts()
	assert.NotContains(t, texts, "❌ Please send a valid number.")
	assert.Contains(t, texts, "🎥 **Movie 01 (2020)**")
	assert.Empty(t, store.deletedID)
}

func TestCancelDeleteRemovesPrompt(t *testing.T) {
	b, tp, store, _ := newTestBot(t)
	seedMovies(store, 5)

	b.HandleUpdate(callbackUpdate(callback(adminID, testStorageGroupID, "cancel_del")))

	require.Len(t, tp.deleted, 1)
	assert.Equal(t, [2]int64{testStorageGroupID, 77}, tp.deleted[0])
	assert.Empty(t, store.deletedID)
}

func TestConfirmDeleteIgnoresNonAdmin(t *testing.T) {
	b, _, store, _ := newTestBot(t)
	seedMovies(store, 5)

	data := fmt.Sprintf("confirm_del:%s:1", newObjectID(2).Hex())
	b.HandleUpdate(callbackUpdate(callback(regularID, testStorageGroupID, data)))
	assert.Empty(t, store.deletedID)
}

func TestDeleteSessionSurvivesInStore(t *testing.T) {
	b, _, store, sessions := newTestBot(t)
	seedMovies(store, 5)

	b.HandleUpdate(update(commandMessage(adminID, testStorageGroupID, "/list")))
	b.HandleUpdate(update(textMessage(adminID, testStorageGroupID, "4")))

	s, err := sessions.GetDelete(context.Background(), adminID)
	require.NoError(t, err)
	require.NotNil(t, s.Selected)
	assert.Equal(t, "Movie 04 (2020)", s.Selected.Name)
	assert.Equal(t, newObjectID(4).Hex(), s.Selected.ID)
}
