package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snegbot/internal/models"
)

func TestBuildMyStatsReply(t *testing.T) {
	assert.Equal(t, "Пока нет данных. Отправь «снег», чтобы начать.", buildMyStatsReply(nil))
	assert.Equal(t, "В твоей копилке 7 ложек снега.",
		buildMyStatsReply(&models.UserState{ChatID: 1, UserID: 42, Counter: 7}))
}

func TestBuildLeaderboard(t *testing.T) {
	admins := []tgbotapi.ChatMember{
		{User: &tgbotapi.User{ID: 10}, Status: "administrator", CustomTitle: "Снежный король"},
		{User: &tgbotapi.User{ID: 20}, Status: "administrator", CustomTitle: "Лопата"},
		{User: &tgbotapi.User{ID: 30}, Status: "administrator"}, // no title
		{User: &tgbotapi.User{ID: 40}, Status: "creator", CustomTitle: "Шеф"},
	}
	states := []models.UserState{
		{ChatID: 1, UserID: 10, Counter: 12},
		{ChatID: 1, UserID: 20, Counter: 5},
		{ChatID: 1, UserID: 30, Counter: 100}, // untitled, excluded
		// user 40 is titled but has no row, excluded
	}

	text := buildLeaderboard(admins, states)

	assert.Contains(t, text, "Снежный король: 12")
	assert.Contains(t, text, "Лопата: 5")
	assert.NotContains(t, text, "100")
	assert.NotContains(t, text, "Шеф")
	// Sum covers exactly the listed administrators
	assert.Contains(t, text, "Итого: 17 ложек снега.")
}

func TestBuildLeaderboard_Empty(t *testing.T) {
	admins := []tgbotapi.ChatMember{
		{User: &tgbotapi.User{ID: 30}, Status: "administrator"},
	}
	assert.Equal(t, "Пока нет данных для статы снега.", buildLeaderboard(admins, nil))
}

func TestBuildCallMessage(t *testing.T) {
	admins := []tgbotapi.ChatMember{
		{User: &tgbotapi.User{ID: 5}},
		{User: &tgbotapi.User{ID: 5 + int64(len(decorations))}},
	}

	text := buildCallMessage(admins)

	assert.Contains(t, text, `<a href="tg://user?id=5">`)
	// Same residue, same decoration for both links
	assert.Equal(t, 2, strings.Count(text, DecorationFor(5)))
}

func TestBuildAdminList(t *testing.T) {
	admins := []tgbotapi.ChatMember{
		{User: &tgbotapi.User{ID: 10}, CustomTitle: "Снежный <король>"},
		{User: &tgbotapi.User{ID: 20}},
	}

	text := buildAdminList(admins)

	// Custom title prefixes the decoration and is HTML-escaped
	assert.Contains(t, text, "Снежный &lt;король&gt;"+DecorationFor(10))
	assert.Contains(t, text, `<a href="tg://user?id=20">`+DecorationFor(20)+"</a>")
}

func TestHandleStartPrivateChat_WelcomesOnce(t *testing.T) {
	b := newTestBot(t)

	message := &tgbotapi.Message{
		From: &tgbotapi.User{ID: 42, FirstName: "Вася"},
		Chat: &tgbotapi.Chat{ID: 42, Type: "private"},
		Text: "привет",
	}

	b.handleMessage(message)
	assert.True(t, b.chats.Contains(CategoryUser, 42))

	// A later unknown message must not re-welcome; the set already has the chat
	b.handleMessage(message)
	assert.Len(t, b.chats.IDs(CategoryUser), 1)
}

func TestHandleStartPrivateChat_IgnoresGroups(t *testing.T) {
	b := newTestBot(t)

	b.handleMessage(&tgbotapi.Message{
		From: &tgbotapi.User{ID: 42, FirstName: "Вася"},
		Chat: &tgbotapi.Chat{ID: -100, Type: "supergroup"},
		Text: "привет",
	})

	assert.Empty(t, b.chats.IDs(CategoryUser))
	assert.Empty(t, b.chats.IDs(CategoryGroup))
}

func TestHandleMessage_SnowScenario(t *testing.T) {
	// The full flow: first draw records a counter, a repeat within the
	// window is rejected, stats report the recorded value.
	b := newTestBot(t)
	ctx := context.Background()

	t0 := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return t0 }

	message := &tgbotapi.Message{
		From: &tgbotapi.User{ID: 42, FirstName: "Вася"},
		Chat: &tgbotapi.Chat{ID: 1, Type: "supergroup"},
		Text: "снег",
	}
	b.handleMessage(message)

	state, err := b.db.GetUserState(ctx, 1, 42)
	require.NoError(t, err)
	require.NotNil(t, state)
	drawn := state.Counter

	b.now = func() time.Time { return t0.Add(time.Hour) }
	b.handleMessage(message)

	state, err = b.db.GetUserState(ctx, 1, 42)
	require.NoError(t, err)
	assert.Equal(t, drawn, state.Counter)
	assert.Equal(t, t0, *state.LastSpoonAt)

	remaining, cooling := cooldownRemaining(state.LastSpoonAt, t0.Add(time.Hour))
	assert.True(t, cooling)
	assert.Equal(t, 5*time.Hour, remaining)

	assert.Equal(t, buildMyStatsReply(state), buildMyStatsReply(&models.UserState{Counter: drawn}))
}

func TestHandleMessage_PanicRecovery(t *testing.T) {
	b := newTestBot(t)
	b.db = nil // force a panic inside the snow handler

	message := &tgbotapi.Message{
		From: &tgbotapi.User{ID: 42},
		Chat: &tgbotapi.Chat{ID: 1, Type: "supergroup"},
		Text: "снег",
	}

	assert.NotPanics(t, func() { b.handleMessage(message) })
}

func TestHandleMessage_IgnoresMessagesWithoutSender(t *testing.T) {
	b := newTestBot(t)

	assert.NotPanics(t, func() {
		b.handleMessage(&tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: -100, Type: "channel"},
			Text: "снег",
		})
	})
}
