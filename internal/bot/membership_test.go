package bot

import (
	"math/rand"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"snegbot/internal/storage/stubs"
)

func TestStatusChange(t *testing.T) {
	testCases := []struct {
		name      string
		old       tgbotapi.ChatMember
		new       tgbotapi.ChatMember
		wasMember bool
		nowMember bool
		changed   bool
	}{
		{
			name:    "nil-equivalent: identical statuses",
			old:     tgbotapi.ChatMember{Status: "member"},
			new:     tgbotapi.ChatMember{Status: "member"},
			changed: false,
		},
		{
			name:      "joined",
			old:       tgbotapi.ChatMember{Status: "left"},
			new:       tgbotapi.ChatMember{Status: "member"},
			wasMember: false, nowMember: true, changed: true,
		},
		{
			name:      "left",
			old:       tgbotapi.ChatMember{Status: "member"},
			new:       tgbotapi.ChatMember{Status: "left"},
			wasMember: true, nowMember: false, changed: true,
		},
		{
			name:      "kicked owner",
			old:       tgbotapi.ChatMember{Status: "creator"},
			new:       tgbotapi.ChatMember{Status: "kicked"},
			wasMember: true, nowMember: false, changed: true,
		},
		{
			name:      "promoted stays a member",
			old:       tgbotapi.ChatMember{Status: "member"},
			new:       tgbotapi.ChatMember{Status: "administrator"},
			wasMember: true, nowMember: true, changed: true,
		},
		{
			name:      "restricted but still in chat",
			old:       tgbotapi.ChatMember{Status: "member"},
			new:       tgbotapi.ChatMember{Status: "restricted", IsMember: true},
			wasMember: true, nowMember: true, changed: true,
		},
		{
			name:      "restricted and out",
			old:       tgbotapi.ChatMember{Status: "member"},
			new:       tgbotapi.ChatMember{Status: "restricted", IsMember: false},
			wasMember: true, nowMember: false, changed: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			was, now, changed := statusChange(&tgbotapi.ChatMemberUpdated{
				OldChatMember: tc.old,
				NewChatMember: tc.new,
			})
			assert.Equal(t, tc.changed, changed)
			if tc.changed {
				assert.Equal(t, tc.wasMember, was)
				assert.Equal(t, tc.nowMember, now)
			}
		})
	}
}

func TestStatusChange_NilUpdate(t *testing.T) {
	_, _, changed := statusChange(nil)
	assert.False(t, changed)
}

func TestChatIndex_AddRemoveNetNoop(t *testing.T) {
	index := NewChatIndex()

	index.Add(CategoryGroup, -100)
	assert.True(t, index.Contains(CategoryGroup, -100))

	index.Remove(CategoryGroup, -100)
	assert.False(t, index.Contains(CategoryGroup, -100))
	assert.Empty(t, index.IDs(CategoryGroup))
}

func TestChatIndex_IdempotentAddSortedIDs(t *testing.T) {
	index := NewChatIndex()

	index.Add(CategoryUser, 30)
	index.Add(CategoryUser, 10)
	index.Add(CategoryUser, 20)
	index.Add(CategoryUser, 10)

	assert.Equal(t, []int64{10, 20, 30}, index.IDs(CategoryUser))
	assert.Empty(t, index.IDs(CategoryGroup))
}

func TestHandleMyChatMember_TracksGroups(t *testing.T) {
	b := newTestBot(t)

	joined := &tgbotapi.ChatMemberUpdated{
		Chat:          tgbotapi.Chat{ID: -200, Type: "supergroup", Title: "Снежный чат"},
		From:          tgbotapi.User{ID: 1, FirstName: "Вася"},
		OldChatMember: tgbotapi.ChatMember{Status: "left"},
		NewChatMember: tgbotapi.ChatMember{Status: "member"},
	}
	b.handleMyChatMember(joined)
	assert.True(t, b.chats.Contains(CategoryGroup, -200))

	removed := &tgbotapi.ChatMemberUpdated{
		Chat:          tgbotapi.Chat{ID: -200, Type: "supergroup", Title: "Снежный чат"},
		From:          tgbotapi.User{ID: 1, FirstName: "Вася"},
		OldChatMember: tgbotapi.ChatMember{Status: "member"},
		NewChatMember: tgbotapi.ChatMember{Status: "kicked"},
	}
	b.handleMyChatMember(removed)
	assert.False(t, b.chats.Contains(CategoryGroup, -200))
}

func TestHandleMyChatMember_UnchangedStatusIsNoop(t *testing.T) {
	b := newTestBot(t)

	b.handleMyChatMember(&tgbotapi.ChatMemberUpdated{
		Chat:          tgbotapi.Chat{ID: 77, Type: "private"},
		OldChatMember: tgbotapi.ChatMember{Status: "member"},
		NewChatMember: tgbotapi.ChatMember{Status: "member"},
	})
	assert.False(t, b.chats.Contains(CategoryUser, 77))
}

func TestHandleMyChatMember_PromotionKeepsChatTracked(t *testing.T) {
	b := newTestBot(t)
	b.chats.Add(CategoryGroup, -300)

	// member -> administrator is a status change but not a membership change
	b.handleMyChatMember(&tgbotapi.ChatMemberUpdated{
		Chat:          tgbotapi.Chat{ID: -300, Type: "group"},
		OldChatMember: tgbotapi.ChatMember{Status: "member"},
		NewChatMember: tgbotapi.ChatMember{Status: "administrator"},
	})
	assert.True(t, b.chats.Contains(CategoryGroup, -300))
}

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, CategoryUser, categoryFor(&tgbotapi.Chat{Type: "private"}))
	assert.Equal(t, CategoryGroup, categoryFor(&tgbotapi.Chat{Type: "group"}))
	assert.Equal(t, CategoryGroup, categoryFor(&tgbotapi.Chat{Type: "supergroup"}))
	assert.Equal(t, CategoryChannel, categoryFor(&tgbotapi.Chat{Type: "channel"}))
}

// newTestBot builds a bot wired for internal logic tests: no API connection,
// mock storage, nop logger, deterministic randomness.
func newTestBot(t *testing.T) *Bot {
	t.Helper()
	return &Bot{
		api:    nil, // Not needed for internal logic tests
		db:     stubs.NewMockDB(),
		chats:  NewChatIndex(),
		admins: gocache.New(adminCacheTTL, adminCacheTTL),
		logger: zap.NewNop(),
		now:    time.Now,
		rng:    rand.New(rand.NewSource(1)),
	}
}
