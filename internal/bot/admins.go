package bot

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	gocache "github.com/patrickmn/go-cache"
)

const adminCacheTTL = time.Minute

// chatAdministrators returns the chat's administrator list. Results are
// cached briefly so back-to-back list commands don't hammer the API.
func (b *Bot) chatAdministrators(chatID int64) ([]tgbotapi.ChatMember, error) {
	key := strconv.FormatInt(chatID, 10)
	if cached, ok := b.admins.Get(key); ok {
		return cached.([]tgbotapi.ChatMember), nil
	}

	if b.api == nil {
		return nil, nil // For testing
	}

	members, err := b.api.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get chat administrators: %w", err)
	}

	b.admins.Set(key, members, gocache.DefaultExpiration)
	return members, nil
}
