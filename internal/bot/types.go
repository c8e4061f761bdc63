package bot

import (
	"math/rand"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"snegbot/internal/storage"
)

// Bot represents the Telegram bot wrapper
type Bot struct {
	api    *tgbotapi.BotAPI
	db     storage.Storage
	chats  *ChatIndex
	admins *gocache.Cache
	logger *zap.Logger

	// now and rng are swapped out in tests
	now func() time.Time
	rng *rand.Rand

	spoonLocks keyedMutex
}
