package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	spoonCooldown = 6 * time.Hour
	maxSpoonDraw  = 10
)

// keyedMutex serializes the cooldown check-and-set per (chat, user) pair.
// The updates channel is consumed serially, but webhook mode dispatches a
// goroutine per request, so the read-check-write needs its own guard.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[spoonKey]*sync.Mutex
}

type spoonKey struct {
	chatID int64
	userID int64
}

func (k *keyedMutex) lock(chatID, userID int64) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[spoonKey]*sync.Mutex)
	}
	m, ok := k.locks[spoonKey{chatID, userID}]
	if !ok {
		m = &sync.Mutex{}
		k.locks[spoonKey{chatID, userID}] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// handleSnow runs the cooldown-gated snow spoon draw.
func (b *Bot) handleSnow(ctx context.Context, message *tgbotapi.Message) {
	chatID, userID := message.Chat.ID, message.From.ID

	unlock := b.spoonLocks.lock(chatID, userID)
	defer unlock()

	state, err := b.db.EnsureUserState(ctx, chatID, userID)
	if err != nil {
		b.logger.Error("Failed to load user state", zap.Error(err),
			zap.Int64("chat_id", chatID), zap.Int64("user_id", userID))
		b.reply(chatID, "Не получилось достать ложку. Попробуй ещё раз.")
		return
	}

	now := b.now().UTC()
	if remaining, cooling := cooldownRemaining(state.LastSpoonAt, now); cooling {
		b.reply(chatID, buildCooldownReply(remaining))
		return
	}

	amount := b.rng.Intn(maxSpoonDraw) + 1
	if err := b.db.GrantSpoons(ctx, chatID, userID, amount, now); err != nil {
		b.logger.Error("Failed to grant spoons", zap.Error(err),
			zap.Int64("chat_id", chatID), zap.Int64("user_id", userID))
		b.reply(chatID, "Не получилось достать ложку. Попробуй ещё раз.")
		return
	}

	b.logger.Info("Spoons granted",
		zap.Int64("chat_id", chatID), zap.Int64("user_id", userID), zap.Int("amount", amount))
	b.reply(chatID, fmt.Sprintf("❄️ Ты зачерпнул %d ложек снега! Всего: %d.", amount, state.Counter+amount))
}

// cooldownRemaining reports how long is left before the next draw is
// allowed. A nil last draw means the draw is allowed immediately.
func cooldownRemaining(last *time.Time, now time.Time) (time.Duration, bool) {
	if last == nil {
		return 0, false
	}
	elapsed := now.Sub(*last)
	if elapsed >= spoonCooldown {
		return 0, false
	}
	return spoonCooldown - elapsed, true
}

func buildCooldownReply(remaining time.Duration) string {
	h := int(remaining / time.Hour)
	m := int(remaining/time.Minute) % 60
	s := int(remaining/time.Second) % 60
	return fmt.Sprintf("Слишком рано! Следующая ложка снега будет доступна через %dч %dм %dс.", h, m, s)
}
