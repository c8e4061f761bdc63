package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleMessage routes a single message to its command handler
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
			b.reply(message.Chat.ID, "Что-то пошло не так. Попробуй ещё раз.")
		}
	}()

	if message.From == nil || message.Chat == nil {
		return
	}

	ctx := context.Background()

	switch Resolve(message.Text, b.username()) {
	case CommandHelp:
		b.handleHelp(message)
	case CommandCall:
		b.handleCall(message)
	case CommandShowChats:
		b.handleShowChats(message)
	case CommandShowAdmins:
		b.handleShowAdmins(message)
	case CommandSnow:
		b.handleSnow(ctx, message)
	case CommandMyStats:
		b.handleMyStats(ctx, message)
	case CommandChatStats:
		b.handleChatStats(ctx, message)
	case CommandPing:
		b.handlePing(message)
	case CommandStart:
		b.handleStartPrivateChat(message)
	default:
		// Unrecognized text only matters as the opening message of a new
		// private chat.
		b.handleStartPrivateChat(message)
	}
}
