package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// reply sends a plain text message to the chat.
func (b *Bot) reply(chatID int64, text string) {
	if b.api == nil {
		return // For testing
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

// replyHTML sends a message rendered in Telegram's HTML parse mode.
func (b *Bot) replyHTML(chatID int64, text string) {
	if b.api == nil {
		return // For testing
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

// displayName renders a user's full name the way Telegram clients do.
func displayName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	if user.LastName == "" {
		return user.FirstName
	}
	return user.FirstName + " " + user.LastName
}

// mentionHTML renders an HTML mention link for the user.
func mentionHTML(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, user.ID, html.EscapeString(displayName(user)))
}

// joinIDs renders chat ids as a comma-separated list.
func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
