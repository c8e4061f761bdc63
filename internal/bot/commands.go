package bot

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"snegbot/internal/models"
)

// handleHelp lists the available commands
func (b *Bot) handleHelp(message *tgbotapi.Message) {
	text := `Список команд:
/help — этот список
/call — позвать участников чата
/show_chats — чаты, где я есть
/show_admins — список админов
снег — зачерпнуть ложку снега (раз в 6 часов)
моя стата снега — твой счёт
стата снега — стата по чату
пинг — проверка связи`

	b.reply(message.Chat.ID, text)
}

// handlePing replies with a fixed acknowledgement
func (b *Bot) handlePing(message *tgbotapi.Message) {
	b.reply(message.Chat.ID, "понг 🏓")
}

// handleCall posts one decorated mention link per administrator
func (b *Bot) handleCall(message *tgbotapi.Message) {
	b.logger.Info("Member list requested",
		zap.String("user", displayName(message.From)),
		zap.String("chat_title", message.Chat.Title))

	if b.api != nil {
		count, err := b.api.GetChatMembersCount(tgbotapi.ChatMemberCountConfig{
			ChatConfig: tgbotapi.ChatConfig{ChatID: message.Chat.ID},
		})
		if err != nil {
			b.logger.Warn("Failed to get chat member count", zap.Error(err))
		} else {
			b.logger.Info("Chat member count",
				zap.String("chat_title", message.Chat.Title), zap.Int("count", count))
		}
	}

	admins, err := b.chatAdministrators(message.Chat.ID)
	if err != nil {
		b.logger.Error("Failed to get administrators", zap.Error(err), zap.Int64("chat_id", message.Chat.ID))
		b.reply(message.Chat.ID, "Не удалось получить список участников.")
		return
	}

	b.replyHTML(message.Chat.ID, buildCallMessage(admins))
}

// buildCallMessage renders a decorated mention link for every administrator.
// Decoration wraps around the table, it never runs out.
func buildCallMessage(admins []tgbotapi.ChatMember) string {
	var sb strings.Builder
	for _, admin := range admins {
		fmt.Fprintf(&sb, ` <a href="tg://user?id=%d">%s</a>`, admin.User.ID, DecorationFor(admin.User.ID))
	}
	return sb.String()
}

// handleShowAdmins posts the administrator list with custom titles
func (b *Bot) handleShowAdmins(message *tgbotapi.Message) {
	b.logger.Info("Admin list requested",
		zap.String("user", displayName(message.From)),
		zap.String("chat_title", message.Chat.Title))

	admins, err := b.chatAdministrators(message.Chat.ID)
	if err != nil {
		b.logger.Error("Failed to get administrators", zap.Error(err), zap.Int64("chat_id", message.Chat.ID))
		b.reply(message.Chat.ID, "Не удалось получить список админов.")
		return
	}

	b.replyHTML(message.Chat.ID, buildAdminList(admins))
}

// buildAdminList renders one mention link per administrator, prefixed with
// the custom title when one is set.
func buildAdminList(admins []tgbotapi.ChatMember) string {
	var sb strings.Builder
	for _, admin := range admins {
		label := DecorationFor(admin.User.ID)
		if admin.CustomTitle != "" {
			label = html.EscapeString(admin.CustomTitle) + label
		}
		fmt.Fprintf(&sb, "<a href=\"tg://user?id=%d\">%s</a>\n", admin.User.ID, label)
	}
	return sb.String()
}

// handleShowChats reports which chats the bot is in
func (b *Bot) handleShowChats(message *tgbotapi.Message) {
	text := fmt.Sprintf(
		"@%s в настоящее время находится в диалоге с пользователями %s.\nБолее того, он является членом групп с ID %s\nи администратором в каналах с ID %s.",
		b.username(),
		joinIDs(b.chats.IDs(CategoryUser)),
		joinIDs(b.chats.IDs(CategoryGroup)),
		joinIDs(b.chats.IDs(CategoryChannel)))
	b.reply(message.Chat.ID, text)
}

// handleMyStats reports the caller's own counter
func (b *Bot) handleMyStats(ctx context.Context, message *tgbotapi.Message) {
	state, err := b.db.GetUserState(ctx, message.Chat.ID, message.From.ID)
	if err != nil {
		b.logger.Error("Failed to load user state", zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID), zap.Int64("user_id", message.From.ID))
		b.reply(message.Chat.ID, "Не удалось достать стату. Попробуй ещё раз.")
		return
	}
	b.reply(message.Chat.ID, buildMyStatsReply(state))
}

func buildMyStatsReply(state *models.UserState) string {
	if state == nil {
		return "Пока нет данных. Отправь «снег», чтобы начать."
	}
	return fmt.Sprintf("В твоей копилке %d ложек снега.", state.Counter)
}

// handleChatStats posts the chat leaderboard over titled administrators
func (b *Bot) handleChatStats(ctx context.Context, message *tgbotapi.Message) {
	admins, err := b.chatAdministrators(message.Chat.ID)
	if err != nil {
		b.logger.Error("Failed to get administrators", zap.Error(err), zap.Int64("chat_id", message.Chat.ID))
		b.reply(message.Chat.ID, "Не удалось достать стату. Попробуй ещё раз.")
		return
	}

	ids := make([]int64, 0, len(admins))
	for _, admin := range admins {
		if admin.CustomTitle != "" {
			ids = append(ids, admin.User.ID)
		}
	}

	states, err := b.db.ListUserStates(ctx, message.Chat.ID, ids)
	if err != nil {
		b.logger.Error("Failed to list user states", zap.Error(err), zap.Int64("chat_id", message.Chat.ID))
		b.reply(message.Chat.ID, "Не удалось достать стату. Попробуй ещё раз.")
		return
	}

	b.reply(message.Chat.ID, buildLeaderboard(admins, states))
}

// buildLeaderboard lists administrators that have both a custom title and a
// recorded state row. Everyone else stays out of the list and the total.
func buildLeaderboard(admins []tgbotapi.ChatMember, states []models.UserState) string {
	byUser := make(map[int64]models.UserState, len(states))
	for _, state := range states {
		byUser[state.UserID] = state
	}

	var sb strings.Builder
	sb.WriteString("Стата снега по чату:\n")
	total, listed := 0, 0
	for _, admin := range admins {
		if admin.CustomTitle == "" {
			continue
		}
		state, ok := byUser[admin.User.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%s: %d\n", admin.CustomTitle, state.Counter)
		total += state.Counter
		listed++
	}

	if listed == 0 {
		return "Пока нет данных для статы снега."
	}
	fmt.Fprintf(&sb, "Итого: %d ложек снега.", total)
	return sb.String()
}

// handleStartPrivateChat welcomes the first message of a new private chat.
// Telegram issues no my_chat_member update when a user first opens a private
// chat with the bot, so it has to be tracked here.
func (b *Bot) handleStartPrivateChat(message *tgbotapi.Message) {
	chat := message.Chat
	if !chat.IsPrivate() || b.chats.Contains(CategoryUser, chat.ID) {
		return
	}

	b.logger.Info("New private chat",
		zap.String("user", displayName(message.From)), zap.Int64("chat_id", chat.ID))
	b.chats.Add(CategoryUser, chat.ID)

	b.reply(chat.ID, fmt.Sprintf(
		"Добро пожаловать, %s. Используй команду /show_chats чтобы увидеть, в каких чатах я есть.",
		displayName(message.From)))
}
