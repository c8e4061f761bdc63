package bot

import (
	"fmt"
	"sort"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// ChatCategory groups the chats the bot participates in.
type ChatCategory int

const (
	CategoryUser ChatCategory = iota
	CategoryGroup
	CategoryChannel
)

func (c ChatCategory) String() string {
	switch c {
	case CategoryUser:
		return "user"
	case CategoryGroup:
		return "group"
	default:
		return "channel"
	}
}

// ChatIndex records which chats the bot currently participates in. It is a
// best-effort in-process cache: it starts empty on every restart and is never
// persisted.
type ChatIndex struct {
	mu   sync.RWMutex
	sets map[ChatCategory]map[int64]struct{}
}

// NewChatIndex creates an empty chat index
func NewChatIndex() *ChatIndex {
	return &ChatIndex{
		sets: map[ChatCategory]map[int64]struct{}{
			CategoryUser:    {},
			CategoryGroup:   {},
			CategoryChannel: {},
		},
	}
}

// Add records a chat. Adding an already known chat is a no-op.
func (c *ChatIndex) Add(category ChatCategory, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets[category][id] = struct{}{}
}

// Remove forgets a chat. Removing an unknown chat is a no-op.
func (c *ChatIndex) Remove(category ChatCategory, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sets[category], id)
}

// Contains reports whether the chat is recorded in the category.
func (c *ChatIndex) Contains(category ChatCategory, id int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.sets[category][id]
	return ok
}

// IDs returns the recorded chat ids of a category, sorted ascending.
func (c *ChatIndex) IDs(category ChatCategory) []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]int64, 0, len(c.sets[category]))
	for id := range c.sets[category] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// categoryFor maps a Telegram chat to its index category.
func categoryFor(chat *tgbotapi.Chat) ChatCategory {
	switch {
	case chat.IsPrivate():
		return CategoryUser
	case chat.IsGroup() || chat.IsSuperGroup():
		return CategoryGroup
	default:
		return CategoryChannel
	}
}

// memberOf reports whether the given status counts as being in the chat.
func memberOf(member tgbotapi.ChatMember) bool {
	switch member.Status {
	case "member", "creator", "administrator":
		return true
	case "restricted":
		return member.IsMember
	}
	return false
}

// statusChange derives the membership transition from a chat member update.
// changed is false when the status did not actually change; that is a normal
// no-op, not an error.
func statusChange(update *tgbotapi.ChatMemberUpdated) (wasMember, nowMember, changed bool) {
	if update == nil {
		return false, false, false
	}
	if update.OldChatMember.Status == update.NewChatMember.Status {
		return false, false, false
	}
	return memberOf(update.OldChatMember), memberOf(update.NewChatMember), true
}

// handleMyChatMember keeps the chat index in sync with the bot's own
// membership transitions.
func (b *Bot) handleMyChatMember(update *tgbotapi.ChatMemberUpdated) {
	wasMember, nowMember, changed := statusChange(update)
	if !changed {
		return
	}

	category := categoryFor(&update.Chat)
	switch {
	case !wasMember && nowMember:
		b.chats.Add(category, update.Chat.ID)
	case wasMember && !nowMember:
		b.chats.Remove(category, update.Chat.ID)
	default:
		return
	}

	b.logger.Info("Chat membership changed",
		zap.String("actor", displayName(&update.From)),
		zap.Int64("chat_id", update.Chat.ID),
		zap.String("chat_title", update.Chat.Title),
		zap.String("category", category.String()),
		zap.Bool("member", nowMember),
	)
}

// handleChatMember greets joining members and acknowledges leaving ones.
func (b *Bot) handleChatMember(update *tgbotapi.ChatMemberUpdated) {
	wasMember, nowMember, changed := statusChange(update)
	if !changed {
		return
	}

	cause := mentionHTML(&update.From)
	member := mentionHTML(update.NewChatMember.User)

	switch {
	case !wasMember && nowMember:
		b.replyHTML(update.Chat.ID, fmt.Sprintf("%s добавлен %s. Добро пожаловать!", member, cause))
	case wasMember && !nowMember:
		b.replyHTML(update.Chat.ID, fmt.Sprintf("%s больше не с нами. Большое спасибо, %s ...", member, cause))
	}
}
