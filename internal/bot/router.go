package bot

import "strings"

// Command enumerates the supported bot commands. Keeping this a closed set
// means a typo in the phrase table fails a test instead of silently falling
// through to the catch-all.
type Command int

const (
	CommandUnknown Command = iota
	CommandHelp
	CommandCall
	CommandShowChats
	CommandShowAdmins
	CommandSnow
	CommandMyStats
	CommandChatStats
	CommandPing
	CommandStart
)

// commandPhrases maps a normalized phrase to its command. Matching is exact:
// no prefixes, no arguments.
var commandPhrases = map[string]Command{
	"help":     CommandHelp,
	"помощь":   CommandHelp,
	"памагити": CommandHelp,

	"call": CommandCall,
	"калл": CommandCall,

	"show_chats":   CommandShowChats,
	"чаты с ботом": CommandShowChats,

	"show_admins":       CommandShowAdmins,
	"список":            CommandShowAdmins,
	"список участников": CommandShowAdmins,

	"снег":            CommandSnow,
	"моя стата снега": CommandMyStats,
	"стата снега":     CommandChatStats,

	"пинг": CommandPing,

	"start": CommandStart,
}

// Resolve maps raw message text to a command. Unmatched text resolves to
// CommandUnknown.
func Resolve(text, botUsername string) Command {
	if cmd, ok := commandPhrases[Normalize(text, botUsername)]; ok {
		return cmd
	}
	return CommandUnknown
}

// Normalize lower-cases the text, strips one leading slash and removes a
// trailing @botname (as Telegram appends to commands in group chats).
func Normalize(text, botUsername string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.TrimPrefix(s, "/")
	if botUsername != "" {
		s = strings.TrimSuffix(s, "@"+strings.ToLower(botUsername))
	}
	return s
}
