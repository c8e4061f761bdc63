package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected Command
	}{
		{"slash help", "/help", CommandHelp},
		{"russian help", "помощь", CommandHelp},
		{"distress help", "памагити", CommandHelp},
		{"mixed case", "ПоМоЩь", CommandHelp},
		{"call", "/call", CommandCall},
		{"russian call", "калл", CommandCall},
		{"show chats", "/show_chats", CommandShowChats},
		{"show chats phrase", "чаты с ботом", CommandShowChats},
		{"show admins", "/show_admins", CommandShowAdmins},
		{"admin list word", "список", CommandShowAdmins},
		{"admin list phrase", "список участников", CommandShowAdmins},
		{"snow", "снег", CommandSnow},
		{"snow upper", "СНЕГ", CommandSnow},
		{"my stats", "моя стата снега", CommandMyStats},
		{"chat stats", "стата снега", CommandChatStats},
		{"ping", "пинг", CommandPing},
		{"start", "/start", CommandStart},
		{"bot suffix", "/help@SnegBot", CommandHelp},
		{"surrounding whitespace", "  снег  ", CommandSnow},
		{"prefix is not a match", "снегопад", CommandUnknown},
		{"random text", "привет", CommandUnknown},
		{"empty", "", CommandUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Resolve(tc.text, "SnegBot"))
		})
	}
}

func TestNormalize_NoBotUsername(t *testing.T) {
	// Without a known username the @suffix stays, which makes the phrase
	// unmatched rather than wrongly matched.
	assert.Equal(t, "help@snegbot", Normalize("/help@SnegBot", ""))
}
