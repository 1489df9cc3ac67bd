package emoji

// emojiMap holds [emoji, fallback] pairs
var emojiMap = map[string][2]string{
	"error":     {"❌", "[ERR]"},
	"warning":   {"⚠️", "[WRN]"},
	"info":      {"ℹ️", "[INF]"},
	"success":   {"✅", "[OK]"},
	"upload":    {"📤", "[UP]"},
	"file":      {"📄", "[FILE]"},
	"analysis":  {"🔍", "[ANL]"},
	"configure": {"⚙️", "[CFG]"},
	"results":   {"🧪", "[RES]"},
	"sql":       {"🗄️", "[SQL]"},
	"download":  {"⬇️", "[DL]"},
	"package":   {"📦", "[ZIP]"},
	"lock":      {"🔒", "[AUTH]"},
	"user":      {"👤", "[USR]"},
	"door":      {"🚪", "[EXIT]"},
	"clock":     {"⏳", "[...]"},
	"watch":     {"👀", "[WATCH]"},
	"rocket":    {"🚀", "[GO]"},
	"check":     {"✔", "[x]"},
	"unchecked": {"○", "[ ]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}
