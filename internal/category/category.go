// Package category derives the category list a user can pick from: a fixed
// set of defaults followed by the user's own additions. The list is cheap to
// build and must be rebuilt from the store before every use, because custom
// categories can change between renders.
package category

// Defaults is the fixed category set every user starts with. Order is part
// of the contract: selection tokens are absolute indexes into the effective
// list, and the defaults occupy positions 0..11.
var Defaults = []string{
	"🍔 Food",
	"🛒 Groceries",
	"🚕 Transport",
	"🏠 Housing",
	"💡 Utilities",
	"🏥 Health",
	"👕 Clothes",
	"🎬 Entertainment",
	"📚 Education",
	"✈️ Travel",
	"🎁 Gifts",
	"📦 Other",
}

// Effective returns defaults followed by the user's custom categories in
// append order. The result is a fresh slice; callers may not mutate
// Defaults through it.
func Effective(custom []string) []string {
	list := make([]string, 0, len(Defaults)+len(custom))
	list = append(list, Defaults...)
	list = append(list, custom...)
	return list
}

// Contains reports whether label appears in list. Comparison is exact
// byte-for-byte: "🎮 Gaming" and "🎮 Gaming " are different labels.
func Contains(list []string, label string) bool {
	for _, c := range list {
		if c == label {
			return true
		}
	}
	return false
}

// At resolves a selection token (an absolute index) against list. Tokens
// are only valid against the list as it exists right now, so callers must
// pass a freshly built one.
func At(list []string, index int) (string, bool) {
	if index < 0 || index >= len(list) {
		return "", false
	}
	return list[index], true
}
