package category

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultsAreStable(t *testing.T) {
	t.Parallel()

	require.Len(t, Defaults, 12)
	require.Equal(t, "🍔 Food", Defaults[0])
	require.Equal(t, "📦 Other", Defaults[11])
}

func TestEffectiveAppendsCustomInOrder(t *testing.T) {
	t.Parallel()

	custom := []string{"🎮 Gaming", "🐕 Pets"}
	list := Effective(custom)

	require.Len(t, list, len(Defaults)+2)
	require.Equal(t, Defaults, list[:len(Defaults)])
	require.Equal(t, "🎮 Gaming", list[len(Defaults)])
	require.Equal(t, "🐕 Pets", list[len(Defaults)+1])
}

func TestEffectiveDoesNotAliasDefaults(t *testing.T) {
	t.Parallel()

	list := Effective([]string{"🎮 Gaming"})
	list[0] = "mutated"
	require.Equal(t, "🍔 Food", Defaults[0])
}

func TestContainsIsByteExact(t *testing.T) {
	t.Parallel()

	list := Effective([]string{"🎮 Gaming"})

	require.True(t, Contains(list, "🎮 Gaming"))
	require.True(t, Contains(list, "🍔 Food"))
	require.False(t, Contains(list, "🎮 Gaming ")) // trailing space differs
	require.False(t, Contains(list, "🎮 gaming"))  // case differs
	require.False(t, Contains(list, "Gaming"))
}

func TestAtResolvesAgainstCurrentList(t *testing.T) {
	t.Parallel()

	list := Effective([]string{"A", "B", "C"})

	label, ok := At(list, 0)
	require.True(t, ok)
	require.Equal(t, "🍔 Food", label)

	label, ok = At(list, len(Defaults)+2)
	require.True(t, ok)
	require.Equal(t, "C", label)

	_, ok = At(list, len(list))
	require.False(t, ok)
	_, ok = At(list, -1)
	require.False(t, ok)
}

// Removing a custom entry shifts later indexes down, so a token minted
// before the removal must resolve against the new list, never a cached one.
func TestStaleTokenResolvesAgainstFreshList(t *testing.T) {
	t.Parallel()

	custom := []string{"A", "B", "C"}
	before := Effective(custom)
	tokenForC := len(Defaults) + 2
	label, ok := At(before, tokenForC)
	require.True(t, ok)
	require.Equal(t, "C", label)

	// Custom index 0 ("A") removed.
	custom = append(custom[:0:0], custom[1:]...)
	require.Equal(t, []string{"B", "C"}, custom)

	after := Effective(custom)
	label, ok = At(after, tokenForC)
	require.False(t, ok, "old token must not silently hit a shifted slot without re-resolution")
	_ = label

	// Re-resolved against the fresh list, the same position now holds nothing;
	// former "C" lives one slot earlier.
	label, ok = At(after, tokenForC-1)
	require.True(t, ok)
	require.Equal(t, "C", label)
}
