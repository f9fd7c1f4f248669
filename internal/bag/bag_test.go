package bag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceSemantics(t *testing.T) {
	b := New()

	_, ok := b.Get("a")
	assert.False(t, ok, "fresh bag has nothing")

	b.Set("a", 1)
	v, ok := b.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// Explicit nil is present, not absent.
	b.Set("n", nil)
	v, ok = b.Get("n")
	require.True(t, ok)
	assert.Nil(t, v)

	b.Clear("a")
	_, ok = b.Get("a")
	assert.False(t, ok, "cleared name is absent")

	// Clearing an absent name is a no-op.
	b.Clear("ghost")
	assert.Equal(t, 1, b.Len())
}

func TestInsertionOrder(t *testing.T) {
	b := New()
	b.Set("c", 3)
	b.Set("a", 1)
	b.Set("b", 2)
	assert.Equal(t, []string{"c", "a", "b"}, b.Names())

	// Re-set keeps the original position.
	b.Set("c", 30)
	assert.Equal(t, []string{"c", "a", "b"}, b.Names())
	v, _ := b.Get("c")
	assert.Equal(t, 30, v)

	// Clear then set moves the name to the end.
	b.Clear("c")
	b.Set("c", 300)
	assert.Equal(t, []string{"a", "b", "c"}, b.Names())
}

func TestFromMapAndSnapshot(t *testing.T) {
	src := map[string]any{"tip_rate": 0.15, "prices": []any{50.0, 25.0, 25.0}, "tax_rate": 0.05}
	b := FromMap(src)

	assert.Equal(t, []string{"prices", "tax_rate", "tip_rate"}, b.Names(), "seeded in sorted order")

	got := Snapshot(b)
	if diff := cmp.Diff(src, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}
