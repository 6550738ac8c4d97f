package content

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestList(t *testing.T, ids ...string) *List {
	t.Helper()
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		it := NewSection("<p>" + id + "</p>")
		it.ID = id
		items = append(items, it)
	}
	l, err := NewList(items...)
	require.NoError(t, err)
	return l
}

func ids(l *List) []string {
	out := make([]string, 0, l.Len())
	for _, it := range l.Items() {
		out = append(out, it.ID)
	}
	return out
}

func TestNewList(t *testing.T) {
	_, err := NewList(Item{ID: "a", Kind: KindImage}, Item{ID: "a", Kind: KindSection})
	require.Error(t, err)

	_, err = NewList(Item{ID: "a", Kind: "video"})
	require.ErrorIs(t, err, ErrInvalidKind)
}

func TestAppend(t *testing.T) {
	l := newTestList(t)

	a, err := l.Append(NewImage("https://example.com/a.png"))
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Image", a.Title)

	t.Run("충돌하는 id는 새로 부여", func(t *testing.T) {
		dup := NewSection("<p>x</p>")
		dup.ID = a.ID
		b, err := l.Append(dup)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("잘못된 종류", func(t *testing.T) {
		_, err := l.Append(Item{Kind: "video"})
		require.ErrorIs(t, err, ErrInvalidKind)
		assert.Equal(t, 2, l.Len())
	})
}

func TestMove(t *testing.T) {
	t.Run("모든 유효한 from/to 조합에서 길이와 id 집합 유지", func(t *testing.T) {
		base := []string{"a", "b", "c", "d", "e"}
		for from := range base {
			for to := range base {
				l := newTestList(t, base...)
				require.True(t, l.Move(from, to))

				got := ids(l)
				assert.Len(t, got, len(base))
				assert.Equal(t, base[from], got[to])

				sorted := append([]string(nil), got...)
				sort.Strings(sorted)
				assert.Equal(t, base, sorted)
			}
		}
	})

	t.Run("splice 순서", func(t *testing.T) {
		l := newTestList(t, "a", "b", "c", "d")
		l.Move(0, 2)
		assert.Equal(t, []string{"b", "c", "a", "d"}, ids(l))
		l.Move(3, 0)
		assert.Equal(t, []string{"d", "b", "c", "a"}, ids(l))
	})

	t.Run("범위 밖은 변경 없음", func(t *testing.T) {
		l := newTestList(t, "a", "b", "c")
		for _, tc := range [][2]int{{-1, 0}, {0, 3}, {3, 0}, {0, -1}, {5, 5}} {
			assert.False(t, l.Move(tc[0], tc[1]))
			assert.Equal(t, []string{"a", "b", "c"}, ids(l))
		}
	})

	t.Run("from == to", func(t *testing.T) {
		l := newTestList(t, "a", "b")
		assert.True(t, l.Move(1, 1))
		assert.Equal(t, []string{"a", "b"}, ids(l))
	})
}

func TestInsertAfterRemoveRoundTrip(t *testing.T) {
	for _, source := range []string{"a", "b", "c"} {
		l := newTestList(t, "a", "b", "c")
		before := l.Items()

		src, _ := l.Get(source)
		clone := src
		clone.ID = ""
		inserted, err := l.InsertAfter(source, clone)
		require.NoError(t, err)
		assert.Equal(t, l.Index(source)+1, l.Index(inserted.ID))

		require.True(t, l.Remove(inserted.ID))
		assert.Equal(t, before, l.Items())
	}

	t.Run("source가 없으면 끝에 추가", func(t *testing.T) {
		l := newTestList(t, "a")
		it, err := l.InsertAfter("missing", NewSection("<p>z</p>"))
		require.NoError(t, err)
		assert.Equal(t, 1, l.Index(it.ID))
	})
}

func TestDuplicate(t *testing.T) {
	l := newTestList(t, "a", "b")
	l.ToggleSelection("a")

	dup, ok := l.Duplicate("a")
	require.True(t, ok)
	assert.NotEqual(t, "a", dup.ID)
	assert.Equal(t, "Section (Copy)", dup.Title)
	assert.Equal(t, "<p>a</p>", dup.Payload)
	assert.Equal(t, []string{"a", dup.ID, "b"}, ids(l))

	_, ok = l.Duplicate("missing")
	assert.False(t, ok)
	assert.Equal(t, 3, l.Len())
}

func TestRemove(t *testing.T) {
	l := newTestList(t, "a", "b")
	assert.False(t, l.Remove("missing"))
	assert.True(t, l.Remove("a"))
	assert.Equal(t, []string{"b"}, ids(l))
}

func TestSelection(t *testing.T) {
	l := newTestList(t, "a", "b", "c")
	l.ToggleSelection("c")
	l.ToggleSelection("a")
	assert.Equal(t, []string{"a", "c"}, l.SelectedIDs())

	l.ToggleSelection("a")
	assert.Equal(t, []string{"c"}, l.SelectedIDs())
	assert.Equal(t, []string{"a", "b", "c"}, ids(l))
	assert.False(t, l.ToggleSelection("missing"))
}

func TestSetTypography(t *testing.T) {
	l := newTestList(t, "s")
	img, err := l.Append(NewImage("x.png"))
	require.NoError(t, err)

	size := 120
	family := "Pretendard"
	assert.True(t, l.SetTypography("s", TypographyPatch{FontSize: &size, FontFamily: &family}))
	s, _ := l.Get("s")
	assert.Equal(t, Typography{FontSize: 120, FontFamily: "Pretendard"}, s.Typography)

	align := "center"
	assert.True(t, l.SetTypography("s", TypographyPatch{TextAlign: &align}))
	s, _ = l.Get("s")
	assert.Equal(t, 120, s.Typography.FontSize)
	assert.Equal(t, "center", s.Typography.TextAlign)

	assert.False(t, l.SetTypography(img.ID, TypographyPatch{FontSize: &size}))
	got, _ := l.Get(img.ID)
	assert.Equal(t, Typography{}, got.Typography)
}

func TestListJSON(t *testing.T) {
	l := newTestList(t, "a", "b")
	data, err := json.Marshal(l)
	require.NoError(t, err)

	var restored List
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, l.Items(), restored.Items())

	empty, err := json.Marshal(&List{})
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(empty))

	assert.Error(t, json.Unmarshal([]byte(`[{"id":"a","kind":"image"},{"id":"a","kind":"image"}]`), &restored))
}
