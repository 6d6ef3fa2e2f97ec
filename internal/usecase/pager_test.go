package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateWindowBounds(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	for pageSize := 1; pageSize <= 7; pageSize++ {
		var got []int
		page := 0
		for {
			window, nav := Paginate(items, page, pageSize, "items")
			assert.LessOrEqual(t, len(window), pageSize)
			got = append(got, window...)
			if nav.Next == nil {
				break
			}
			assert.Equal(t, page+1, nav.Next.Page)
			page = nav.Next.Page
		}
		// Walking next until the end reconstructs the sequence exactly once.
		assert.Equal(t, items, got, "pageSize=%d", pageSize)
	}
}

func TestPaginateNavigation(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name     string
		page     int
		pageSize int
		window   []string
		wantPrev string
		wantNext string
	}{
		{
			name:     "first page has next only",
			page:     0,
			pageSize: 2,
			window:   []string{"a", "b"},
			wantNext: "nav_1",
		},
		{
			name:     "middle page has both",
			page:     1,
			pageSize: 2,
			window:   []string{"c", "d"},
			wantPrev: "nav_0",
			wantNext: "nav_2",
		},
		{
			name:     "last page has prev only",
			page:     2,
			pageSize: 2,
			window:   []string{"e"},
			wantPrev: "nav_1",
		},
		{
			name:     "single page has no navigation",
			page:     0,
			pageSize: 5,
			window:   []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "out of range page is empty",
			page:     9,
			pageSize: 2,
			window:   nil,
			wantPrev: "nav_8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, nav := Paginate(items, tt.page, tt.pageSize, "nav")
			assert.Equal(t, tt.window, window)

			if tt.wantPrev == "" {
				assert.Nil(t, nav.Prev)
			} else {
				require.NotNil(t, nav.Prev)
				assert.Equal(t, tt.wantPrev, nav.Prev.Data)
			}
			if tt.wantNext == "" {
				assert.Nil(t, nav.Next)
			} else {
				require.NotNil(t, nav.Next)
				assert.Equal(t, tt.wantNext, nav.Next.Data)
			}
		})
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	window, nav := Paginate([]int{}, 0, 5, "nav")
	assert.Empty(t, window)
	assert.True(t, nav.Empty())
}

func TestPaginateCarriesPrefix(t *testing.T) {
	items := make([]int, 10)
	prefix := fmt.Sprintf("%s_%d", "category", 42)

	_, nav := Paginate(items, 1, 3, prefix)
	require.NotNil(t, nav.Prev)
	require.NotNil(t, nav.Next)
	assert.Equal(t, "category_42_0", nav.Prev.Data)
	assert.Equal(t, "category_42_2", nav.Next.Data)
}
