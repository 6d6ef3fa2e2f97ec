package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallbackData(t *testing.T) {
	tests := []struct {
		data string
		want Event
	}{
		{"categories", Event{Kind: EventShowCategories}},
		{"categories_2", Event{Kind: EventShowCategories, Page: 2}},
		{"category_7", Event{Kind: EventShowProducts, CategoryID: 7}},
		{"category_7_3", Event{Kind: EventShowProducts, CategoryID: 7, Page: 3}},
		{"buy_42", Event{Kind: EventBuyProduct, ProductID: 42}},
		{"remove_42", Event{Kind: EventRemoveItem, ProductID: 42}},
		{"change_42", Event{Kind: EventChangeQuantity, ProductID: 42}},
		{"buy_cart", Event{Kind: EventCheckout}},
	}
	for _, tc := range tests {
		t.Run(tc.data, func(t *testing.T) {
			got, err := ParseCallbackData(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseCallbackDataRejectsMalformedInput(t *testing.T) {
	tests := []string{
		"",
		"nope",
		"categories_x",
		"categories_-1",
		"category_",
		"category_abc",
		"category_7_x",
		"buy_",
		"buy_abc",
		"buy_1_2",
		"remove_one",
		"change_",
	}
	for _, data := range tests {
		t.Run(data, func(t *testing.T) {
			_, err := ParseCallbackData(data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnknownEvent)
		})
	}
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "checkout", EventCheckout.String())
	assert.Equal(t, "free_text", EventFreeText.String())
	assert.Equal(t, "unknown", EventUnknown.String())
}
