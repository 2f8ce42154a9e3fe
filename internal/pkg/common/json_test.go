package common

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject_EmbeddedInProse(t *testing.T) {
	text := "Sure! Here is your recipe:\n```json\n{\"name\":\"Soup\",\"ingredients\":[\"water\"],\"servings\":2}\n```\nEnjoy."

	for _, strategy := range []ExtractionStrategy{StrategyGreedy, StrategyBalanced} {
		t.Run(string(strategy), func(t *testing.T) {
			got, err := ExtractJSONObject(text, strategy)
			require.NoError(t, err)

			assert.Equal(t, "Soup", got["name"])
			assert.Equal(t, []interface{}{"water"}, got["ingredients"])
			assert.Equal(t, json.Number("2"), got["servings"])
		})
	}
}

func TestExtractJSONObject_NoBrace(t *testing.T) {
	_, err := ExtractJSONObject("I could not identify any dish in this picture.", StrategyGreedy)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoJSONFound)

	_, err = ExtractJSONObject("no json here", StrategyBalanced)
	assert.ErrorIs(t, err, ErrNoJSONFound)
}

func TestExtractJSONObject_ClosingBraceBeforeOpening(t *testing.T) {
	_, err := ExtractJSONObject("} then {", StrategyGreedy)
	assert.ErrorIs(t, err, ErrNoJSONFound)
}

func TestExtractJSONObject_SyntaxError(t *testing.T) {
	_, err := ExtractJSONObject(`prefix {"name": "Soup", "ingredients": [water]} suffix`, StrategyGreedy)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedJSON)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, KindExtraction, appErr.Kind)
	assert.Contains(t, appErr.Message, "JSON decoding error: ")
	assert.NotNil(t, appErr.Err)
}

func TestExtractJSONObject_TruncatedReply(t *testing.T) {
	for _, strategy := range []ExtractionStrategy{StrategyGreedy, StrategyBalanced} {
		_, err := ExtractJSONObject(`{"name": "Soup", "ingredients": ["water"`, strategy)
		assert.ErrorIs(t, err, ErrNoJSONFound, string(strategy))
	}

	// 截斷但仍有 '}'
	_, err := ExtractJSONObject(`{"name": {"x": 1}, "ingredients": [`, StrategyGreedy)
	assert.ErrorIs(t, err, ErrMalformedJSON)
}

func TestExtractJSONObject_MultipleObjects(t *testing.T) {
	text := `first {"name": "A"} and second {"name": "B"}`

	_, err := ExtractJSONObject(text, StrategyGreedy)
	assert.ErrorIs(t, err, ErrMalformedJSON)

	got, err := ExtractJSONObject(text, StrategyBalanced)
	require.NoError(t, err)
	assert.Equal(t, "A", got["name"])
}

func TestExtractJSONObject_BracesInsideStrings(t *testing.T) {
	text := `{"name": "Curly } soup", "note": "use \"{\" carefully"} trailing }`

	got, err := ExtractJSONObject(text, StrategyBalanced)
	require.NoError(t, err)
	assert.Equal(t, "Curly } soup", got["name"])
	assert.Equal(t, `use "{" carefully`, got["note"])

	_, err = ExtractJSONObject(text, StrategyGreedy)
	assert.ErrorIs(t, err, ErrMalformedJSON)
}

func TestParseExtractionStrategy(t *testing.T) {
	s, ok := ParseExtractionStrategy(" Balanced ")
	assert.True(t, ok)
	assert.Equal(t, StrategyBalanced, s)

	_, ok = ParseExtractionStrategy("regex")
	assert.False(t, ok)
}

func TestParseJSON_RejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	assert.Error(t, ParseJSON(`{"a":1} {"b":2}`, &v))
	assert.NoError(t, ParseJSON("{\"a\":1}\n  ", &v))
}
