package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSpanPlainObject(t *testing.T) {
	span, err := JSONSpan(`{"summary":"refused"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"refused"}`, span)
}

func TestJSONSpanWrappedInProse(t *testing.T) {
	raw := "Sure, here is the JSON you asked for:\n```json\n{\"summary\":\"refused\"}\n```\nLet me know if you need anything else."
	span, err := JSONSpan(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"refused"}`, span)
}

func TestJSONSpanBracesInsideStrings(t *testing.T) {
	raw := `prefix {"summary":"the officer wrote {sic} in the letter","nested":{"a":"}"}} suffix {`
	span, err := JSONSpan(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"the officer wrote {sic} in the letter","nested":{"a":"}"}}`, span)
}

func TestJSONSpanEscapedQuotes(t *testing.T) {
	raw := `{"summary":"she said \"no\" twice"}`
	span, err := JSONSpan(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, span)
}

func TestJSONSpanNoObject(t *testing.T) {
	_, err := JSONSpan("I could not find any structured data in this document.")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestJSONSpanUnterminated(t *testing.T) {
	_, err := JSONSpan(`{"summary":"cut off mid`)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestExtractJSON(t *testing.T) {
	var out struct {
		Summary string `json:"summary"`
	}
	err := ExtractJSON("noise before {\"summary\":\"refused on financial grounds\"} noise after", &out)
	require.NoError(t, err)
	assert.Equal(t, "refused on financial grounds", out.Summary)
}

func TestExtractJSONMalformed(t *testing.T) {
	var out struct {
		Summary string `json:"summary"`
	}
	err := ExtractJSON(`{"summary": refused}`, &out)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

// Parsing the serialized form of a parsed object must give the same object.
func TestExtractJSONIdempotent(t *testing.T) {
	raw := `Some preamble. {"summary":"refused","rejectionReasons":[{"title":"GTE","description":"not a genuine temporary entrant"}]}`

	type result struct {
		Summary          string `json:"summary"`
		RejectionReasons []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"rejectionReasons"`
	}

	var first result
	require.NoError(t, ExtractJSON(raw, &first))

	serialized, err := json.Marshal(first)
	require.NoError(t, err)

	var second result
	require.NoError(t, ExtractJSON(string(serialized), &second))

	assert.Equal(t, first, second)
}
