package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/kotoba/internal/models"
)

func sampleResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Query:    "drama crime",
		Keywords: []string{"drama", "crime"},
		Results: []models.Result{
			{Line: "Crime Drama Crime", Highlighted: "[[Crime]] [[Drama]] [[Crime]]", Count: 3},
			{Line: "Drama", Highlighted: "[[Drama]]", Count: 1},
		},
		TotalMatched: 2,
	}
}

func TestWriteSearchResults_text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearchResults(&buf, sampleResponse(), OutputText))
	want := "Top Three Results:\n" +
		"(count: 3) [[Crime]] [[Drama]] [[Crime]]\n\n\n" +
		"(count: 1) [[Drama]]\n\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteSearchResults_textNoResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearchResults(&buf, &models.SearchResponse{}, OutputText))
	assert.Equal(t, "Top Three Results:\n", buf.String())
}

func TestWriteSearchResults_compact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearchResults(&buf, sampleResponse(), OutputCompact))
	assert.Equal(t, "3\t[[Crime]] [[Drama]] [[Crime]]\n1\t[[Drama]]\n", buf.String())
}

func TestWriteSearchResults_json(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearchResults(&buf, sampleResponse(), OutputJSON))

	var decoded models.SearchResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "drama crime", decoded.Query)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, 3, decoded.Results[0].Count)
	assert.Equal(t, "Crime Drama Crime", decoded.Results[0].Line)
}

func TestWriteSearchResults_unknownFormatIsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearchResults(&buf, sampleResponse(), SearchOutputFormat("yaml")))
	assert.Contains(t, buf.String(), "Top Three Results:")
	assert.Contains(t, buf.String(), "(count: 1) [[Drama]]")
}

func TestParseOutputFormat(t *testing.T) {
	for _, name := range []string{"text", "compact", "json"} {
		f, err := ParseOutputFormat(name)
		require.NoError(t, err)
		assert.Equal(t, SearchOutputFormat(name), f)
	}
	_, err := ParseOutputFormat("xml")
	assert.Error(t, err)
}
