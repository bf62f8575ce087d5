package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextShortInputIsSingleChunk(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("short text", 1000, 0)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestChunkTextEmptyInput(t *testing.T) {
	chunker := NewTextChunker()

	assert.Empty(t, chunker.ChunkText("", 1000, 0))
	assert.Empty(t, chunker.ChunkText("\n\n\n\n", 1000, 0))
}

func TestChunkTextSplitsOnParagraphs(t *testing.T) {
	chunker := NewTextChunker()

	para := strings.Repeat("word ", 30)
	text := strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para)

	chunks := chunker.ChunkText(text, 200, 0)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 200)
	}
}

func TestChunkTextSplitsOversizedParagraphBySentences(t *testing.T) {
	chunker := NewTextChunker()

	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("This is a fairly ordinary sentence about job requirements. ")
	}

	chunks := chunker.ChunkText(sb.String(), 300, 0)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 300)
	}
}

func TestChunkTextOverlapCarriesContext(t *testing.T) {
	chunker := NewTextChunker()

	para := strings.TrimSpace(strings.Repeat("alpha ", 30))
	text := para + "\n\n" + para + "\n\n" + para

	chunks := chunker.ChunkText(text, 200, 50)
	require.Greater(t, len(chunks), 1)

	// Each later chunk starts with the tail of its predecessor
	for i := 1; i < len(chunks); i++ {
		tail := chunks[i-1][len(chunks[i-1])-50:]
		assert.True(t, strings.HasPrefix(chunks[i], tail))
	}
}

func TestChunkTextDefaultsBadParameters(t *testing.T) {
	chunker := NewTextChunker()

	// Zero max size falls back to the default instead of looping forever
	chunks := chunker.ChunkText("some text", 0, -5)
	require.Len(t, chunks, 1)
	assert.Equal(t, "some text", chunks[0])
}
