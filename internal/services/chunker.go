package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText splits text into chunks of at most maxChunkSize characters,
// preferring paragraph boundaries and falling back to sentences. Adjacent
// chunks share overlap characters so embeddings keep local context.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current strings.Builder

	flush := func(separator string) {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, current.String())
		current.Reset()

		if overlap > 0 {
			prev := chunks[len(chunks)-1]
			overlapText := lastNChars(prev, overlap)
			current.WriteString(overlapText)
			if overlapText != "" {
				current.WriteString(separator)
			}
		}
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		// Oversized paragraphs get split by sentences
		if utf8.RuneCountInString(para) > maxChunkSize {
			for _, sentence := range splitIntoSentences(para) {
				if current.Len()+len(sentence)+1 > maxChunkSize {
					flush(" ")
				}
				if current.Len() > 0 {
					current.WriteString(" ")
				}
				current.WriteString(sentence)
			}
			continue
		}

		if current.Len()+len(para)+2 > maxChunkSize {
			flush("\n\n")
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func splitIntoSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func lastNChars(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
