package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "Backend Engineer", truncate("Backend Engineer", 30))
	assert.Equal(t, "abcde", truncate("abcde", 5))
}

func TestTruncateLongString(t *testing.T) {
	got := truncate("Senior Backend Engineer (Payments Platform)", 30)

	assert.Equal(t, 30, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestTruncateMultiByteTitles(t *testing.T) {
	// Rune-based truncation must never split a multi-byte character
	titles := []string{
		"シニアバックエンドエンジニア（決済プラットフォーム）",
		"Développeur logiciel sénior, équipe paiements",
		"Инженер-программист платёжной платформы",
	}

	for _, title := range titles {
		got := truncate(title, 10)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, 10, utf8.RuneCountInString(got))
		assert.True(t, strings.HasSuffix(got, "..."))
	}
}
