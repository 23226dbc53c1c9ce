package artran_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/ZaguanLabs/artran"
	"github.com/ZaguanLabs/artran/provider"
)

// Benchmarks for performance validation

func BenchmarkHashText(b *testing.B) {
	text := "Hello World, this is a sample text for hashing"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		artran.HashText(text)
	}
}

func BenchmarkTranslationKey_Hash(b *testing.B) {
	key := artran.TranslationKey{Text: "Mundo grande", From: "es", To: "en"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key.Hash()
	}
}

func BenchmarkTranslationCache_Hit(b *testing.B) {
	c := artran.NewTranslationCache(provider.NewMockProvider())
	key := artran.TranslationKey{Text: "Hola", From: "es", To: "en"}
	c.Get(context.Background(), key)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(context.Background(), key)
	}
}

func BenchmarkTranslationCache_Hit_Parallel(b *testing.B) {
	c := artran.NewTranslationCache(provider.NewMockProvider())
	key := artran.TranslationKey{Text: "Hola", From: "es", To: "en"}
	c.Get(context.Background(), key)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Get(context.Background(), key)
		}
	})
}

func BenchmarkTranslationCache_Evicting(b *testing.B) {
	c := artran.NewTranslationCache(provider.NewMockProvider(), artran.WithCapacity(100))
	keys := make([]artran.TranslationKey, 1000)
	for i := range keys {
		keys[i] = artran.TranslationKey{Text: fmt.Sprintf("text %d", i), From: "es", To: "en"}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(context.Background(), keys[i%len(keys)])
	}
}

func BenchmarkRecordTranslator_Cached(b *testing.B) {
	translator := artran.NewRecordTranslator(
		artran.NewTranslationCache(provider.NewMockProvider()),
		artran.WithLogger(log.New(io.Discard, "", 0)),
	)
	rec := &artran.Record{
		Language:    "es",
		Title:       "Hola",
		Text:        "Mundo grande",
		Description: "Mundo",
		Keywords:    []string{"uno", "dos"},
	}

	// Prime the cache
	translator.Translate(context.Background(), rec, "en")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		translator.Translate(context.Background(), rec, "en")
	}
}

func BenchmarkLanguageName(b *testing.B) {
	langs := []string{"en_US", "es_ES", "pt_BR", "ja_JP", "zh_CN"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		artran.LanguageName(langs[i%len(langs)])
	}
}
