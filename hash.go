package artran

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText computes the SHA-256 hash of the text, byte for byte.
func HashText(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// Hash returns a stable string form of the key derived from all three fields.
func (k TranslationKey) Hash() string {
	return CacheKeyExtended(HashText(k.Text), k.From, k.To, "")
}

// String omits the text, which may be long or sensitive.
func (k TranslationKey) String() string {
	return "TranslationKey{from=" + k.From + ", to=" + k.To + "}"
}

// CacheKeyExtended generates a cache key including source language and model.
// Use the model component when a shared store is fed by several model selectors.
func CacheKeyExtended(hash, sourceLang, targetLang, model string) string {
	return hash + ":" + sourceLang + ":" + targetLang + ":" + model
}
