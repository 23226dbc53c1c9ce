// Package provider defines translation provider implementations.
package provider

import "github.com/ZaguanLabs/artran"

// TextProvider is an alias to the main package interface for convenience.
type TextProvider = artran.TextProvider

// TextRequest is an alias to the main package type.
type TextRequest = artran.TextRequest
