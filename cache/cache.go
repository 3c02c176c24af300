// Package cache provides translation caching implementations.
//
// Keys are built by aztrans.CacheKey (text hash plus target language), so a
// paragraph that repeats across pages or documents is only sent once.
package cache

import "github.com/ZaguanLabs/aztrans"

// TranslationCache is an alias to the main package interface.
type TranslationCache = aztrans.TranslationCache
