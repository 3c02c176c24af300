// Package processor extracts paragraph text from web pages and Word
// documents, and writes translated documents back out.
package processor

import "github.com/ZaguanLabs/aztrans"

// DocumentCodec is an alias to the main package interface.
type DocumentCodec = aztrans.DocumentCodec
