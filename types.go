package aztrans

import "time"

// Defaults matching the Azure OpenAI deployment the tool targets.
const (
	// DefaultTargetLang is used when neither the caller nor the configuration names a language.
	DefaultTargetLang = "pt-br"
	// DefaultDeployment is the Azure OpenAI deployment (and model) name.
	DefaultDeployment = "gpt-4o-mini"
	// DefaultAPIVersion is the Azure OpenAI REST API version.
	DefaultAPIVersion = "2024-08-01-preview"
	// DefaultMaxTokens caps the length of each completion.
	DefaultMaxTokens = 1000
	// DefaultParagraphDelay is the minimum gap between two document paragraph requests.
	DefaultParagraphDelay = 2 * time.Second
)

// TranslateRequest contains the parameters for a single translation call.
type TranslateRequest struct {
	Text       string // Source text, sent verbatim
	TargetLang string // Target language code (e.g., "pt-br", "es")
	MaxTokens  int    // Completion cap (0 = provider default)
}

// DocumentResult is the result of a document translation.
type DocumentResult struct {
	OutputPath      string // Path of the written document
	TotalParagraphs int    // Paragraphs found in the source document
	TranslatedCount int    // Paragraphs written to the output
	DroppedCount    int    // Paragraphs left out because their translation was empty or failed
	CachedCount     int    // Translations served from the cache
}

// IgnoredTags contains HTML tags whose content is not part of a paragraph's visible text.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}
