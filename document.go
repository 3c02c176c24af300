package aztrans

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// TranslateDocument translates every paragraph of the document at inputPath
// and writes the result next to it (see OutputPath).
//
// Paragraphs whose translation comes back empty, or fails, are left out of
// the output. Open and save failures are logged and returned as *DocumentError;
// nothing is written when the source cannot be read.
func (t *Translator) TranslateDocument(ctx context.Context, inputPath, targetLang string) (*DocumentResult, error) {
	lang := t.resolveLang(targetLang)
	log := t.logger.With("run", uuid.New().String()[:8], "document", inputPath, "target_lang", lang, "language", LanguageName(lang))

	if t.codec == nil {
		err := &DocumentError{Op: "open", Path: inputPath, Cause: ErrNoDocumentCodec}
		log.Error("error processing the document", "error", err)
		return nil, err
	}

	paragraphs, err := t.codec.ReadParagraphs(inputPath)
	if err != nil {
		derr := &DocumentError{Op: "open", Path: inputPath, Cause: err}
		log.Error("error processing the document", "error", derr)
		return nil, derr
	}

	result := &DocumentResult{
		OutputPath:      OutputPath(inputPath, lang),
		TotalParagraphs: len(paragraphs),
	}
	log.Info("translating document", "paragraphs", len(paragraphs))

	translated := make([]string, 0, len(paragraphs))
	for i, text := range paragraphs {
		if text != "" {
			if err := t.throttle.Wait(ctx); err != nil {
				log.Warn("document translation cancelled", "paragraph", i, "error", err)
				return nil, err
			}
		}

		out, cached, err := t.translate(ctx, text, lang)
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Warn("document translation cancelled", "paragraph", i, "error", ctxErr)
			return nil, ctxErr
		}
		if err != nil || out == "" {
			result.DroppedCount++
			log.Debug("dropping paragraph", "paragraph", i, "error", err)
			continue
		}

		if cached {
			result.CachedCount++
		}
		result.TranslatedCount++
		translated = append(translated, out)
	}

	if err := t.codec.WriteParagraphs(result.OutputPath, translated); err != nil {
		derr := &DocumentError{Op: "save", Path: result.OutputPath, Cause: err}
		log.Error("error processing the document", "error", derr)
		return nil, derr
	}

	log.Info("document translated",
		"output", result.OutputPath,
		"translated", result.TranslatedCount,
		"dropped", result.DroppedCount,
	)
	return result, nil
}

// OutputPath inserts "_{lang}" before the extension of inputPath,
// keeping the directory: "docs/report.docx" → "docs/report_es.docx".
func OutputPath(inputPath, lang string) string {
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+"_"+lang+ext)
}
