// Package aztrans translates text, web-page paragraphs and Word documents
// through an Azure OpenAI chat-completion deployment.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//	    "os"
//
//	    "github.com/ZaguanLabs/aztrans"
//	    "github.com/ZaguanLabs/aztrans/processor"
//	    "github.com/ZaguanLabs/aztrans/provider"
//	)
//
//	func main() {
//	    // Create provider
//	    p := provider.NewAzureProvider(provider.AzureConfig{
//	        APIKey:   os.Getenv("AZURE_OPENAI_API_KEY"),
//	        Endpoint: os.Getenv("AZURE_OPENAI_ENDPOINT"),
//	    })
//
//	    // Retry on 429 with a fixed 10 second backoff
//	    retryable := aztrans.NewRetryableProvider(p, aztrans.DefaultRetryConfig())
//
//	    // Create translator
//	    t := aztrans.NewTranslator("pt-br", retryable,
//	        aztrans.WithDocumentCodec(processor.NewDocxCodec()),
//	    )
//
//	    text, err := t.Translate(context.Background(), "Hello World", "")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(text) // Olá Mundo
//
//	    // Writes report_pt-br.docx next to report.docx
//	    result, err := t.TranslateDocument(context.Background(), "report.docx", "")
//	}
package aztrans
