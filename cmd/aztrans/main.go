// Command aztrans translates text, web pages and Word documents with an
// Azure OpenAI deployment.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/aztrans"
	"github.com/ZaguanLabs/aztrans/config"
)

const (
	demoText = "This text should be translated from English to Brazilian Portuguese."
	demoURL  = "https://azure.microsoft.com/en-us/blog/introducing-o1-openais-new-reasoning-model-series-for-developers-and-enterprises-on-azure/"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(stdin, stdout)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// globals are the persistent flags shared by every subcommand.
type globals struct {
	envFile  string
	logLevel string
}

func (g *globals) load(stdout io.Writer) (*app, error) {
	cfg, err := config.Load(config.WithEnvFile(g.envFile))
	if err != nil {
		return nil, err
	}
	return newApp(cfg, stdout, g.logLevel)
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   aztrans.Name,
		Short: aztrans.Description,
		Long: `aztrans translates text, the paragraphs of a web page, or a Word
document through an Azure OpenAI chat deployment.

Configuration comes from the environment (or a .env file):
  AZURE_OPENAI_API_KEY      required
  AZURE_OPENAI_ENDPOINT     required
  DEFAULT_TARGET_LANGUAGE   default "pt-br"

Durations such as AZTRANS_RETRY_DELAY need a unit suffix ("10s", "500ms").`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.envFile, "env-file", config.DefaultEnvFile, "env file to read before the process environment")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error (default from AZTRANS_LOG_LEVEL)")

	root.AddCommand(
		newTextCmd(g, stdout),
		newURLCmd(g, stdout),
		newDocCmd(g, stdout),
		newDemoCmd(g, stdin, stdout),
		newLanguagesCmd(stdout),
		newVersionCmd(stdout),
	)
	return root
}

func newTextCmd(g *globals, stdout io.Writer) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "text [--lang L] TEXT...",
		Short: "Translate a piece of text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.load(stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			translated, err := a.translator.Translate(cmd.Context(), strings.Join(args, " "), lang)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, translated)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "target language (default from DEFAULT_TARGET_LANGUAGE)")
	return cmd
}

func newURLCmd(g *globals, stdout io.Writer) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "url [--lang L] URL",
		Short: "Translate the paragraphs of a web page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.load(stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			return translatePage(cmd.Context(), a, stdout, args[0], lang)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "target language (default from DEFAULT_TARGET_LANGUAGE)")
	return cmd
}

// translatePage prints each translated paragraph; failed paragraphs print
// as empty lines so the output keeps the page's order.
func translatePage(ctx context.Context, a *app, stdout io.Writer, url, lang string) error {
	paragraphs, err := a.extractor.ExtractParagraphs(ctx, url)
	fmt.Fprintf(stdout, "Extracted %d paragraphs from the URL.\n\n", len(paragraphs))
	if err != nil {
		return err
	}

	fmt.Fprint(stdout, "Translating paragraphs...\n\n")

	for _, p := range paragraphs {
		translated, _ := a.translator.Translate(ctx, p, lang)
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, translated)
	}

	fmt.Fprint(stdout, "URL translation complete.\n\n")
	return nil
}

func newDocCmd(g *globals, stdout io.Writer) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "doc [--lang L] PATH",
		Short: "Translate a Word (.docx) document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.load(stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.translator.TranslateDocument(cmd.Context(), args[0], lang)
			if err != nil {
				return err
			}
			printDocumentResult(stdout, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "target language (default from DEFAULT_TARGET_LANGUAGE)")
	return cmd
}

func printDocumentResult(w io.Writer, res *aztrans.DocumentResult) {
	fmt.Fprintf(w, "Translated document saved to %s\n", res.OutputPath)
	fmt.Fprintf(w, "  paragraphs: %d, translated: %d, dropped: %d, cached: %d\n",
		res.TotalParagraphs, res.TranslatedCount, res.DroppedCount, res.CachedCount)
}

func newDemoCmd(g *globals, stdin io.Reader, stdout io.Writer) *cobra.Command {
	var (
		text   string
		url    string
		doc    string
		noWait bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Translate a sample sentence, web page and document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if doc == "" {
				doc = defaultSampleDoc()
			}

			err := runDemo(cmd.Context(), g, stdout, text, url, doc)
			if err != nil {
				fmt.Fprintf(stdout, "An error occurred: %v\n", err)
			}

			if !noWait {
				fmt.Fprintln(stdout)
				fmt.Fprintln(stdout, "Press Enter to exit...")
				bufio.NewReader(stdin).ReadString('\n')
			}
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", demoText, "sentence to translate")
	cmd.Flags().StringVar(&url, "url", demoURL, "page whose paragraphs are translated")
	cmd.Flags().StringVar(&doc, "doc", "", "document to translate (default Resources/sample.docx next to the executable)")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "exit without waiting for Enter")
	return cmd
}

func runDemo(ctx context.Context, g *globals, stdout io.Writer, text, url, doc string) error {
	a, err := g.load(stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintf(stdout, "Input text: %s\n", text)
	if text != "" {
		translated, _ := a.translator.Translate(ctx, text, "")
		fmt.Fprintf(stdout, "Translated Text: %s\n", translated)
	}
	fmt.Fprintln(stdout)

	if url != "" {
		// extraction failures are already logged; the page counts as empty
		if err := translatePage(ctx, a, stdout, url, ""); err != nil && ctx.Err() != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "Translating Word document: %s\n", doc)
	if _, err := os.Stat(doc); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stdout, "The file %s was not found.\n", doc)
		return nil
	}

	res, err := a.translator.TranslateDocument(ctx, doc, "")
	if err != nil {
		return err
	}
	printDocumentResult(stdout, res)
	fmt.Fprintln(stdout, "Document translation completed.")
	return nil
}

func defaultSampleDoc() string {
	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}
	return filepath.Join(dir, "Resources", "sample.docx")
}

func newLanguagesCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List common target language codes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, l := range aztrans.KnownLanguages() {
				dir := "ltr"
				if l.RTL {
					dir = "rtl"
				}
				fmt.Fprintf(stdout, "%-6s %-26s %s\n", l.Code, l.Name, dir)
			}
		},
	}
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "%s %s\n", aztrans.Name, aztrans.FullVersion())
			if aztrans.BuildDate != "unknown" && aztrans.BuildDate != "" {
				fmt.Fprintf(stdout, "  built:   %s\n", aztrans.BuildDate)
			}
		},
	}
}
