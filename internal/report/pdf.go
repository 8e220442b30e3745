package report

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/spigell/pathfinder/internal/assessment"
	"github.com/spigell/pathfinder/internal/matching"
)

// ErrPDFUnavailable is returned when no headless browser can be used.
var ErrPDFUnavailable = errors.New("pdf export is unavailable: chrome or chromium was not found")

const defaultPDFTimeout = 30 * time.Second

// A4 in inches.
const (
	paperWidth  = 8.27
	paperHeight = 11.69
)

var browserCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
}

var lookPath = exec.LookPath

//go:embed pdf.html.tmpl
var pdfTemplateText string

var pdfTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct":      matching.Percentage,
	"traitPct": assessment.Percentage,
	"inc":      func(i int) int { return i + 1 },
	"trait": func(name string) string {
		if info, ok := assessment.Info(name); ok {
			return info.Name
		}
		return name
	},
}).Parse(pdfTemplateText))

// PDFOptions configures the headless browser.
type PDFOptions struct {
	// ChromePath is the browser binary resolved by DetectPDF.
	ChromePath string
	Timeout    time.Duration
}

// DetectPDF resolves the browser used for PDF export. A configured path wins
// over the well-known binary names on PATH. ErrPDFUnavailable means the
// capability is off.
func DetectPDF(configured string) (string, error) {
	if configured != "" {
		path, err := lookPath(configured)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrPDFUnavailable, configured)
		}
		return path, nil
	}

	for _, name := range browserCandidates {
		if path, err := lookPath(name); err == nil {
			return path, nil
		}
	}

	return "", ErrPDFUnavailable
}

type pdfView struct {
	Result
	Date            string
	Recommendations []matching.Recommendation
	Plan            []Section
}

// HTML renders the document that is printed to PDF.
func HTML(r Result, now time.Time) (string, error) {
	view := pdfView{
		Result:          r,
		Date:            now.Format(DateLayout),
		Recommendations: r.Top(textTopN),
		Plan:            ActionPlan(r.Recommendations),
	}

	var buf bytes.Buffer
	if err := pdfTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render pdf template: %w", err)
	}
	return buf.String(), nil
}

// PDF prints the report through headless Chrome.
func PDF(ctx context.Context, r Result, now time.Time, opts PDFOptions) ([]byte, error) {
	if opts.ChromePath == "" {
		return nil, ErrPDFUnavailable
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultPDFTimeout
	}

	html, err := HTML(r, now)
	if err != nil {
		return nil, err
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(opts.ChromePath),
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}

	return pdf, nil
}
