package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"lesson-shelf/internal/contextutil"
	"lesson-shelf/internal/library"
	"lesson-shelf/internal/markdown"
)

// ViewHandler serves lesson documents as rendered HTML pages.
// Rendering is delegated entirely to goldmark; this handler only wraps the
// output in a page shell.
type ViewHandler struct {
	manager  *library.Manager
	md       goldmark.Markdown
	template *template.Template
}

// viewPageData holds template data for rendered lesson pages.
type viewPageData struct {
	Title   string
	RelPath string
	Variant string
	Content template.HTML
}

// NewViewHandler creates a new handler for serving lesson pages.
func NewViewHandler(manager *library.Manager) *ViewHandler {
	tmpl := template.Must(template.New("lesson").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 820px;
      line-height: 1.7;
      color: #1f2933;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid #e4e7eb;
      padding-bottom: 1rem;
    }
    h1 { margin-top: 0; }
    pre {
      background: #f5f7fa;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 8px;
      border: 1px solid #e4e7eb;
    }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
      background: #f5f7fa;
      padding: 2px 5px;
      border-radius: 4px;
    }
    pre code { background: transparent; padding: 0; }
    img { max-width: 100%; }
    .meta { color: #7b8794; font-size: 0.95rem; margin-top: 0.5rem; }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">{{.RelPath}}{{if .Variant}} &middot; variant {{.Variant}}{{end}}</p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &ViewHandler{
		manager: manager,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithUnsafe(),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP renders the requested lesson file as HTML.
func (h *ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	rawRelPath := chi.URLParam(r, "*")
	decodedRelPath, err := url.PathUnescape(rawRelPath)
	if err != nil {
		http.Error(w, "invalid path encoding", http.StatusBadRequest)
		return
	}

	relPath, err := library.CleanRelPath(decodedRelPath)
	if err != nil {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}

	content, err := h.manager.ReadLesson(relPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "lesson not found", http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "failed to read lesson", "rel_path", relPath, "error", err)
		http.Error(w, "failed to read lesson", http.StatusInternalServerError)
		return
	}

	// Parse once for the title and variant; render the body with goldmark
	doc, err := markdown.NewParser().Parse(content, relPath)
	if err != nil {
		logger.ErrorContext(ctx, "failed to parse lesson", "rel_path", relPath, "error", err)
		http.Error(w, "failed to render lesson", http.StatusInternalServerError)
		return
	}

	htmlContent, err := h.renderMarkdown(markdown.StripFrontMatter(content))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "rel_path", relPath, "error", err)
		http.Error(w, "failed to render lesson", http.StatusInternalServerError)
		return
	}

	pageData := viewPageData{
		Title:   doc.Title,
		RelPath: relPath,
		Variant: doc.Variant,
		Content: template.HTML(htmlContent),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute lesson template", "rel_path", relPath, "error", err)
	}
}

func (h *ViewHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.md.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
