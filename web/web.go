// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/ncruces/go-strftime"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/danielhkuo/samhaengsi/models"
)

//go:embed templates/*.html guide.md
var files embed.FS

// DateLayout is the strftime layout of the header date.
const DateLayout = "%Y년 %m월 %d일"

// IndexData feeds templates/index.html.
type IndexData struct {
	Date      string
	Category  string
	MaxLength int
	Guide     template.HTML
}

// AdminData feeds templates/admin.html.
type AdminData struct {
	Categories  []string
	Featured    string
	Suggestions []string
	MaxLength   int
}

// Pages holds the parsed page templates and the pre-rendered guide.
type Pages struct {
	index *template.Template
	admin *template.Template
	guide template.HTML
}

func Load() (*Pages, error) {
	index, err := template.ParseFS(files, "templates/base.html", "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	admin, err := template.ParseFS(files, "templates/base.html", "templates/admin.html")
	if err != nil {
		return nil, fmt.Errorf("parse admin template: %w", err)
	}

	src, err := files.ReadFile("guide.md")
	if err != nil {
		return nil, fmt.Errorf("read guide: %w", err)
	}
	guide, err := RenderMarkdown(src)
	if err != nil {
		return nil, fmt.Errorf("render guide: %w", err)
	}

	return &Pages{index: index, admin: admin, guide: guide}, nil
}

// RenderMarkdown converts trusted Markdown to HTML. Raw HTML in the source is
// dropped by goldmark's default renderer.
func RenderMarkdown(src []byte) (template.HTML, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// DateLabel formats t for the page header.
func DateLabel(t time.Time) string {
	return strftime.Format(DateLayout, t)
}

func (p *Pages) Guide() template.HTML { return p.guide }

// Index renders the main page. data.Guide is filled in when empty.
func (p *Pages) Index(w io.Writer, data IndexData) error {
	if data.Guide == "" {
		data.Guide = p.guide
	}
	if data.MaxLength == 0 {
		data.MaxLength = models.MaxTopicLength
	}
	return p.index.ExecuteTemplate(w, "base", data)
}

// Admin renders the admin page.
func (p *Pages) Admin(w io.Writer, data AdminData) error {
	if data.MaxLength == 0 {
		data.MaxLength = models.MaxTopicLength
	}
	return p.admin.ExecuteTemplate(w, "base", data)
}

// MustLoad is Load for the embedded assets, which ship with the binary and
// can only fail on a build defect.
func MustLoad() *Pages {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}
