package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
)

var defaultContentTemplates = []string{
	"{{.Prompt}}.\n\n{{.Tags}}",
	"Today: {{.Prompt | lower}}. What does that look like for you?\n\n{{.Tags}}",
	"A gentle reminder: {{.Prompt | lower}}.\n\n{{.Tags}}",
}

// TemplateGenerator renders theme prompts into post text. It stands in for
// the external generation service when none is configured.
type TemplateGenerator struct {
	templates []*template.Template
}

func NewTemplateGenerator(sources ...string) (*TemplateGenerator, error) {
	if len(sources) == 0 {
		sources = defaultContentTemplates
	}
	funcs := template.FuncMap{"lower": strings.ToLower}

	g := &TemplateGenerator{}
	for i, src := range sources {
		tmpl, err := template.New("content").Funcs(funcs).Parse(src)
		if err != nil {
			return nil, &InvalidArgumentError{Field: "template", Reason: fmt.Sprintf("template %d: %v", i, err)}
		}
		g.templates = append(g.templates, tmpl)
	}
	return g, nil
}

func (g *TemplateGenerator) Generate(ctx context.Context, req GenerationRequest) (GeneratedContent, error) {
	if err := ctx.Err(); err != nil {
		return GeneratedContent{}, err
	}

	tmpl := g.templates[req.Index%len(g.templates)]
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, map[string]string{
		"Prompt": req.Theme.Prompt,
		"Theme":  string(req.Theme.Tag),
		"Tags":   strings.Join(req.Hashtags, " "),
	})
	if err != nil {
		return GeneratedContent{}, &ContentGenerationError{Theme: string(req.Theme.Tag), Err: err}
	}

	return GeneratedContent{Content: strings.TrimSpace(buf.String())}, nil
}
