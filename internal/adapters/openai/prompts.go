package openai

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/system.txt
var systemPrompt string

//go:embed prompts/horoscope.tmpl
var horoscopeTemplateText string

//go:embed prompts/caption.tmpl
var captionTemplateText string

var (
	horoscopeTemplate = template.Must(template.New("horoscope").Parse(horoscopeTemplateText))
	captionTemplate   = template.Must(template.New("caption").Parse(captionTemplateText))
)

const defaultBrand = "Planets Vibe"

type horoscopeData struct {
	Brand string
	Sign  string
}

type captionData struct {
	Brand       string
	Sign        string
	Description string
	Mood        string
	Color       string
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}
