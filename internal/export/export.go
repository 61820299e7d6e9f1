// Package export renders conversations to Markdown files with YAML front
// matter, suitable for archiving or feeding into static site generators.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/recallhq/recall/internal/errors"
	"github.com/recallhq/recall/internal/history"
	"github.com/recallhq/recall/internal/logger"
)

// Format selects the output representation of an export.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".md"
}

// Label returns the human-readable name shown in pickers.
func (f Format) Label() string {
	if f == FormatJSON {
		return "JSON (.json)"
	}
	return "Markdown (.md)"
}

// Formats lists the supported export formats in display order.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatJSON}
}

// FrontMatter is the metadata block at the top of an exported file.
type FrontMatter struct {
	Title    string    `yaml:"title"`
	Slug     string    `yaml:"slug"`
	Created  time.Time `yaml:"created"`
	Exported time.Time `yaml:"exported"`
	Messages int       `yaml:"messages"`
}

// Writer writes exported conversations under a base directory.
type Writer struct {
	dir string
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the directory exports are written to.
func (w *Writer) Dir() string {
	return w.dir
}

// Write renders the conversation as Markdown and writes it to <dir>/<slug>.md,
// overwriting any previous export of the same conversation. It returns the
// path of the written file.
func (w *Writer) Write(conv history.Conversation, messages []history.Message) (string, error) {
	return w.WriteAs(conv, messages, FormatMarkdown)
}

// WriteAs writes the conversation in the given format under the export
// directory. The file is named after the slug, falling back to the ID for
// conversations without one.
func (w *Writer) WriteAs(conv history.Conversation, messages []history.Message, format Format) (string, error) {
	var content string
	var err error
	switch format {
	case FormatJSON:
		content, err = RenderJSON(conv, messages)
	default:
		content, err = Render(conv, messages)
	}
	if err != nil {
		return "", errors.ExportFailed(conv.Slug, err)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", errors.ExportFailed(conv.Slug, err)
	}

	name := conv.Slug
	if name == "" {
		name = conv.ID
	}
	path := filepath.Join(w.dir, name+format.Ext())

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errors.ExportFailed(conv.Slug, err)
	}

	logger.Info("Exported conversation %s to %s", conv.ID, path)
	return path, nil
}

// Render produces the full Markdown document for a conversation.
func Render(conv history.Conversation, messages []history.Message) (string, error) {
	fm := FrontMatter{
		Title:    conv.Title,
		Slug:     conv.Slug,
		Created:  conv.CreatedAt.UTC(),
		Exported: time.Now().UTC(),
		Messages: len(messages),
	}

	meta, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString("# " + conv.Title + "\n")

	for _, msg := range messages {
		b.WriteString("\n## " + roleLabel(msg.Role))
		if !msg.CreatedAt.IsZero() {
			b.WriteString(" (" + msg.CreatedAt.UTC().Format("2006-01-02 15:04") + ")")
		}
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRight(msg.Content, "\n"))
		b.WriteString("\n")
	}

	return b.String(), nil
}

type jsonDocument struct {
	Title    string        `json:"title"`
	Slug     string        `json:"slug"`
	Created  time.Time     `json:"created"`
	Exported time.Time     `json:"exported"`
	Messages []jsonMessage `json:"messages"`
}

type jsonMessage struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// RenderJSON produces a pretty-printed JSON document for a conversation.
func RenderJSON(conv history.Conversation, messages []history.Message) (string, error) {
	doc := jsonDocument{
		Title:    conv.Title,
		Slug:     conv.Slug,
		Created:  conv.CreatedAt.UTC(),
		Exported: time.Now().UTC(),
		Messages: make([]jsonMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		doc.Messages = append(doc.Messages, jsonMessage{
			Role:    msg.Role,
			Content: msg.Content,
			SentAt:  msg.CreatedAt.UTC(),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func roleLabel(role string) string {
	switch role {
	case history.RoleUser:
		return "You"
	case history.RoleAssistant:
		return "Assistant"
	default:
		return fmt.Sprintf("Unknown (%s)", role)
	}
}
