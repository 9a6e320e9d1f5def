// Package content holds the static material of the game: lessons, quizzes,
// the guru dialogue and the computer shop. Everything is authored as data
// files embedded in the binary.
package content

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/etnz/younginvestor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

//go:embed lessons/*.md quizzes.json guru.json shop.json
var files embed.FS

// Slide is one page of a lesson.
type Slide struct {
	Title string `json:"title"`
	Body  string `json:"body"` // one line per paragraph or list item
}

// Lesson is a school lesson in one language.
type Lesson struct {
	ID       int                    `json:"id"`
	Language younginvestor.Language `json:"language"`
	Title    string                 `json:"title"`
	Slides   []Slide                `json:"slides"`
}

// Lessons returns the ids of the available lessons, in order.
func Lessons() []int {
	entries, _ := fs.ReadDir(files, "lessons")
	var ids []int
	for _, e := range entries {
		name, _, _ := strings.Cut(e.Name(), ".")
		id, err := strconv.Atoi(name)
		if err == nil && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// LoadLesson returns lesson id in lang, falling back to Hebrew when it has not
// been translated. Unknown lessons return an error wrapping fs.ErrNotExist.
func LoadLesson(id int, lang younginvestor.Language) (Lesson, error) {
	src, lang, err := lessonSource(id, lang)
	if err != nil {
		return Lesson{}, err
	}
	l, err := ParseLesson(src)
	if err != nil {
		return Lesson{}, fmt.Errorf("lesson %d: %w", id, err)
	}
	l.ID, l.Language = id, lang
	return l, nil
}

// LessonHTML renders lesson id in lang as an HTML fragment.
func LessonHTML(id int, lang younginvestor.Language) ([]byte, error) {
	src, _, err := lessonSource(id, lang)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := goldmark.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("cannot render lesson %d: %w", id, err)
	}
	return buf.Bytes(), nil
}

func lessonSource(id int, lang younginvestor.Language) ([]byte, younginvestor.Language, error) {
	for _, l := range []younginvestor.Language{lang, younginvestor.Hebrew} {
		src, err := files.ReadFile(path.Join("lessons", fmt.Sprintf("%d.%s.md", id, l)))
		if err == nil {
			return src, l, nil
		}
	}
	return nil, "", fmt.Errorf("lesson %d: %w", id, fs.ErrNotExist)
}

// ParseLesson reads a markdown lesson. The level 1 heading is the lesson
// title and every level 2 heading starts a new slide.
func ParseLesson(src []byte) (Lesson, error) {
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))
	var l Lesson
	var slide *Slide
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			switch h.Level {
			case 1:
				l.Title = inlineText(h, src)
			case 2:
				l.Slides = append(l.Slides, Slide{Title: inlineText(h, src)})
				slide = &l.Slides[len(l.Slides)-1]
			}
			continue
		}
		if slide == nil {
			return Lesson{}, fmt.Errorf("content before the first slide heading")
		}
		lines := blockText(n, src)
		if slide.Body != "" && len(lines) > 0 {
			slide.Body += "\n"
		}
		slide.Body += strings.Join(lines, "\n")
	}
	if len(l.Slides) == 0 {
		return Lesson{}, fmt.Errorf("lesson has no slides")
	}
	return l, nil
}

// blockText returns the lines of a block node.
func blockText(n ast.Node, src []byte) []string {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		return []string{inlineText(n, src)}
	case *ast.List:
		var lines []string
		k := n.Start
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			var parts []string
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				parts = append(parts, blockText(c, src)...)
			}
			marker := "-"
			if n.IsOrdered() {
				marker = strconv.Itoa(k) + "."
				k++
			}
			lines = append(lines, marker+" "+strings.Join(parts, " "))
		}
		return lines
	default:
		var lines []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			lines = append(lines, blockText(c, src)...)
		}
		return lines
	}
}

// inlineText concatenates the text under n.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// decode reads an embedded JSON file once.
func decode[T any](name string) func() (T, error) {
	return sync.OnceValues(func() (T, error) {
		var v T
		data, err := files.ReadFile(name)
		if err != nil {
			return v, err
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return v, fmt.Errorf("invalid %s: %w", name, err)
		}
		return v, nil
	})
}
