// Package markup scans raw HTML documents token by token and extracts the few
// fragments the scrapers depend on. It never builds a DOM, so each extraction is
// a small state machine driven by the tokenizer.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// MaxTokenSize bounds the bytes a single token may span before scanning fails.
const MaxTokenSize = 8 << 20

var ErrInvalidUTF8 = errors.New("document is not valid utf-8")

type visitor struct {
	tag  func(tok html.Token)
	text func(text string)
}

func scan(doc []byte, v visitor) error {
	if !utf8.Valid(doc) {
		return ErrInvalidUTF8
	}

	z := html.NewTokenizer(bytes.NewReader(doc))
	z.SetMaxBuf(MaxTokenSize)
	for {
		switch z.Next() {
		case html.ErrorToken:
			err := z.Err()
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("tokenize: %w", err)
		case html.StartTagToken, html.SelfClosingTagToken:
			if v.tag != nil {
				v.tag(z.Token())
			}
		case html.TextToken:
			if v.text != nil {
				v.text(string(z.Text()))
			}
		}
	}
}

// TitleAttributes returns the value of every start tag that carries exactly one
// `title` attribute, in document order.
func TitleAttributes(doc []byte) ([]string, error) {
	var titles []string
	err := scan(doc, visitor{
		tag: func(tok html.Token) {
			var found []string
			for _, attr := range tok.Attr {
				if attr.Namespace == "" && attr.Key == "title" {
					found = append(found, attr.Val)
				}
			}
			if len(found) == 1 {
				titles = append(titles, found[0])
			}
		},
	})
	if err != nil {
		return nil, err
	}
	return titles, nil
}

// LabeledValue returns the first text whose trimmed content ends with `suffix`
// that follows a text equal to `label`. ok is false when no value was captured.
func LabeledValue(doc []byte, label, suffix string) (value string, ok bool, err error) {
	capture := NewCapture(label, suffix)
	err = scan(doc, visitor{text: capture.Feed})
	if err != nil {
		return "", false, err
	}
	value, ok = capture.Value()
	return value, ok, nil
}

type CaptureState int

const (
	Idle CaptureState = iota
	Armed
	Captured
)

func (s CaptureState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Captured:
		return "captured"
	}
	return fmt.Sprintf("CaptureState(%d)", int(s))
}

// Capture is the labeled-value state machine. The label arms it only once, the first
// suffixed text after that is kept and the machine never leaves Captured.
type Capture struct {
	label  string
	suffix string
	state  CaptureState
	value  string
}

func NewCapture(label, suffix string) *Capture {
	return &Capture{label: label, suffix: suffix}
}

// Feed advances the machine with the content of one text node.
func (c *Capture) Feed(text string) {
	text = strings.TrimSpace(text)

	switch c.state {
	case Idle:
		if text == c.label {
			c.state = Armed
		}
	case Armed:
		if strings.HasSuffix(text, c.suffix) {
			c.value = text
			c.state = Captured
		}
	}
}

func (c *Capture) State() CaptureState {
	return c.state
}

func (c *Capture) Value() (string, bool) {
	return c.value, c.state == Captured
}
