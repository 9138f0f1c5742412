// Package staging holds the client-side working set for agent creation: a
// draft agent plus the knowledge sources accumulated across wizard pages
// before anything is sent to the platform.
package staging

import (
	"fmt"
	"time"
)

// Kind discriminates the three source variants.
type Kind string

const (
	KindFile    Kind = "FILE"
	KindText    Kind = "TEXT"
	KindWebsite Kind = "WEBSITE"
)

// Item is one not-yet-uploaded knowledge source. Exactly one concrete type
// exists per Kind, so an item can never carry a mismatched payload.
type Item interface {
	ID() string
	Name() string
	Kind() Kind
	StagedAt() time.Time
}

type meta struct {
	ItemID string    `json:"id"`
	Label  string    `json:"name"`
	Added  time.Time `json:"staged_at"`
}

func (m meta) ID() string          { return m.ItemID }
func (m meta) Name() string        { return m.Label }
func (m meta) StagedAt() time.Time { return m.Added }

// FileItem stages a local document for binary upload.
type FileItem struct {
	meta
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
}

func (FileItem) Kind() Kind { return KindFile }

// NewFileItem stages the file at path under the given display name.
func NewFileItem(id, name, path string, sizeBytes int64) *FileItem {
	return &FileItem{
		meta:      meta{ItemID: id, Label: name, Added: time.Now()},
		Path:      path,
		SizeBytes: sizeBytes,
	}
}

// TextItem stages a raw text body.
type TextItem struct {
	meta
	Content string `json:"content"`
}

func (TextItem) Kind() Kind { return KindText }

// NewTextItem stages a text source with the given display name.
func NewTextItem(id, name, content string) *TextItem {
	return &TextItem{
		meta:    meta{ItemID: id, Label: name, Added: time.Now()},
		Content: content,
	}
}

// WebsiteItem stages a URL for server-side crawling.
type WebsiteItem struct {
	meta
	URL string `json:"url"`
}

func (WebsiteItem) Kind() Kind { return KindWebsite }

// NewWebsiteItem stages a website source.
func NewWebsiteItem(id, name, url string) *WebsiteItem {
	return &WebsiteItem{
		meta: meta{ItemID: id, Label: name, Added: time.Now()},
		URL:  url,
	}
}

// itemEnvelope is the serialized form of an Item. One payload field is set,
// matching Kind.
type itemEnvelope struct {
	Kind    Kind         `json:"kind"`
	File    *FileItem    `json:"file,omitempty"`
	Text    *TextItem    `json:"text,omitempty"`
	Website *WebsiteItem `json:"website,omitempty"`
}

func envelope(item Item) (itemEnvelope, error) {
	switch it := item.(type) {
	case *FileItem:
		return itemEnvelope{Kind: KindFile, File: it}, nil
	case *TextItem:
		return itemEnvelope{Kind: KindText, Text: it}, nil
	case *WebsiteItem:
		return itemEnvelope{Kind: KindWebsite, Website: it}, nil
	default:
		return itemEnvelope{}, fmt.Errorf("unknown item type %T", item)
	}
}

func (e itemEnvelope) item() (Item, error) {
	switch e.Kind {
	case KindFile:
		if e.File == nil {
			return nil, fmt.Errorf("file item missing payload")
		}
		return e.File, nil
	case KindText:
		if e.Text == nil {
			return nil, fmt.Errorf("text item missing payload")
		}
		return e.Text, nil
	case KindWebsite:
		if e.Website == nil {
			return nil, fmt.Errorf("website item missing payload")
		}
		return e.Website, nil
	default:
		return nil, fmt.Errorf("unknown item kind %q", e.Kind)
	}
}
