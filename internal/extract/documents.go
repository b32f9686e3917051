package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tenderhub/normalizer/internal/domain"
)

var urlRe = regexp.MustCompile(`https?://[^\s"'<>\)\]]+`)

// NormalizeDocumentLinks converts the link shapes that appear in source
// rows into a flat document list: a bare URL string, free text containing
// URLs, a list of strings or maps, or a single map with url/link keys.
// Results are de-duplicated by URL preserving first-seen order.
func NormalizeDocumentLinks(raw any) []domain.Document {
	collected := collectDocuments(raw)
	if len(collected) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(collected))
	docs := make([]domain.Document, 0, len(collected))
	for _, doc := range collected {
		url := strings.TrimSpace(doc.URL)
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		doc.URL = url
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil
	}
	return docs
}

func collectDocuments(raw any) []domain.Document {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return documentsFromString(v)
	case []string:
		var docs []domain.Document
		for _, s := range v {
			docs = append(docs, documentsFromString(s)...)
		}
		return docs
	case []any:
		var docs []domain.Document
		for _, item := range v {
			docs = append(docs, collectDocuments(item)...)
		}
		return docs
	case map[string]any:
		return documentsFromMap(v)
	case domain.Document:
		return []domain.Document{v}
	default:
		return nil
	}
}

func documentsFromString(s string) []domain.Document {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if (strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")) &&
		!strings.ContainsAny(s, " \t\n") {
		return []domain.Document{{URL: s}}
	}
	urls := urlRe.FindAllString(s, -1)
	docs := make([]domain.Document, 0, len(urls))
	for _, u := range urls {
		docs = append(docs, domain.Document{URL: strings.TrimRight(u, ".,;")})
	}
	return docs
}

func documentsFromMap(m map[string]any) []domain.Document {
	doc := domain.Document{}
	for _, key := range []string{"url", "link", "href", "uri", "pdf_url", "download_url"} {
		if v, ok := m[key].(string); ok && strings.TrimSpace(v) != "" {
			doc.URL = strings.TrimSpace(v)
			break
		}
	}
	if v, ok := m["type"].(string); ok {
		doc.Type = strings.TrimSpace(v)
	} else if v, ok := m["format"].(string); ok {
		doc.Type = strings.TrimSpace(v)
	}
	if v, ok := m["language"].(string); ok {
		doc.Language = strings.TrimSpace(v)
	}
	for _, key := range []string{"description", "title", "name", "text"} {
		if v, ok := m[key].(string); ok && strings.TrimSpace(v) != "" {
			doc.Description = strings.TrimSpace(v)
			break
		}
	}

	if doc.URL != "" {
		return []domain.Document{doc}
	}

	// Maps without a recognizable URL key sometimes nest lists of links.
	// Keys are walked in sorted order so the output order is stable.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var docs []domain.Document
	for _, k := range keys {
		switch nested := m[k].(type) {
		case []any, map[string]any:
			docs = append(docs, collectDocuments(nested)...)
		}
	}
	return docs
}
