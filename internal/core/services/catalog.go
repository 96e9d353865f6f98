package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/epz-tools/udiscan/internal/core/domain"
	"github.com/epz-tools/udiscan/internal/logger"
)

// The catalog field name carrying an identifier or reference value is
// not fixed; records are recognised by a marker substring in a nearby
// key name, next to the article field that holds the actual value.
const (
	markerUDI    = "UDI"
	markerRef    = "(REF)"
	articleField = "ARI_Artikelkennzeichen"

	// maxIndexDepth bounds the tree walk during token indexing.
	// Catalog records nest vendor metadata far deeper than anything
	// worth indexing.
	maxIndexDepth = 3

	// minTokenLen filters out tokens too short to be useful.
	minTokenLen = 3

	// maxExtractDepth bounds the fallback extraction walk so a
	// pathologically nested record cannot blow the stack.
	maxExtractDepth = 64
)

// Index holds the lookup structures built over one catalog document.
// It is immutable after construction and safe for concurrent reads;
// loading a new document means building a new Index.
type Index struct {
	roots       []domain.RootElement
	identifiers map[string]int              // lower-cased GTIN -> root position
	references  map[string]int              // lower-cased reference -> root position
	terms       map[string]map[int]struct{} // lower-cased token -> root positions
}

// BuildIndex constructs the lookup structures for a catalog document.
// The build is total: unsupported record shapes contribute no entries
// but never fail.
func BuildIndex(doc any) *Index {
	idx := &Index{
		roots:       rootElements(doc),
		identifiers: make(map[string]int),
		references:  make(map[string]int),
		terms:       make(map[string]map[int]struct{}),
	}

	for pos, root := range idx.roots {
		if gtin := extractDirect(root, markerUDI); gtin != "" {
			key := strings.ToLower(gtin)
			idx.identifiers[key] = pos
			idx.addTerm(key, pos)
		}
		if ref := extractDirect(root, markerRef); ref != "" {
			key := strings.ToLower(ref)
			idx.references[key] = pos
			idx.addTerm(key, pos)
		}
		idx.indexTokens(root, pos, 0)
	}

	logger.Info("catalog: indexed %d roots, %d GTINs, %d references, %d terms",
		len(idx.roots), len(idx.identifiers), len(idx.references), len(idx.terms))
	return idx
}

// Stats reports counts for the built index.
func (idx *Index) Stats() domain.CatalogStats {
	if idx == nil {
		return domain.CatalogStats{}
	}
	return domain.CatalogStats{
		Roots:       len(idx.roots),
		Identifiers: len(idx.identifiers),
		References:  len(idx.references),
		Terms:       len(idx.terms),
	}
}

// Roots returns the root elements the index was built over.
func (idx *Index) Roots() []domain.RootElement {
	if idx == nil {
		return nil
	}
	return idx.roots
}

func (idx *Index) addTerm(token string, pos int) {
	set, ok := idx.terms[token]
	if !ok {
		set = make(map[int]struct{})
		idx.terms[token] = set
	}
	set[pos] = struct{}{}
}

// indexTokens walks one root element to a fixed depth, recording every
// key and leaf scalar as a lower-cased token.
func (idx *Index) indexTokens(v any, pos, depth int) {
	if depth > maxIndexDepth {
		return
	}

	switch t := v.(type) {
	case map[string]any:
		for key, val := range t {
			token := strings.ToLower(key)
			if len(token) >= minTokenLen {
				idx.addTerm(token, pos)
			}
			idx.indexTokens(val, pos, depth+1)
		}
	case []any:
		for _, item := range t {
			idx.indexTokens(item, pos, depth+1)
		}
	default:
		token := strings.ToLower(scalarString(t))
		if len(token) >= minTokenLen {
			idx.addTerm(token, pos)
		}
	}
}

// rootElements determines the unit of indexing for a document: the
// elements of a top-level array, the first array-of-objects property
// of a top-level object, or the document itself as a single record.
func rootElements(doc any) []domain.RootElement {
	switch t := doc.(type) {
	case []any:
		return t
	case map[string]any:
		for _, key := range sortedKeys(t) {
			arr, ok := t[key].([]any)
			if !ok || len(arr) == 0 {
				continue
			}
			if _, ok := arr[0].(map[string]any); ok {
				logger.Debug("catalog: using array property %q as root set", key)
				return arr
			}
		}
		return []domain.RootElement{doc}
	case nil:
		return nil
	default:
		return []domain.RootElement{doc}
	}
}

// extractDirect pulls the article value out of a record whose
// top-level structure matches the expected shape: a nested object with
// a key containing the marker, next to the article field. Records of
// any other shape yield "".
func extractDirect(root domain.RootElement, marker string) string {
	record, ok := root.(map[string]any)
	if !ok {
		return ""
	}

	for _, key := range sortedKeys(record) {
		nested, ok := record[key].(map[string]any)
		if !ok {
			continue
		}
		article, hasArticle := nested[articleField]
		if !hasArticle {
			continue
		}
		for subKey := range nested {
			if strings.Contains(subKey, marker) {
				return scalarString(article)
			}
		}
	}
	return ""
}

// extractDeep searches the whole record tree for a marker key with an
// article field sibling. Used on the fallback path, where the marker
// may sit below the top level.
func extractDeep(v any, marker string, depth int) string {
	if depth > maxExtractDepth {
		return ""
	}

	switch t := v.(type) {
	case map[string]any:
		if article, ok := t[articleField]; ok {
			for key := range t {
				if strings.Contains(key, marker) {
					if s := scalarString(article); s != "" {
						return s
					}
				}
			}
		}
		for _, key := range sortedKeys(t) {
			if s := extractDeep(t[key], marker, depth+1); s != "" {
				return s
			}
		}
	case []any:
		for _, item := range t {
			if s := extractDeep(item, marker, depth+1); s != "" {
				return s
			}
		}
	}
	return ""
}

// scalarString renders a leaf JSON value the way it would appear as a
// search token. Nulls render empty and are never indexed.
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
