// internal/catalog/corpus.go
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"product-advisor/internal/models"
)

var productIDPattern = regexp.MustCompile(`ma_san_pham: (\d+)`)

// BuildCorpus flattens each product into a single text document for
// embedding. Documents are "key: value" pairs joined by ". ", attribute maps
// flattened the same way with list values joined by ", ". The id pair is
// kept inside the text so semantic hits can be mapped back to products.
func (s *Store) BuildCorpus() []string {
	docs := make([]string, 0, len(s.products))
	for _, p := range s.products {
		docs = append(docs, UnifiedProductText(p))
	}
	return docs
}

// UnifiedProductText renders one product as a corpus document.
func UnifiedProductText(p models.Product) string {
	parts := []string{
		"ma_san_pham: " + strconv.FormatInt(p.ID, 10),
	}
	appendPart := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			parts = append(parts, key+": "+value)
		}
	}
	appendPart("linh_vuc", p.Domain)
	appendPart("danh_muc", p.Category)
	appendPart("ten", p.Name)
	appendPart("mo_ta", p.Description)
	appendPart("gia", p.Price)
	appendPart("thuong_hieu", p.Brand)
	appendPart("loi_ich", p.Benefits)
	appendPart("loi_khuyen", p.Advice)
	appendPart("danh_gia", p.Rating)

	attrKeys := make([]string, 0, len(p.Attributes))
	for k := range p.Attributes {
		attrKeys = append(attrKeys, k)
	}
	sort.Strings(attrKeys)
	for _, k := range attrKeys {
		appendPart(k, FlattenAttributeValue(p.Attributes[k]))
	}

	return strings.Join(parts, ". ")
}

// FlattenAttributeValue renders an attribute value as plain text. Lists are
// joined with ", ", nested maps become "k: v" pairs, scalars print as-is.
func FlattenAttributeValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []interface{}:
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, FlattenAttributeValue(item))
		}
		return strings.Join(items, ", ")
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, k+": "+FlattenAttributeValue(val[k]))
		}
		return strings.Join(pairs, ", ")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// ExtractProductID recovers the product id from a corpus document. The
// second return reports whether the document carried an id pair at all.
func ExtractProductID(doc string) (int64, bool) {
	m := productIDPattern.FindStringSubmatch(doc)
	if len(m) != 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ByID returns the product with the given id, if loaded.
func (s *Store) ByID(id int64) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
