// Package variant maps a product's variant list and the shopper's
// in-progress facet selections to exactly one purchasable variant.
// Facets are discovered empirically from the variant list; there is no
// separate facet schema.
package variant

import "github.com/linkon63/neocomerze/internal/domain"

// Selection maps a facet key to the chosen option-value id. It covers
// zero or more of the product's facets while the shopper interacts with
// the pickers.
type Selection map[string]int64

func (s Selection) clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// selectionOf is the complete option-value set of a variant.
func selectionOf(v domain.Variant) Selection {
	out := make(Selection, len(v.OptionValues))
	for _, ov := range v.OptionValues {
		out[ov.FacetKey] = ov.ID
	}
	return out
}

// GroupOptions builds the product's facet groups from its variants:
// one group per facet key in order of first appearance, with the values
// de-duplicated by option-value id.
func GroupOptions(variants []domain.Variant) []domain.OptionGroup {
	var groups []domain.OptionGroup
	index := make(map[string]int)
	seen := make(map[string]map[int64]bool)

	for _, v := range variants {
		for _, ov := range v.OptionValues {
			i, ok := index[ov.FacetKey]
			if !ok {
				i = len(groups)
				index[ov.FacetKey] = i
				groups = append(groups, domain.OptionGroup{Key: ov.FacetKey, Label: ov.FacetKey})
				seen[ov.FacetKey] = make(map[int64]bool)
			}
			if seen[ov.FacetKey][ov.ID] {
				continue
			}
			seen[ov.FacetKey][ov.ID] = true
			groups[i].Values = append(groups[i].Values, ov)
		}
	}
	return groups
}

// matches reports whether the variant carries every (facet, value) pair
// named in the selection. Facets the selection does not name are
// wildcards.
func matches(v domain.Variant, sel Selection) bool {
	for facet, want := range sel {
		found := false
		for _, ov := range v.OptionValues {
			if ov.FacetKey == facet && ov.ID == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FindVariant returns the first variant in catalog order whose option
// values satisfy every pair in the selection. Ties between duplicate
// variants resolve positionally, not as an error.
func FindVariant(variants []domain.Variant, sel Selection) (domain.Variant, bool) {
	for _, v := range variants {
		if matches(v, sel) {
			return v, true
		}
	}
	return domain.Variant{}, false
}

// SeedSelection is the initial selection on product load: the first
// variant's complete option-value set, so a purchasable variant is
// active by default whenever one exists.
func SeedSelection(variants []domain.Variant) Selection {
	if len(variants) == 0 {
		return Selection{}
	}
	return selectionOf(variants[0])
}

// SelectOption applies a shopper's tap on one facet value. When the
// tentative combination exists as a SKU, that variant becomes active and
// its full option-value set becomes the selection. When it does not, the
// first variant carrying the tapped pair is adopted wholesale, silently
// overriding the other facet choices so the selection stays consistent
// with a real SKU. When no variant carries the pair at all, the
// tentative selection is kept and no variant is active; callers must
// disable purchase actions in that state.
func SelectOption(variants []domain.Variant, current Selection, facetKey string, optionValueID int64) (Selection, *domain.Variant) {
	tentative := current.clone()
	tentative[facetKey] = optionValueID

	if v, ok := FindVariant(variants, tentative); ok {
		return selectionOf(v), &v
	}

	for _, v := range variants {
		if matches(v, Selection{facetKey: optionValueID}) {
			return selectionOf(v), &v
		}
	}

	return tentative, nil
}
