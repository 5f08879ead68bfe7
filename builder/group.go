/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package builder

import "strings"

// selectorGroup is every declaration resolved for one (media, selector)
// pair, in first-seen property order.
type selectorGroup struct {
	Media    string
	Selector string
	Decls    []propertyValue
}

// rule is the final emitted form: one or more selectors sharing an
// identical ordered declaration list, comma-joined (§4.9 step 4's
// "deduplication contract").
type rule struct {
	Media      string
	Selectors  []string
	Decls      []propertyValue
}

// groupDeclarations implements §4.9 steps 4 and the dedup half of step 3c:
// declarations are deduplicated by the exact (media, selector, property,
// value) tuple (invariant 2), then grouped by (media, selector), then
// selector groups sharing an identical ordered declaration list within the
// same media are merged under a combined, comma-joined selector list.
// excluded, if non-nil, is a set of tuple keys to skip entirely — used by
// per-project emission to subtract declarations already produced by a
// critical unit (§4.9's shared/critical pipelines note).
func groupDeclarations(decls []declaration, excluded map[tupleKey]bool) []rule {
	seen := make(map[tupleKey]bool, len(decls))
	var groups []*selectorGroup
	groupIndex := make(map[string]int, len(decls))

	var mediaOrder []string
	mediaIndex := make(map[string]int)

	for _, d := range decls {
		key := d.key()
		if seen[key] {
			continue
		}
		if excluded != nil && excluded[key] {
			continue
		}
		seen[key] = true

		gkey := d.Media + "\x00" + d.Selector
		if idx, ok := groupIndex[gkey]; ok {
			groups[idx].Decls = append(groups[idx].Decls, propertyValue{Property: d.Property, Value: d.Value})
		} else {
			groupIndex[gkey] = len(groups)
			groups = append(groups, &selectorGroup{
				Media:    d.Media,
				Selector: d.Selector,
				Decls:    []propertyValue{{Property: d.Property, Value: d.Value}},
			})
		}

		if _, ok := mediaIndex[d.Media]; !ok {
			mediaIndex[d.Media] = len(mediaOrder)
			mediaOrder = append(mediaOrder, d.Media)
		}
	}

	return mergeIdenticalGroups(groups, mediaOrder)
}

// mergeIdenticalGroups merges selectorGroups sharing the same media and an
// identical ordered declaration list into one rule with a combined selector
// list, preserving first-seen order both across media (non-media rules
// first, since "" sorts before any populated media string is never relied
// on — mediaOrder already records encounter order with "" first whenever a
// non-media declaration appeared before any media one) and within a media
// block.
func mergeIdenticalGroups(groups []*selectorGroup, mediaOrder []string) []rule {
	var rules []rule
	ruleIndex := make(map[string]int)

	for _, g := range groups {
		declKey := serializeDecls(g.Decls)
		key := g.Media + "\x00" + declKey
		if idx, ok := ruleIndex[key]; ok {
			rules[idx].Selectors = append(rules[idx].Selectors, g.Selector)
			continue
		}
		ruleIndex[key] = len(rules)
		rules = append(rules, rule{
			Media:     g.Media,
			Selectors: []string{g.Selector},
			Decls:     g.Decls,
		})
	}

	return orderByMedia(rules, mediaOrder)
}

// orderByMedia stable-sorts rules so every non-media rule precedes every
// media-query block (invariant 6), and media blocks themselves appear in
// first-seen order.
func orderByMedia(rules []rule, mediaOrder []string) []rule {
	mediaRank := make(map[string]int, len(mediaOrder))
	rank := 1
	for _, m := range mediaOrder {
		if m == "" {
			continue
		}
		mediaRank[m] = rank
		rank++
	}

	ordered := make([]rule, len(rules))
	copy(ordered, rules)

	// Stable partition: non-media rules (rank 0) first, then media rules
	// grouped by first-seen media order. A simple stable sort on rank
	// preserves each bucket's original relative order.
	rankOf := func(m string) int {
		if m == "" {
			return 0
		}
		return mediaRank[m]
	}
	for i := 1; i < len(ordered); i++ {
		j := i
		for j > 0 && rankOf(ordered[j-1].Media) > rankOf(ordered[j].Media) {
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
			j--
		}
	}
	return ordered
}

func serializeDecls(decls []propertyValue) string {
	var sb strings.Builder
	for _, d := range decls {
		sb.WriteString(d.Property)
		sb.WriteString(":")
		sb.WriteString(d.Value)
		sb.WriteString(";")
	}
	return sb.String()
}
