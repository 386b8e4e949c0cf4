// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package recommend

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CountVectorizer turns tag documents into bag-of-words count vectors over a
// bounded vocabulary. MaxFeatures caps the vocabulary at the most frequent
// tokens corpus-wide; ties on frequency break alphabetically.
type CountVectorizer struct {
	MaxFeatures int
}

// FitTransform builds the vocabulary from docs and returns one count vector
// per document, all of equal width. The vocabulary holds tokens of at least
// two characters that are not stop words. When no document yields any token,
// the result degenerates to zero vectors of width one so downstream
// similarity math still has well-formed rows.
func (v *CountVectorizer) FitTransform(docs []string) ([][]float64, []string) {
	tokenized := make([][]string, len(docs))
	totals := make(map[string]int)
	for i, doc := range docs {
		tokens := tokenize(doc)
		tokenized[i] = tokens
		for _, tok := range tokens {
			totals[tok]++
		}
	}

	vocab := selectVocabulary(totals, v.MaxFeatures)
	width := len(vocab)
	if width == 0 {
		width = 1
	}

	index := make(map[string]int, len(vocab))
	for i, tok := range vocab {
		index[tok] = i
	}

	matrix := make([][]float64, len(docs))
	for i, tokens := range tokenized {
		row := make([]float64, width)
		for _, tok := range tokens {
			if j, ok := index[tok]; ok {
				row[j]++
			}
		}
		matrix[i] = row
	}

	return matrix, vocab
}

// selectVocabulary keeps the maxFeatures most frequent tokens, alphabetical
// within equal counts, returned in alphabetical order.
func selectVocabulary(totals map[string]int, maxFeatures int) []string {
	tokens := make([]string, 0, len(totals))
	for tok := range totals {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(a, b int) bool {
		if totals[tokens[a]] != totals[tokens[b]] {
			return totals[tokens[a]] > totals[tokens[b]]
		}
		return tokens[a] < tokens[b]
	})

	if maxFeatures > 0 && len(tokens) > maxFeatures {
		tokens = tokens[:maxFeatures]
	}
	sort.Strings(tokens)
	return tokens
}

// tokenize splits a lowercased document into word tokens: maximal runs of
// letters, digits and underscores, dropping single-character tokens and stop
// words.
func tokenize(doc string) []string {
	tokens := strings.FieldsFunc(doc, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	out := tokens[:0]
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < 2 {
			continue
		}
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}
