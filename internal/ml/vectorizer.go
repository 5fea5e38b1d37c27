package ml

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
)

// A Vectorizer turns free-text skill strings into fixed-width TF-IDF
// vectors. The vocabulary is capped at fit time; out-of-vocabulary tokens
// contribute zero weight at transform time.
type Vectorizer struct {
	// Vocabulary holds the retained tokens in feature-index order.
	Vocabulary []string `json:"vocabulary"`
	// IDF holds the smoothed inverse-document-frequency weight per token,
	// aligned with Vocabulary.
	IDF []float64 `json:"idf"`

	index map[string]int
}

// Tokenize lower-cases a skill string and splits it on commas and
// whitespace.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	var tokens []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// FitVectorizer builds a vectorizer over a document corpus, keeping at most
// maxFeatures tokens. The most frequent tokens win; ties break
// alphabetically so refits over the same corpus are reproducible.
func FitVectorizer(docs []string, maxFeatures int) *Vectorizer {
	totalCounts := make(map[string]int)
	docCounts := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc) {
			totalCounts[tok]++
			if !seen[tok] {
				seen[tok] = true
				docCounts[tok]++
			}
		}
	}

	tokens := make([]string, 0, len(totalCounts))
	for tok := range totalCounts {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if totalCounts[tokens[i]] == totalCounts[tokens[j]] {
			return tokens[i] < tokens[j]
		}
		return totalCounts[tokens[i]] > totalCounts[tokens[j]]
	})
	if maxFeatures > 0 && len(tokens) > maxFeatures {
		tokens = tokens[:maxFeatures]
	}
	sort.Strings(tokens)

	// Smoothed idf, so tokens present in every document still carry weight.
	n := float64(len(docs))
	idf := make([]float64, len(tokens))
	for i, tok := range tokens {
		idf[i] = math.Log((1+n)/(1+float64(docCounts[tok]))) + 1
	}

	v := &Vectorizer{Vocabulary: tokens, IDF: idf}
	v.buildIndex()
	return v
}

func (v *Vectorizer) buildIndex() {
	v.index = make(map[string]int, len(v.Vocabulary))
	for i, tok := range v.Vocabulary {
		v.index[tok] = i
	}
}

// Width is the dimensionality of the vectors this vectorizer produces.
func (v *Vectorizer) Width() int {
	return len(v.Vocabulary)
}

// Transform produces the L2-normalized TF-IDF vector for one skill string.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.Vocabulary))
	for _, tok := range Tokenize(text) {
		if i, ok := v.index[tok]; ok {
			vec[i] += v.IDF[i]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// MarshalJSON implements json.Marshaler.
func (v *Vectorizer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Vocabulary []string  `json:"vocabulary"`
		IDF        []float64 `json:"idf"`
	}{Vocabulary: v.Vocabulary, IDF: v.IDF})
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Vectorizer) UnmarshalJSON(data []byte) error {
	var aux struct {
		Vocabulary []string  `json:"vocabulary"`
		IDF        []float64 `json:"idf"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v.Vocabulary = aux.Vocabulary
	v.IDF = aux.IDF
	v.buildIndex()
	return nil
}
