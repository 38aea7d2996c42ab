package search

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const DefaultMaxFeatures = 500

// Vector is a dense TF-IDF row over a Vectorizer vocabulary.
type Vector []float64

// Vectorizer builds L2-normalized TF-IDF vectors with smoothed IDF over a
// vocabulary shared by every document of one fit.
type Vectorizer struct {
	MaxFeatures int
	StopWords   map[string]struct{}
}

func NewVectorizer() Vectorizer {
	return Vectorizer{MaxFeatures: DefaultMaxFeatures, StopWords: vectorizerStopWords}
}

// analyze splits on non-word characters and keeps tokens of two or more runes.
func (v Vectorizer) analyze(doc string) []string {
	fields := strings.FieldsFunc(strings.ToLower(doc), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if _, stop := v.StopWords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FitTransform learns the vocabulary from docs and returns one vector per doc,
// plus the vocabulary in column order.
func (v Vectorizer) FitTransform(docs []string) ([]Vector, []string) {
	counts := make([]map[string]int, len(docs))
	corpusFreq := map[string]int{}
	for i, d := range docs {
		c := map[string]int{}
		for _, tok := range v.analyze(d) {
			c[tok]++
			corpusFreq[tok]++
		}
		counts[i] = c
	}

	vocab := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)
	if v.MaxFeatures > 0 && len(vocab) > v.MaxFeatures {
		sort.SliceStable(vocab, func(i, j int) bool {
			return corpusFreq[vocab[i]] > corpusFreq[vocab[j]]
		})
		vocab = vocab[:v.MaxFeatures]
		sort.Strings(vocab)
	}

	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		df := 0
		for _, c := range counts {
			if c[term] > 0 {
				df++
			}
		}
		idf[i] = math.Log((1+n)/(1+float64(df))) + 1
	}

	out := make([]Vector, len(docs))
	for d, c := range counts {
		vec := make(Vector, len(vocab))
		for term, tf := range c {
			if col, ok := index[term]; ok {
				vec[col] = float64(tf) * idf[col]
			}
		}
		out[d] = l2Normalize(vec)
	}

	return out, vocab
}

func l2Normalize(v Vector) Vector {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
	return v
}

// Cosine returns the cosine similarity of a and b, 0 when either is a zero vector.
func Cosine(a, b Vector) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
