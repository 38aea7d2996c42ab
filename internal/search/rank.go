package search

import (
	"math"
	"sort"
)

// Document is one candidate text to score against a query.
type Document struct {
	OriginalIndex int
	Name          string
	Text          string
}

// Ranked is a Document with its Match % (cosine similarity scaled to 0..100).
type Ranked struct {
	OriginalIndex int
	Name          string
	MatchPercent  float64
	Rank          int
}

// RankDocuments normalizes the query and every document, vectorizes them in one
// shared TF-IDF space and orders documents by similarity to the query. Ties keep
// input order.
func RankDocuments(query string, docs []Document) []Ranked {
	if len(docs) == 0 {
		return []Ranked{}
	}

	corpus := make([]string, 0, len(docs)+1)
	corpus = append(corpus, Normalize(query))
	for _, d := range docs {
		corpus = append(corpus, Normalize(d.Text))
	}

	vectors, _ := NewVectorizer().FitTransform(corpus)
	q := vectors[0]

	out := make([]Ranked, 0, len(docs))
	for i, d := range docs {
		out = append(out, Ranked{
			OriginalIndex: d.OriginalIndex,
			Name:          d.Name,
			MatchPercent:  MatchPercent(Cosine(q, vectors[i+1])),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchPercent > out[j].MatchPercent
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// MatchPercent scales a cosine similarity to a percentage rounded to 2 decimals.
func MatchPercent(cosine float64) float64 {
	if math.IsNaN(cosine) || cosine < 0 {
		return 0
	}
	if cosine > 1 {
		cosine = 1
	}
	return math.Round(cosine*100*100) / 100
}
