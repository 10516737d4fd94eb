package rank

import "math"

// engine accumulates preprocessed documents and scores them against a query's
// term multiset. The query is always document index 0, followed by one
// document per corpus entry in input order. Term tables live only for one
// search invocation; nothing is cached across calls.
type engine struct {
	docs []map[string]int // term -> frequency per document
}

func newEngine(capacity int) *engine {
	return &engine{docs: make([]map[string]int, 0, capacity+1)}
}

// addDocument appends a preprocessed document to the corpus.
func (e *engine) addDocument(tokens []string) {
	freq := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}
	e.docs = append(e.docs, freq)
}

// measures computes one raw measure per corpus document (index 1..n):
// the sum over the query's term multiset of tf(term, doc) * idf(term).
// Duplicate query terms contribute once per occurrence.
func (e *engine) measures(query []string) []float64 {
	if len(e.docs) <= 1 {
		return nil
	}

	out := make([]float64, len(e.docs)-1)
	for i := 1; i < len(e.docs); i++ {
		var sum float64
		for _, term := range query {
			tf := float64(e.docs[i][term])
			if tf == 0 {
				continue
			}
			sum += tf * e.idf(term)
		}
		out[i-1] = sum
	}
	return out
}

// idf applies logarithmic dampening with add-one smoothing on document
// frequency, so terms unique to the query contribute a bounded weight
// instead of dividing by zero.
func (e *engine) idf(term string) float64 {
	df := 0
	for _, d := range e.docs {
		if d[term] > 0 {
			df++
		}
	}
	return math.Log(float64(len(e.docs))/float64(1+df)) + 1
}
