package textutil

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	if len(b.tokens) < len(a.tokens) {
		a, b = b, a
	}
	var dot float64
	for token, weight := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += weight * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// Vectorize fits IDF weights on texts and returns one TF-IDF fingerprint per
// text, in input order. Texts without tokens yield nil entries.
func Vectorize(texts []string) []*Fingerprint {
	raw := make([]*Fingerprint, len(texts))
	corpus := NewCorpus()
	for i, text := range texts {
		raw[i] = NewFingerprint(text)
		corpus.Add(raw[i])
	}
	idf := corpus.IDF()
	out := make([]*Fingerprint, len(texts))
	for i, fp := range raw {
		out[i] = fp.WithIDF(idf)
	}
	return out
}
