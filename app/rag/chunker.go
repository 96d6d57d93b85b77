package rag

// ChunkText splits text into rune windows of the given size with the given
// overlap between consecutive chunks. Overlap keeps sentences that straddle a
// boundary retrievable from both sides.
func ChunkText(text string, size, overlap int) []string {
	runes := []rune(text)
	var chunks []string

	for start := 0; start < len(runes); start += size - overlap {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}

	return chunks
}
