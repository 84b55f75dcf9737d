package internal

// SplitChunks partitions text into contiguous windows of exactly size
// characters; the final window holds the remainder. Concatenating the
// result in order reconstructs the input exactly. Empty input yields a
// single empty chunk, though the generator rejects empty transcripts
// before chunking is ever reached.
func SplitChunks(text string, size int) []string {
	if size <= 0 || len(text) <= size {
		return []string{text}
	}

	chunks := make([]string, 0, len(text)/size+1)
	for start := 0; start < len(text); start += size {
		end := min(start+size, len(text))
		chunks = append(chunks, text[start:end])
	}
	return chunks
}
