// Package chunk splits large serialized payloads into fixed-size,
// offset-addressed chunks with navigation metadata, so context-constrained
// clients can page through schema text one bounded piece at a time.
//
// Chunking is purely byte-offset based and does not respect semantic
// boundaries such as JSON object edges. That is a deliberate tradeoff:
// offsets stay predictable and the same inputs always produce the same chunk.
package chunk

import (
	"fmt"

	"github.com/specview/specview/pkg/errdefs"
)

// DefaultChunkSize is the chunk size used when a caller chooses to fall back
// to a default instead of failing. The engine itself is strict and never
// substitutes it.
const DefaultChunkSize = 4000

// Chunk is one bounded piece of a larger text, with the metadata a client
// needs to request the neighboring pieces. Chunks are recomputed per request
// and never stored.
type Chunk struct {
	Text        string
	StartOffset int
	EndOffset   int
	TotalLength int
	Index       int
	ChunkSize   int
	HasPrevious bool
	HasNext     bool
	// NextIndex is the index to request the following chunk. Only meaningful
	// when HasNext is true.
	NextIndex int
}

// Total returns the number of chunks a text of length totalLength splits
// into at the given chunk size. Zero-length text counts as a single chunk.
func Total(totalLength, chunkSize int) int {
	if totalLength <= 0 || chunkSize <= 0 {
		return 1
	}
	return (totalLength + chunkSize - 1) / chunkSize
}

// Paginate returns chunk number index of fullText split into chunkSize-byte
// pieces. chunkSize must be positive and index non-negative; an index at or
// beyond the last chunk fails with an out_of_range error naming the valid
// range. Pure: safe to call concurrently and redundantly.
func Paginate(fullText string, chunkSize, index int) (*Chunk, error) {
	if chunkSize <= 0 {
		return nil, errdefs.New(errdefs.ErrorTypeInvalidParameter,
			"chunk_size must be a positive integer",
			fmt.Sprintf("got %d", chunkSize))
	}
	if index < 0 {
		return nil, errdefs.New(errdefs.ErrorTypeInvalidParameter,
			"index must be a non-negative integer",
			fmt.Sprintf("got %d", index))
	}

	totalLength := len(fullText)
	if totalLength > 0 {
		// maxIndex computed divisionally so index*chunkSize cannot overflow
		// before the bound check.
		maxIndex := (totalLength - 1) / chunkSize
		if index > maxIndex {
			return nil, errdefs.New(errdefs.ErrorTypeOutOfRange,
				fmt.Sprintf("index %d is out of range", index),
				fmt.Sprintf("valid index range is [0, %d]", maxIndex))
		}
	} else if index > 0 {
		return nil, errdefs.New(errdefs.ErrorTypeOutOfRange,
			fmt.Sprintf("index %d is out of range", index),
			"text is empty; only index 0 is valid")
	}

	start := index * chunkSize
	end := start + chunkSize
	if end > totalLength {
		end = totalLength
	}

	c := &Chunk{
		Text:        fullText[start:end],
		StartOffset: start,
		EndOffset:   end,
		TotalLength: totalLength,
		Index:       index,
		ChunkSize:   chunkSize,
		HasPrevious: index > 0,
		HasNext:     end < totalLength,
	}
	if c.HasNext {
		c.NextIndex = index + 1
	}
	return c, nil
}
