package renderer

// Chunk is a contiguous run of flat pixel indices [Start, End), where pixel
// index p maps to column p % width and row p / width
type Chunk struct {
	ID    int
	Start int
	End   int
}

// Len returns the number of pixels in the chunk
func (c Chunk) Len() int {
	return c.End - c.Start
}

// NewChunkGrid splits width*height pixels into chunks of chunkSize pixels.
// A chunkSize of zero or less means one image row per chunk.
func NewChunkGrid(width, height, chunkSize int) []Chunk {
	total := width * height
	if chunkSize <= 0 {
		chunkSize = width
	}
	if total <= 0 || chunkSize <= 0 {
		return nil
	}

	chunks := make([]Chunk, 0, (total+chunkSize-1)/chunkSize) // Ceiling division
	for start, id := 0, 0; start < total; start, id = start+chunkSize, id+1 {
		chunks = append(chunks, Chunk{
			ID:    id,
			Start: start,
			End:   min(start+chunkSize, total), // Don't exceed image bounds
		})
	}
	return chunks
}

// chunkSeed derives the generator seed for a chunk so output depends only on
// the base seed and the chunk layout, not on which worker runs it
func chunkSeed(base int64, chunkID int) int64 {
	return base*6364136223846793005 + int64(chunkID)*1442695040888963407 + 1
}
