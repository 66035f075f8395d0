// ABOUTME: Embedding cache keyed by chunk text hash and embedding model
// ABOUTME: Vectors stored as little-endian float64 BLOBs
package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"time"
)

// schema creates the embedding cache table. The primary key pairs the text
// hash with the model so switching embedding models never serves stale
// vectors.
const schema = `
CREATE TABLE IF NOT EXISTS embeddings (
    text_hash  TEXT NOT NULL,
    model      TEXT NOT NULL,
    dimension  INTEGER NOT NULL,
    vector     BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (text_hash, model)
);
`

// EmbeddingCache persists chunk embeddings so re-summarizing the same
// document (for example with a different prompt) skips paid embedding
// calls.
type EmbeddingCache struct {
	db *DB
}

// NewEmbeddingCache creates a cache backed by the given database.
func NewEmbeddingCache(db *DB) *EmbeddingCache {
	return &EmbeddingCache{db: db}
}

// HashText returns the cache key for a chunk text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Get looks up a cached vector. The second return is false on a miss.
func (c *EmbeddingCache) Get(textHash, model string) ([]float64, bool, error) {
	var (
		dimension int
		blob      []byte
	)
	err := c.db.conn.QueryRow(`
		SELECT dimension, vector FROM embeddings
		WHERE text_hash = ? AND model = ?
	`, textHash, model).Scan(&dimension, &blob)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup failed: %w", err)
	}

	vector, err := blobToVector(blob)
	if err != nil {
		return nil, false, err
	}
	if len(vector) != dimension {
		return nil, false, fmt.Errorf("cache corrupt: stored dimension %d, blob holds %d", dimension, len(vector))
	}
	return vector, true, nil
}

// Put stores a vector, replacing any previous entry for the same key.
func (c *EmbeddingCache) Put(textHash, model string, vector []float64) error {
	_, err := c.db.conn.Exec(`
		INSERT INTO embeddings (text_hash, model, dimension, vector, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(text_hash, model) DO UPDATE SET
			dimension = excluded.dimension,
			vector = excluded.vector,
			created_at = excluded.created_at
	`, textHash, model, len(vector), vectorToBlob(vector), time.Now())
	if err != nil {
		return fmt.Errorf("cache store failed: %w", err)
	}
	return nil
}

// Count returns the number of cached vectors.
func (c *EmbeddingCache) Count() (int, error) {
	var n int
	if err := c.db.conn.QueryRow(`SELECT COUNT(*) FROM embeddings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("cache count failed: %w", err)
	}
	return n, nil
}

// Purge removes every cached vector and reports how many were deleted.
func (c *EmbeddingCache) Purge() (int64, error) {
	res, err := c.db.conn.Exec(`DELETE FROM embeddings`)
	if err != nil {
		return 0, fmt.Errorf("cache purge failed: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cache purge failed: %w", err)
	}
	return removed, nil
}

// vectorToBlob encodes a vector as little-endian float64 bytes.
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector decodes a little-endian float64 blob.
func blobToVector(blob []byte) ([]float64, error) {
	if len(blob)%8 != 0 {
		return nil, fmt.Errorf("invalid vector blob length %d", len(blob))
	}
	vector := make([]float64, len(blob)/8)
	for i := range vector {
		vector[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return vector, nil
}
