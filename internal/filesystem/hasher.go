package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"sync"
)

// DefaultBufferSize is the read chunk used when no buffer size is configured
const DefaultBufferSize = 64 * 1024

// EmptyDigest is the SHA-256 of zero bytes, uppercase hex
const EmptyDigest = "E3B0C44298FC1C149AFBF4C8996FB92427AE41E4649B934CA495991B7852B855"

// Hasher computes SHA-256 content digests with pooled read buffers
type Hasher struct {
	fs    FileSystem
	lower bool
	pool  sync.Pool
}

// NewHasher creates a hasher reading through fsys. Digests are uppercase hex
// unless lower is set.
func NewHasher(fsys FileSystem, bufferSize int, lower bool) *Hasher {
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	h := &Hasher{fs: fsys, lower: lower}
	h.pool.New = func() any {
		buf := make([]byte, bufferSize)
		return &buf
	}
	return h
}

// Digest hashes the file at path
func (h *Hasher) Digest(ctx context.Context, path string) (string, error) {
	f, err := h.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open %s: %w", ErrHashFailure, path, err)
	}
	defer f.Close()

	adviseSequential(f)

	bufp := h.pool.Get().(*[]byte)
	defer h.pool.Put(bufp)

	return h.digestReader(ctx, f, *bufp, path)
}

func (h *Hasher) digestReader(ctx context.Context, r io.Reader, buf []byte, path string) (string, error) {
	sum := sha256.New()
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := r.Read(buf)
		if n > 0 {
			sum.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: failed to read %s: %w", ErrHashFailure, path, err)
		}
	}

	return h.encode(sum.Sum(nil)), nil
}

func (h *Hasher) encode(sum []byte) string {
	digest := hex.EncodeToString(sum)
	if h.lower {
		return digest
	}
	return strings.ToUpper(digest)
}
