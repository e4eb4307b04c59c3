// Package hasher computes content digests of files, streaming them in
// fixed-size blocks.
//
// SHA-256 is the default. MD5 is available for comparing against reports
// produced by older tools; it is not collision resistant and must not be
// trusted when file contents may be adversarial. BLAKE2b-256 is a faster
// collision-resistant alternative.
package hasher

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/jmgilman/go/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/backmassage/fltools/internal/config"
	"github.com/backmassage/fltools/internal/fsys"
)

// DefaultBlockSize is used when a non-positive block size is given.
const DefaultBlockSize = config.DefaultBlockSize

// New returns a fresh digest for alg. An empty alg selects SHA-256.
func New(alg config.Algorithm) (hash.Hash, error) {
	switch alg {
	case config.AlgorithmSHA256, "":
		return sha256.New(), nil
	case config.AlgorithmMD5:
		return md5.New(), nil
	case config.AlgorithmBLAKE2b:
		return blake2b.New256(nil)
	default:
		return nil, errors.Newf(fsys.CodeInvalidInput, "unknown hash algorithm %q", alg)
	}
}

// HashFile returns the lowercase hex digest of the file at path, read
// blockSize bytes at a time. Zero-byte files hash to the digest of empty
// input. Directories are rejected.
func HashFile(fs billy.Filesystem, path string, blockSize int, alg config.Algorithm) (string, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return "", fsys.Classify(err, "hash", path)
	}
	if info.IsDir() {
		return "", errors.WithContext(
			errors.Newf(fsys.CodeInvalidInput, "hash %s: is a directory", path),
			"path", path,
		)
	}

	f, err := fs.Open(path)
	if err != nil {
		return "", fsys.Classify(err, "hash", path)
	}
	defer func() { _ = f.Close() }()

	sum, err := HashReader(f, blockSize, alg)
	if err != nil {
		return "", fsys.Classify(err, "hash", path)
	}
	return sum, nil
}

// HashReader streams r through alg in blockSize chunks until EOF.
func HashReader(r io.Reader, blockSize int, alg config.Algorithm) (string, error) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	h, err := New(alg)
	if err != nil {
		return "", err
	}

	buf := make([]byte, blockSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read: %w", err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
