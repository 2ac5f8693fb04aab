package docstore

import (
	"bytes"
	"crypto/md5" //nolint:gosec // name hashing only, not security
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

const imageHashLen = 8

// SaveImage stores image data under the images directory as
// qimg_<millisecond-timestamp>_<8-hex-hash><ext>, the hash derived from the
// original file name and the timestamp. Returns the path relative to the
// data root with forward slashes, as recorded on Question records.
func (s *Store) SaveImage(data []byte, originalName string) (string, error) {
	err := s.EnsureDirectories()
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	timestamp := time.Now().UnixMilli()

	sum := md5.Sum([]byte(originalName + strconv.FormatInt(timestamp, 10))) //nolint:gosec // name hashing only
	hash := hex.EncodeToString(sum[:])[:imageHashLen]

	fileName := fmt.Sprintf("qimg_%d_%s%s", timestamp, hash, ext)
	path := filepath.Join(s.ImagesDir(), fileName)

	err = atomic.WriteFile(path, bytes.NewReader(data))
	if err != nil {
		s.log.Error("save image", zap.String("name", originalName), zap.Error(err))

		return "", fmt.Errorf("%w: save image: %v", ErrIO, err)
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return "", fmt.Errorf("%w: save image: %v", ErrIO, err)
	}

	return filepath.ToSlash(rel), nil
}

// DeleteImage removes an image by its data-root-relative path. Empty paths
// and already-missing files are not errors.
func (s *Store) DeleteImage(relPath string) error {
	if relPath == "" {
		return nil
	}

	path := filepath.Join(s.root, filepath.FromSlash(relPath))

	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		s.log.Error("delete image", zap.String("path", relPath), zap.Error(err))

		return fmt.Errorf("%w: delete image %s: %v", ErrIO, relPath, err)
	}

	return nil
}
