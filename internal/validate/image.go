package validate

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// IsImage checks for passed content is image or not. The detected MIME type is returned too, so
// the caller can tell the user what the content actually is.
// Do not forget about the source offset (it is restored only when the source is an io.Seeker).
func IsImage(src io.Reader) (bool, string, error) {
	buf := make([]byte, 32) //nolint:gomnd // 32 bytes are enough for "first bytes" checking

	if _, err := io.ReadFull(src, buf); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, "", err
	}

	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return false, "", err
		}
	}

	var mime = http.DetectContentType(buf)

	return strings.HasPrefix(mime, "image/"), mime, nil
}
