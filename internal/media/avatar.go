package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"
)

const DefaultMaxAvatarBytes = 5 * 1024 * 1024

var (
	ErrNotAnImage = errors.New("payload is not a supported image")
	ErrTooLarge   = errors.New("image exceeds the size limit")
)

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Avatar struct {
	Bytes       []byte
	ContentType string
	Width       int
	Height      int
}

// ValidateAvatar buffers the upload, enforces the size cap and checks
// that the payload decodes as jpeg, png, gif or webp. The declared
// Content-Type header is ignored in favor of the sniffed format.
func ValidateAvatar(upload Upload, maxBytes int64) (*Avatar, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxAvatarBytes
	}
	if upload.Size > maxBytes {
		return nil, ErrTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(upload.Reader, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotAnImage
	}

	return &Avatar{
		Bytes:       data,
		ContentType: "image/" + format,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
