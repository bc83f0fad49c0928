package vision

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/nfnt/resize"
)

// MaxDimension bounds both sides of the image sent to remote providers.
const MaxDimension = 800

// MaxPixels bounds the declared size of an upload. Decoding allocates the full
// raster, so a small file with a huge header is rejected before decoding.
const MaxPixels = 40_000_000

// Image is an upload prepared for identification.
type Image struct {
	Decoded image.Image
	// JPEG is Decoded, shrunk to fit MaxDimension and re-encoded.
	JPEG []byte
	// Hash is the hex SHA-256 of the original upload.
	Hash string
}

// formatNames maps file extensions to the names image.Decode reports.
var formatNames = map[string]string{
	"jpg":  "jpeg",
	"jpeg": "jpeg",
	"png":  "png",
}

// Load decodes data and checks its format against allowed extensions
// (for example "jpg", "png"). An empty allowed list accepts jpeg and png.
func Load(data []byte, allowed []string) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if !formatAllowed(format, allowed) {
		return nil, fmt.Errorf("%w: format %s is not accepted", ErrInvalidImage, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidImage, cfg.Width, cfg.Height, MaxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	img = Preprocess(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &Image{Decoded: img, JPEG: buf.Bytes(), Hash: Hash(data)}, nil
}

// Preprocess shrinks img to fit within MaxDimension on both sides, keeping
// its aspect ratio. Smaller images are returned unchanged.
func Preprocess(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= MaxDimension && b.Dy() <= MaxDimension {
		return img
	}
	return resize.Thumbnail(MaxDimension, MaxDimension, img, resize.Lanczos3)
}

// Hash calculates the SHA256 hash of the image data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func formatAllowed(format string, allowed []string) bool {
	if len(allowed) == 0 {
		return format == "jpeg" || format == "png"
	}
	for _, ext := range allowed {
		if formatNames[strings.ToLower(strings.TrimPrefix(ext, "."))] == format {
			return true
		}
	}
	return false
}
