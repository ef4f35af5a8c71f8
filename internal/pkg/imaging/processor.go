package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ProcessedImage is a resized avatar or channel header ready for storage
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Config for image processing
type Config struct {
	MaxWidth  int // max width after resize
	MaxHeight int // max height after resize
	Quality   int // JPEG quality 1-100
}

// AvatarConfig returns the config used for account avatars
func AvatarConfig() Config {
	return Config{MaxWidth: 512, MaxHeight: 512, Quality: 85}
}

// HeaderConfig returns the config used for channel headers
func HeaderConfig() Config {
	return Config{MaxWidth: 1920, MaxHeight: 480, Quality: 85}
}

// Processor handles image processing
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Process decodes an image and resizes it to fit the configured bounds
func (p *Processor) Process(reader io.Reader) (*ProcessedImage, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := img
	if img.Bounds().Dx() > p.config.MaxWidth || img.Bounds().Dy() > p.config.MaxHeight {
		resized = imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)
	}

	encoded, err := p.encode(resized, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	// encode falls back to JPEG for non-PNG formats
	contentType := "image/jpeg"
	if format == "png" {
		contentType = "image/png"
	}

	return &ProcessedImage{
		Data:        encoded,
		ContentType: contentType,
		Width:       resized.Bounds().Dx(),
		Height:      resized.Bounds().Dy(),
	}, nil
}

// ValidateType checks if file is a valid image type
func ValidateType(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	default:
		return false
	}
}

// MaxFileSize in bytes (10MB)
const MaxFileSize int64 = 10 * 1024 * 1024

// encode encodes image to bytes
func (p *Processor) encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		// JPEG for everything else
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.config.Quality}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}
