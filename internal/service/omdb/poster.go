package omdb

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	"github.com/bbrks/go-blurhash"
	"github.com/disintegration/imaging"
	"github.com/kapu/movie-picker-go/internal/constants"
	"github.com/sourcegraph/conc/panics"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ProcessedPoster is a poster scaled to the display size.
type ProcessedPoster struct {
	Image    image.Image
	BlurHash string
}

// ProcessPoster decodes data and resizes it to exactly the configured display
// dimensions; the aspect ratio of the source is not preserved. A panic inside
// a decoder is reported as an error.
func ProcessPoster(data []byte) (poster *ProcessedPoster, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}

	var pc panics.Catcher
	pc.Try(func() {
		poster, err = processPoster(data)
	})
	if recovered := pc.Recovered(); recovered != nil {
		return nil, fmt.Errorf("decode image: %w", recovered.AsError())
	}
	return poster, err
}

func processPoster(data []byte) (*ProcessedPoster, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	resized := imaging.Resize(img, constants.PosterConfig.Width, constants.PosterConfig.Height, imaging.Lanczos)

	// The hash is a cosmetic placeholder; a failure here keeps the image.
	hash, err := blurhash.Encode(constants.PosterConfig.BlurHashX, constants.PosterConfig.BlurHashY, imaging.Thumbnail(resized, 32, 48, imaging.Box))
	if err != nil {
		hash = ""
	}

	return &ProcessedPoster{
		Image:    resized,
		BlurHash: hash,
	}, nil
}
