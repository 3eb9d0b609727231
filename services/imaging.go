package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// Compression targets for profile pictures: at most ~1MB and at most
	// 1080px on the long edge.
	maxPictureBytes = 1 << 20
	maxPictureEdge  = 1080
)

// CompressProfilePicture decodes an uploaded image, scales it down so the
// long edge is at most 1080px, and re-encodes it as JPEG, stepping quality
// down until the result fits under the size limit.
func CompressProfilePicture(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img = resizeToFit(img, maxPictureEdge)

	var out []byte
	for quality := 85; quality >= 25; quality -= 15 {
		out, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
		if len(out) <= maxPictureBytes {
			return out, nil
		}
	}
	return out, nil
}

// resizeToFit scales src down to fit within maxEdge on its longer side,
// preserving aspect ratio. Images already small enough pass through.
func resizeToFit(src image.Image, maxEdge int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}

	scale := float64(maxEdge) / float64(w)
	if h > w {
		scale = float64(maxEdge) / float64(h)
	}

	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
