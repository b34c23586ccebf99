package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/economia-solidaria/backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNormalizer() *Normalizer {
	return NewNormalizer(config.UploadConfig{
		MaxImageBytes:    5 * 1024 * 1024,
		TargetImageBytes: 300 * 1024,
		MaxPixelSize:     1280,
		MaxDocumentBytes: 1048576,
	})
}

func pngFile(t *testing.T, name string, width, height int, c color.Color) File {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return File{
		Name:        name,
		ContentType: "image/png",
		Data:        buf.Bytes(),
	}
}

func TestNormalizeBatch_Valid(t *testing.T) {
	n := testNormalizer()

	files := []File{
		pngFile(t, "fachada.png", 64, 64, color.RGBA{R: 200, A: 255}),
		pngFile(t, "interior.png", 32, 48, color.RGBA{B: 200, A: 255}),
	}

	results, err := n.NormalizeBatch(context.Background(), files, 3)

	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, strings.HasPrefix(r, "data:image/jpeg;base64,"))
	}
}

func TestNormalizeBatch_CountCapBeforeCompression(t *testing.T) {
	n := testNormalizer()

	// arquivos propositalmente inválidos: o limite de quantidade deve
	// reprovar o lote antes de qualquer arquivo ser inspecionado
	files := make([]File, 7)
	for i := range files {
		files[i] = File{Name: "x.png", ContentType: "image/png", Data: []byte("not an image")}
	}

	results, err := n.NormalizeBatch(context.Background(), files, 6)

	assert.ErrorIs(t, err, ErrTooManyImages)
	assert.Nil(t, results)
}

func TestNormalizeBatch_AllOrNothing(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name    string
		files   []File
		wantErr error
	}{
		{
			name: "Wrong type rejects whole batch",
			files: []File{
				pngFile(t, "ok.png", 16, 16, color.White),
				{Name: "laudo.pdf", ContentType: "application/pdf", Data: []byte("%PDF-")},
			},
			wantErr: ErrUnsupportedType,
		},
		{
			name: "Oversized rejects whole batch",
			files: []File{
				pngFile(t, "ok.png", 16, 16, color.White),
				{Name: "gigante.png", ContentType: "image/png", Data: make([]byte, 6*1024*1024)},
			},
			wantErr: ErrFileTooLarge,
		},
		{
			name: "Corrupt image rejects whole batch",
			files: []File{
				pngFile(t, "ok.png", 16, 16, color.White),
				{Name: "quebrada.png", ContentType: "image/png", Data: []byte("not an image")},
			},
			wantErr: ErrDecodeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := n.NormalizeBatch(context.Background(), tt.files, 6)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, results)
		})
	}
}

func TestNormalizeBatch_ResizesLargeImages(t *testing.T) {
	n := testNormalizer()

	files := []File{pngFile(t, "panorama.png", 2000, 500, color.RGBA{G: 180, A: 255})}

	results, err := n.NormalizeBatch(context.Background(), files, 3)
	require.NoError(t, err)
	require.Len(t, results, 1)

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(results[0], "data:image/jpeg;base64,"))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.LessOrEqual(t, img.Bounds().Dx(), 1280)
	assert.LessOrEqual(t, img.Bounds().Dy(), 1280)
}

func TestNormalizeBatch_PreservesOrder(t *testing.T) {
	n := testNormalizer()

	files := []File{
		pngFile(t, "a.png", 100, 40, color.White),
		pngFile(t, "b.png", 40, 100, color.White),
	}

	results, err := n.NormalizeBatch(context.Background(), files, 6)
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := decodeResult(t, results[0])
	second := decodeResult(t, results[1])

	assert.Equal(t, 100, first.Bounds().Dx())
	assert.Equal(t, 40, first.Bounds().Dy())
	assert.Equal(t, 40, second.Bounds().Dx())
	assert.Equal(t, 100, second.Bounds().Dy())
}

func decodeResult(t *testing.T, result string) image.Image {
	t.Helper()

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(result, "data:image/jpeg;base64,"))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestCheckDocumentSize(t *testing.T) {
	n := testNormalizer()

	type doc struct {
		Name   string   `json:"name"`
		Images []string `json:"images"`
	}

	small := doc{Name: "Padaria", Images: []string{"abc"}}
	assert.NoError(t, n.CheckDocumentSize(small))

	big := doc{Name: "Padaria", Images: []string{strings.Repeat("a", 1100000)}}
	assert.ErrorIs(t, n.CheckDocumentSize(big), ErrDocumentTooLarge)
}
