package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	// registra o decoder de webp para image.Decode
	_ "golang.org/x/image/webp"

	"github.com/economia-solidaria/backend/config"
	"github.com/economia-solidaria/backend/pkg/logger"
)

var (
	ErrTooManyImages    = errors.New("quantidade de imagens acima do limite do plano")
	ErrUnsupportedType  = errors.New("tipo de arquivo não permitido")
	ErrFileTooLarge     = errors.New("arquivo acima do tamanho máximo")
	ErrDecodeFailed     = errors.New("não foi possível ler a imagem")
	ErrDocumentTooLarge = errors.New("o cadastro ultrapassa o tamanho máximo permitido")
)

// Tipos aceitos no upload de imagens do cadastro
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// File arquivo bruto recebido do formulário
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Normalizer valida, comprime e codifica as imagens do cadastro.
// A política é tudo-ou-nada: um arquivo reprovado invalida o lote
// inteiro, sem aceitar os demais.
type Normalizer struct {
	maxImageBytes    int64 // tamanho bruto máximo por arquivo
	targetImageBytes int   // orçamento por imagem após compressão
	maxPixelSize     int   // maior dimensão após o redimensionamento
	maxDocumentBytes int   // teto do documento serializado completo
}

// NewNormalizer creates a Normalizer with the configured upload policy
func NewNormalizer(cfg config.UploadConfig) *Normalizer {
	return &Normalizer{
		maxImageBytes:    cfg.MaxImageBytes,
		targetImageBytes: cfg.TargetImageBytes,
		maxPixelSize:     cfg.MaxPixelSize,
		maxDocumentBytes: cfg.MaxDocumentBytes,
	}
}

// NormalizeBatch valida e comprime um lote de imagens, preservando a
// ordem de entrada. maxCount vem do plano do usuário e é verificado
// antes de qualquer compressão.
func (n *Normalizer) NormalizeBatch(ctx context.Context, files []File, maxCount int) ([]string, error) {
	if len(files) > maxCount {
		return nil, fmt.Errorf("%w: %d arquivos enviados, limite de %d", ErrTooManyImages, len(files), maxCount)
	}

	// triagem síncrona: tipo e tamanho de todos os arquivos antes de
	// gastar CPU com compressão
	for _, f := range files {
		if !allowedImageTypes[f.ContentType] {
			return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, f.Name, f.ContentType)
		}
		if int64(len(f.Data)) > n.maxImageBytes {
			return nil, fmt.Errorf("%w: %s tem %d bytes, máximo de %d", ErrFileTooLarge, f.Name, len(f.Data), n.maxImageBytes)
		}
	}

	results := make([]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			encoded, err := n.compressAndEncode(f)
			if err != nil {
				return err
			}

			results[i] = encoded
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("Image batch normalized", map[string]interface{}{
		"count": len(results),
	})
	return results, nil
}

// compressAndEncode redimensiona, recomprime em JPEG até caber no
// orçamento e devolve o payload como data URL base64
func (n *Normalizer) compressAndEncode(f File) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(f.Data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrDecodeFailed, f.Name)
	}

	bounds := img.Bounds()
	if bounds.Dx() > n.maxPixelSize || bounds.Dy() > n.maxPixelSize {
		img = imaging.Fit(img, n.maxPixelSize, n.maxPixelSize, imaging.Lanczos)
	}

	encoded, err := n.encodeWithinBudget(img)
	if err != nil {
		return "", fmt.Errorf("falha ao comprimir %s: %w", f.Name, err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(encoded), nil
}

// encodeWithinBudget reduz a qualidade do JPEG em passos até o payload
// caber no orçamento por imagem. O último passo é aceito mesmo acima
// do orçamento; o teto absoluto fica com CheckDocumentSize.
func (n *Normalizer) encodeWithinBudget(img image.Image) ([]byte, error) {
	qualities := []int{85, 75, 65, 55, 45, 35}

	var buf bytes.Buffer
	for _, q := range qualities {
		buf.Reset()
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
			return nil, err
		}
		if buf.Len() <= n.targetImageBytes {
			break
		}
	}

	return buf.Bytes(), nil
}

// CheckDocumentSize garante que o cadastro serializado completo, já
// com as imagens embutidas, cabe no limite do banco de documentos.
// É uma verificação pós-montagem, feita depois da codificação.
func (n *Normalizer) CheckDocumentSize(record interface{}) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	if len(payload) > n.maxDocumentBytes {
		return fmt.Errorf("%w: %d bytes, máximo de %d", ErrDocumentTooLarge, len(payload), n.maxDocumentBytes)
	}

	return nil
}
