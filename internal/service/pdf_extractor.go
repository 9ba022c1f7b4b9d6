package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/fadilmartias/review-composer/internal/logger"
	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

var ErrNoText = errors.New("no text extracted from PDF")

// PDFExtractor pulls submission text out of an uploaded PDF. Pages without a
// text layer fall back to Tesseract OCR when it is installed.
type PDFExtractor struct {
	OCRLanguage string
}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{OCRLanguage: "jpn+eng"}
}

func (e *PDFExtractor) Extract(ctx context.Context, path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	log := logger.Ctx(ctx).With(zap.String("path", path), zap.Int("pages", doc.NumPage()))
	ocrAvailable := checkTesseract() == nil

	var (
		pages   []string
		lastErr error
	)
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
			log.Warn("pdf text extraction failed", zap.Error(lastErr))
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" && ocrAvailable {
			text, err = e.ocrPage(ctx, doc, n)
			if err != nil {
				lastErr = err
				log.Warn("pdf ocr failed", zap.Error(err))
				continue
			}
		}
		if text != "" {
			pages = append(pages, text)
		}
	}

	result := strings.TrimSpace(strings.Join(pages, "\n\n"))
	if result == "" {
		if lastErr != nil {
			return "", fmt.Errorf("%w: %w", ErrNoText, lastErr)
		}
		return "", ErrNoText
	}
	log.Debug("pdf extracted", zap.Int("chars", len(result)))
	return result, nil
}

func (e *PDFExtractor) ocrPage(ctx context.Context, doc *fitz.Document, n int) (string, error) {
	img, err := doc.Image(n)
	if err != nil {
		return "", fmt.Errorf("page %d: failed to extract image: %w", n+1, err)
	}

	tmpFile, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("page %d: failed to create temp file: %w", n+1, err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	err = png.Encode(tmpFile, image.Image(img))
	tmpFile.Close()
	if err != nil {
		return "", fmt.Errorf("page %d: failed to encode PNG: %w", n+1, err)
	}

	out, err := exec.CommandContext(ctx, "tesseract", tmpPath, "stdout", "-l", e.OCRLanguage).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("page %d: tesseract error: %w, output: %s", n+1, err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

func checkTesseract() error {
	_, err := exec.LookPath("tesseract")
	return err
}
