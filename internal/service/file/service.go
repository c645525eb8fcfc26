package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoding for logo uploads
	_ "image/jpeg" // Register JPEG decoding for logo uploads
	_ "image/png"  // Register PNG decoding for logo uploads
	"io"
	"regexp"
	"strings"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/storage"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/validator"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // Register WebP decoding for logo uploads
)

const (
	logoDir = "logos"

	// MinLogoDimension is the smallest accepted width and height of an uploaded logo.
	MinLogoDimension = 100
	// MaxLogoBytes bounds how much of an upload is read (2048 KB).
	MaxLogoBytes = 2048 << 10
)

var dataURIPattern = regexp.MustCompile(`^data:image/(png|jpe?g|gif|webp);base64,`)

// Logo is a logo image that passed ingestion and is ready to be stored.
type Logo struct {
	data   []byte
	format string
}

type FileService interface {
	// StoreCompanyLogo writes a parsed logo and returns its public URL.
	StoreCompanyLogo(ctx context.Context, logo *Logo) (string, error)

	// DeleteCompanyLogo removes the file behind logoURL when the storage owns it.
	DeleteCompanyLogo(ctx context.Context, logoURL string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// IsDataURI reports whether a logo input should go through data-URI ingestion.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}

// ParseUploadedLogo reads and checks an uploaded logo without storing it.
// Files that are not images of at least 100x100 pixels fail validation.
func ParseUploadedLogo(file io.Reader) (*Logo, error) {
	buffer, err := io.ReadAll(io.LimitReader(file, MaxLogoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read logo: %w", err)
	}
	if len(buffer) > MaxLogoBytes {
		return nil, logoError("logo must not exceed 2048 kilobytes")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(buffer))
	if err != nil {
		return nil, logoError("logo must be an image (png, jpg, gif, webp)")
	}
	if cfg.Width < MinLogoDimension || cfg.Height < MinLogoDimension {
		return nil, logoError(fmt.Sprintf("logo must be at least %dx%d pixels", MinLogoDimension, MinLogoDimension))
	}

	return &Logo{data: buffer, format: format}, nil
}

// ParseDataURILogo decodes a base64 data-URI logo. It returns nil when the
// prefix is unsupported or the payload does not decode.
func ParseDataURILogo(dataURI string) *Logo {
	matches := dataURIPattern.FindStringSubmatch(dataURI)
	if matches == nil {
		return nil
	}

	payload := dataURI[strings.Index(dataURI, ",")+1:]
	binary, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		binary, err = base64.RawStdEncoding.DecodeString(payload)
	}
	if err != nil || len(binary) == 0 {
		return nil
	}

	return &Logo{data: binary, format: matches[1]}
}

// DeleteCompanyLogo implements FileService.
func (s *fileServiceImpl) DeleteCompanyLogo(ctx context.Context, logoURL string) error {
	path, ok := s.storage.PathFromURL(logoURL)
	if !ok {
		return nil
	}
	return s.storage.Delete(ctx, path)
}

// StoreCompanyLogo implements FileService.
func (s *fileServiceImpl) StoreCompanyLogo(ctx context.Context, logo *Logo) (string, error) {
	ext := logo.format
	if ext == "jpeg" {
		ext = "jpg"
	}
	contentType := "image/" + logo.format
	if logo.format == "jpg" {
		contentType = "image/jpeg"
	}

	path := fmt.Sprintf("%s/logo_%s.%s", logoDir, uuid.New().String(), ext)
	storedPath, err := s.storage.Upload(ctx, bytes.NewReader(logo.data), path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload company logo: %w", err)
	}

	return s.storage.URL(storedPath), nil
}

func logoError(msg string) error {
	return validator.ValidationErrors{{Field: "logo", Message: msg}}
}
