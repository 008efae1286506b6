package service

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/botanical-decor/shop-api/internal/config"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

var allowedUploadScenes = map[string]struct{}{
	"product": {},
	"profile": {},
	"common":  {},
}

// dataURL prefixes accepted by SaveBase64, mapped to file extensions.
var base64ImageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadService stores product and profile images on local disk.
type UploadService struct {
	cfg *config.Config
}

// NewUploadService creates an upload service.
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg}
}

// SaveFile validates and stores a multipart upload, returning the public URL.
func (s *UploadService) SaveFile(file *multipart.FileHeader, scene string) (string, error) {
	if file.Size > s.cfg.Upload.MaxSize {
		return "", fmt.Errorf("%w: file exceeds %d MB", ErrUploadInvalid, s.cfg.Upload.MaxSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.Upload.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.Upload.AllowedExtensions) {
			return "", fmt.Errorf("%w: extension %q not allowed", ErrUploadInvalid, ext)
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Sniff the real content type from the first bytes; the client's
	// Content-Type header is not trusted.
	buffer := make([]byte, 512)
	_, err = src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	contentType := http.DetectContentType(buffer)
	if err := s.validateImagePayload(src, contentType); err != nil {
		return "", err
	}

	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}
	return s.store(src, ext, scene)
}

// SaveBase64 stores an image supplied as a data URL
// (data:image/png;base64,...) and returns the public URL.
func (s *UploadService) SaveBase64(dataURL, scene string) (string, error) {
	payload := strings.TrimSpace(dataURL)
	if !strings.HasPrefix(payload, "data:") {
		return "", fmt.Errorf("%w: not a data URL", ErrUploadInvalid)
	}
	meta, encoded, found := strings.Cut(payload[len("data:"):], ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return "", fmt.Errorf("%w: malformed data URL", ErrUploadInvalid)
	}
	declaredType := strings.TrimSuffix(meta, ";base64")
	ext, ok := base64ImageExtensions[strings.ToLower(declaredType)]
	if !ok {
		return "", fmt.Errorf("%w: type %q not allowed", ErrUploadInvalid, declaredType)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64 payload", ErrUploadInvalid)
	}
	if int64(len(raw)) > s.cfg.Upload.MaxSize {
		return "", fmt.Errorf("%w: file exceeds %d MB", ErrUploadInvalid, s.cfg.Upload.MaxSize/1024/1024)
	}

	reader := bytes.NewReader(raw)
	sniff := raw
	if len(sniff) > 512 {
		sniff = sniff[:512]
	}
	contentType := http.DetectContentType(sniff)
	if err := s.validateImagePayload(reader, contentType); err != nil {
		return "", err
	}

	if _, err := reader.Seek(0, 0); err != nil {
		return "", err
	}
	return s.store(reader, ext, scene)
}

// validateImagePayload checks the sniffed type against the allow list and
// enforces the pixel dimension limits.
func (s *UploadService) validateImagePayload(src io.ReadSeeker, contentType string) error {
	if len(s.cfg.Upload.AllowedTypes) > 0 {
		allowed := false
		for _, t := range s.cfg.Upload.AllowedTypes {
			if strings.EqualFold(contentType, t) {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: type %q not allowed", ErrUploadInvalid, contentType)
		}
	}

	if strings.HasPrefix(contentType, "image/") {
		if _, err := src.Seek(0, 0); err != nil {
			return err
		}
		width, height, err := decodeImageDimensions(src, contentType)
		if err != nil {
			return err
		}
		if s.cfg.Upload.MaxWidth > 0 && width > s.cfg.Upload.MaxWidth {
			return fmt.Errorf("%w: width exceeds %d px", ErrUploadInvalid, s.cfg.Upload.MaxWidth)
		}
		if s.cfg.Upload.MaxHeight > 0 && height > s.cfg.Upload.MaxHeight {
			return fmt.Errorf("%w: height exceeds %d px", ErrUploadInvalid, s.cfg.Upload.MaxHeight)
		}
	}
	return nil
}

// store writes the payload under <dir>/<scene>/<year>/<month>/<uuid><ext>.
func (s *UploadService) store(src io.Reader, ext, scene string) (string, error) {
	normalizedScene := normalizeUploadScene(scene)
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	now := time.Now()
	year := now.Format("2006")
	month := now.Format("01")

	dir := strings.TrimSpace(s.cfg.Upload.Dir)
	if dir == "" {
		dir = "./uploads"
	}
	savePath := filepath.Join(dir, normalizedScene, year, month, filename)
	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	baseURL := strings.TrimRight(strings.TrimSpace(s.cfg.Upload.BaseURL), "/")
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s", baseURL, normalizedScene, year, month, filename), nil
}

func normalizeUploadScene(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "common"
	}
	if _, ok := allowedUploadScenes[value]; ok {
		return value
	}
	return "common"
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}

func decodeImageDimensions(src io.ReadSeeker, contentType string) (int, int, error) {
	if strings.EqualFold(contentType, "image/webp") {
		width, height, err := decodeWebPDimensions(src)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: unreadable WebP image", ErrUploadInvalid)
		}
		return width, height, nil
	}

	if _, err := src.Seek(0, 0); err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: unreadable image", ErrUploadInvalid)
	}
	return cfg.Width, cfg.Height, nil
}

func decodeWebPDimensions(src io.ReadSeeker) (int, int, error) {
	if _, err := src.Seek(0, 0); err != nil {
		return 0, 0, err
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(src, header); err != nil {
		return 0, 0, err
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WEBP" {
		return 0, 0, fmt.Errorf("invalid WebP header")
	}

	for {
		chunkHeader := make([]byte, 8)
		if _, err := io.ReadFull(src, chunkHeader); err != nil {
			return 0, 0, err
		}
		chunkType := string(chunkHeader[0:4])
		chunkSize := int(binary.LittleEndian.Uint32(chunkHeader[4:8]))
		if chunkSize < 0 {
			return 0, 0, fmt.Errorf("invalid WebP chunk")
		}

		data := make([]byte, chunkSize)
		if _, err := io.ReadFull(src, data); err != nil {
			return 0, 0, err
		}

		if chunkType == "VP8X" {
			if len(data) < 10 {
				return 0, 0, fmt.Errorf("VP8X chunk too short")
			}
			width := 1 + int(data[4]) + int(data[5])<<8 + int(data[6])<<16
			height := 1 + int(data[7]) + int(data[8])<<8 + int(data[9])<<16
			return width, height, nil
		}
		if chunkType == "VP8 " {
			if len(data) < 10 {
				return 0, 0, fmt.Errorf("VP8 chunk too short")
			}
			width := int(binary.LittleEndian.Uint16(data[6:8]) & 0x3FFF)
			height := int(binary.LittleEndian.Uint16(data[8:10]) & 0x3FFF)
			return width, height, nil
		}
		if chunkType == "VP8L" {
			if len(data) < 5 {
				return 0, 0, fmt.Errorf("VP8L chunk too short")
			}
			if data[0] != 0x2f {
				return 0, 0, fmt.Errorf("invalid VP8L signature")
			}
			bits := binary.LittleEndian.Uint32(data[1:5])
			width := int(bits&0x3FFF) + 1
			height := int((bits>>14)&0x3FFF) + 1
			return width, height, nil
		}

		if chunkSize%2 == 1 {
			if _, err := src.Seek(1, io.SeekCurrent); err != nil {
				return 0, 0, err
			}
		}
	}
}
