package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG

	_ "golang.org/x/image/webp" // 支援 WebP
)

// Service 圖片處理服務
// 照片分析只接受 base64 data URL，統一轉成 JPEG 再交給 AI
type Service struct {
	maxSizeBytes int64
}

// NewService 創建圖片處理服務
func NewService(maxSizeBytes int64) *Service {
	return &Service{
		maxSizeBytes: maxSizeBytes,
	}
}

// ProcessImage 驗證並正規化圖片，回傳 JPEG base64 data URL
func (s *Service) ProcessImage(imageData string) (string, error) {
	decodedData, err := s.decodePayload(imageData)
	if err != nil {
		return "", err
	}

	// 解碼圖片
	img, format, err := image.Decode(bytes.NewReader(decodedData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// 檢查圖片格式
	if !isSupportedFormat(format) {
		return "", fmt.Errorf("unsupported image format: %s", format)
	}

	// 將圖片轉換為 JPEG 格式
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image as JPEG: %w", err)
	}

	// 重新編碼為 base64
	encodedData := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:image/jpeg;base64,%s", encodedData), nil
}

// ValidateImage 驗證圖片但不轉碼
func (s *Service) ValidateImage(imageData string) error {
	decodedData, err := s.decodePayload(imageData)
	if err != nil {
		return err
	}

	_, format, err := image.Decode(bytes.NewReader(decodedData))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	if !isSupportedFormat(format) {
		return fmt.Errorf("unsupported image format: %s", format)
	}
	return nil
}

// decodePayload 拆解 data URL 並解 base64，順便檢查大小限制
func (s *Service) decodePayload(imageData string) ([]byte, error) {
	if !strings.HasPrefix(imageData, "data:image/") {
		return nil, fmt.Errorf("invalid image data format")
	}

	parts := strings.Split(imageData, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid base64 data format")
	}

	decodedData, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 data: %w", err)
	}

	if int64(len(decodedData)) > s.maxSizeBytes {
		return nil, fmt.Errorf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes)
	}
	return decodedData, nil
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"jpg":  true,
		"png":  true,
		"gif":  true,
		"webp": true,
	}
	return supportedFormats[format]
}
