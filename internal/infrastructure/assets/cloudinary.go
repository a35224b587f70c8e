package assets

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/chickenviken/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// UploadResult is the subset of the hosting provider's response we keep
type UploadResult struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
}

// CloudinaryClient talks to the image hosting API. Uploads use an unsigned
// preset; deletes are signed with the account secret.
type CloudinaryClient struct {
	cloudName    string
	uploadPreset string
	apiKey       string
	apiSecret    string
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewCloudinaryClient creates a client from the assets config section
func NewCloudinaryClient(cfg config.AssetsConfig, logger *zap.Logger) *CloudinaryClient {
	return &CloudinaryClient{
		cloudName:    cfg.CloudName,
		uploadPreset: cfg.UploadPreset,
		apiKey:       cfg.APIKey,
		apiSecret:    cfg.APISecret,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
	}
}

// Upload sends an image using the unsigned upload preset and returns the
// hosted URL plus the public id needed to delete it later.
func (c *CloudinaryClient) Upload(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := writer.WriteField("upload_preset", c.uploadPreset); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("image upload rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", payload),
		)
		return nil, fmt.Errorf("image upload rejected with status %d", resp.StatusCode)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	return &result, nil
}

// Delete removes a hosted image by public id
func (c *CloudinaryClient) Delete(ctx context.Context, publicID string) error {
	timestamp := time.Now().Unix()
	signature := SignDeletion(publicID, timestamp, c.apiSecret)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	fields := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(timestamp, 10),
		"api_key":   c.apiKey,
		"signature": signature,
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	url := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/destroy", c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("image deletion failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image deletion rejected with status %d", resp.StatusCode)
	}
	return nil
}

// SignDeletion computes the request signature: the SHA-1 hex digest of
// "public_id=<id>&timestamp=<ts>" with the API secret appended.
func SignDeletion(publicID string, timestamp int64, apiSecret string) string {
	payload := fmt.Sprintf("public_id=%s&timestamp=%d%s", publicID, timestamp, apiSecret)
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
