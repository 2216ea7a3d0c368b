// upload.go
package cardpress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

// Upload-path error kinds. Each failure is surfaced once through the
// store's status message and never rolls back composition state.
var (
	ErrConfigurationMissing = errors.New("upload configuration missing")
	ErrAuthUnavailable      = errors.New("auth unavailable")
	ErrUploadRejected       = errors.New("upload rejected")
)

// DefaultUploadURL is the image-hosting service's upload endpoint.
const DefaultUploadURL = "https://upload.imagekit.io/api/v1/files/upload"

// Folder the service stores card photos under.
const uploadFolder = "/cards"

// Config wires the upload path: the relay that issues short-lived upload
// credentials and the public key the hosting service expects. HTTP is
// optional and defaults to http.DefaultClient.
type Config struct {
	BaseURL   string // credential relay base URL, e.g. https://api.example.com
	PublicKey string // image-hosting public key
	UploadURL string // optional; defaults to DefaultUploadURL
	HTTP      *http.Client
}

// Validate refuses to start uploads with an incomplete configuration.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: no API base URL", ErrConfigurationMissing)
	}
	if c.PublicKey == "" {
		return fmt.Errorf("%w: no upload public key", ErrConfigurationMissing)
	}
	return nil
}

func (c Config) client() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c Config) uploadURL() string {
	if c.UploadURL != "" {
		return c.UploadURL
	}
	return DefaultUploadURL
}

// UploadAuth is the credential triple issued by the relay.
type UploadAuth struct {
	Signature string `json:"signature"`
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
}

// UploadResult is the hosting service's success payload.
type UploadResult struct {
	URL string `json:"url"`
}

// uploadError is the hosting service's error payload.
type uploadError struct {
	Message string `json:"message"`
}

// UploadClient talks to the credential relay and the hosting service.
type UploadClient struct {
	cfg Config
}

// NewUploadClient builds a client; cfg is validated per call so the
// client itself never fails to construct.
func NewUploadClient(cfg Config) *UploadClient {
	return &UploadClient{cfg: cfg}
}

// FetchAuth asks the relay for upload credentials. Any non-2xx response
// means auth is unavailable.
func (c *UploadClient) FetchAuth(ctx context.Context) (UploadAuth, error) {
	var auth UploadAuth
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/auth", nil)
	if err != nil {
		return auth, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	resp, err := c.cfg.client().Do(req)
	if err != nil {
		return auth, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return auth, fmt.Errorf("%w: relay returned %s", ErrAuthUnavailable, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return auth, fmt.Errorf("%w: bad relay payload: %v", ErrAuthUnavailable, err)
	}
	return auth, nil
}

// UploadImage submits one file to the hosting service as a multipart
// form carrying the file, the relay credentials, the public key, the
// destination folder and the uniqueness flag. The service's message
// field is surfaced verbatim on rejection.
func (c *UploadClient) UploadImage(ctx context.Context, fileName string, data io.Reader) (UploadResult, error) {
	var out UploadResult
	if err := c.cfg.Validate(); err != nil {
		return out, err
	}
	auth, err := c.FetchAuth(ctx)
	if err != nil {
		return out, err
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrUploadRejected, err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return out, fmt.Errorf("%w: %v", ErrUploadRejected, err)
	}
	fields := map[string]string{
		"fileName":          fileName,
		"publicKey":         c.cfg.PublicKey,
		"signature":         auth.Signature,
		"token":             auth.Token,
		"expire":            strconv.FormatInt(auth.Expire, 10),
		"folder":            uploadFolder,
		"useUniqueFileName": "true",
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return out, fmt.Errorf("%w: %v", ErrUploadRejected, err)
		}
	}
	if err := mw.Close(); err != nil {
		return out, fmt.Errorf("%w: %v", ErrUploadRejected, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.uploadURL(), body)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrUploadRejected, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := c.cfg.client().Do(req)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrUploadRejected, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var svcErr uploadError
		if json.NewDecoder(resp.Body).Decode(&svcErr) == nil && svcErr.Message != "" {
			return out, fmt.Errorf("%w: %s", ErrUploadRejected, svcErr.Message)
		}
		return out, fmt.Errorf("%w: service returned %s", ErrUploadRejected, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("%w: bad service payload: %v", ErrUploadRejected, err)
	}
	return out, nil
}

// UploadToSlot runs one slot upload end to end: mark the slot uploading,
// obtain credentials, submit the file and apply the outcome through the
// store. Safe to call from its own goroutine; per-slot uploads are
// independent and a result whose slot has since been removed is dropped
// by FinishUpload. The returned error mirrors what the store's status
// message was set to.
func UploadToSlot(ctx context.Context, store *Store, client *UploadClient, index int, fileName, mimeType string, byteSize int64, data io.Reader) error {
	// Refuse to start at all on bad configuration; nothing is marked
	// uploading and the slot stays untouched.
	if err := client.cfg.Validate(); err != nil {
		store.SetStatus(err.Error())
		return err
	}
	uid, err := store.BeginUpload(index)
	if err != nil {
		store.SetStatus(err.Error())
		return err
	}
	res, err := client.UploadImage(ctx, fileName, data)
	if err != nil {
		store.FinishUpload(uid, SlotImage{}, err)
		return err
	}
	store.FinishUpload(uid, SlotImage{
		URL:          res.URL,
		OriginalName: fileName,
		ByteSize:     byteSize,
		MimeType:     mimeType,
	}, nil)
	return nil
}
