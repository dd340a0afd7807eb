package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/vibecart/internal/client/client"
	"github.com/dmitrijs2005/vibecart/internal/logging"
)

const (
	MaxUploadBytes  = 5 << 20
	DefaultMaxFiles = 5

	msgUploadTooLarge = "Some files exceed 5MB limit"
	msgUploadFailed   = "Error uploading image"
	msgUploadNoAuth   = "Please login to upload images"
	msgUploadBadType  = "Only image files are allowed (jpeg, jpg, png, gif, webp)"
	msgUploadNoFiles  = "No file uploaded"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadService sends product images and returns the URLs to store on the
// product.
type UploadService struct {
	client  client.Client
	session CredentialSource
	apiBase string
	log     logging.Logger
}

// NewUploadService returns a service that prefixes returned server paths
// with apiBase.
func NewUploadService(c client.Client, session CredentialSource, apiBase string, log logging.Logger) *UploadService {
	return &UploadService{
		client:  c,
		session: session,
		apiBase: strings.TrimRight(apiBase, "/"),
		log:     log.With("component", "upload"),
	}
}

// NewUploadFile names and sniffs data. The content type is detected from the
// bytes, not the file name.
func NewUploadFile(path string, data []byte) client.UploadFile {
	return client.UploadFile{
		Name:        filepath.Base(path),
		ContentType: sniffImageType(data),
		Data:        data,
	}
}

func sniffImageType(data []byte) string {
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

func (u *UploadService) UploadSingle(ctx context.Context, file client.UploadFile) (string, error) {
	if err := checkFiles([]client.UploadFile{file}, 1); err != nil {
		return "", err
	}
	token, err := u.credential()
	if err != nil {
		return "", err
	}
	img, err := u.client.UploadImage(ctx, token, file)
	if err != nil {
		return "", u.fail(ctx, token, err)
	}
	return u.resolve(img.URL), nil
}

// UploadMultiple sends up to maxFiles images (maxFiles < 1 means the
// default of 5) in one request.
func (u *UploadService) UploadMultiple(ctx context.Context, files []client.UploadFile, maxFiles int) ([]string, error) {
	if maxFiles < 1 {
		maxFiles = DefaultMaxFiles
	}
	if err := checkFiles(files, maxFiles); err != nil {
		return nil, err
	}
	token, err := u.credential()
	if err != nil {
		return nil, err
	}
	imgs, err := u.client.UploadImages(ctx, token, files)
	if err != nil {
		return nil, u.fail(ctx, token, err)
	}
	urls := make([]string, 0, len(imgs))
	for _, img := range imgs {
		urls = append(urls, u.resolve(img.URL))
	}
	return urls, nil
}

// checkFiles applies the size rule before the count rule.
func checkFiles(files []client.UploadFile, maxFiles int) error {
	if len(files) == 0 {
		return &Failure{Message: msgUploadNoFiles}
	}
	for _, f := range files {
		if len(f.Data) > MaxUploadBytes {
			return &Failure{Message: msgUploadTooLarge}
		}
	}
	if len(files) > maxFiles {
		return &Failure{Message: fmt.Sprintf("Maximum %d files allowed", maxFiles)}
	}
	for _, f := range files {
		if !allowedImageTypes[f.ContentType] {
			return &Failure{Message: msgUploadBadType}
		}
	}
	return nil
}

func (u *UploadService) credential() (string, error) {
	token := u.session.Credential()
	if token == "" {
		return "", &Failure{Message: msgUploadNoAuth, Err: ErrUnauthenticated}
	}
	return token, nil
}

func (u *UploadService) fail(ctx context.Context, token string, err error) error {
	u.log.Warn(ctx, "upload failed", "error", err)
	if errors.Is(err, client.ErrUnauthorized) {
		u.session.Invalidate(ctx, token)
	}
	return failure(err, msgUploadFailed)
}

func (u *UploadService) resolve(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return u.apiBase + ref
}
