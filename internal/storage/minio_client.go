package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"socialfeed/internal/config"
	"socialfeed/internal/identity"
)

// ProgressFunc receives the upload progress in percent (0..100).
type ProgressFunc func(percentage int)

// Upload describes one blob handed to the storage.
type Upload struct {
	Owner    identity.Principal
	Folder   string
	FileName string
	Body     io.Reader
	Size     int64
	Progress ProgressFunc
}

// Storage keeps media blobs and returns an opaque reference plus a direct URL.
type Storage interface {
	Upload(ctx context.Context, upload Upload) (ref string, url string, err error)
	Delete(ctx context.Context, ref string) error
	// Ref maps a URL returned by Upload back to its reference,
	// an empty string for foreign URLs.
	Ref(url string) string
}

type MinIOClient struct {
	client *minio.Client
	cfg    config.MinIO
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента MinIO: %w", err)
	}

	return &MinIOClient{client: client, cfg: cfg.MinIO}, nil
}

// EnsureBucket creates the media bucket when it does not exist yet.
func (m *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.cfg.BucketName)
	if err != nil {
		return fmt.Errorf("ошибка проверки bucket %s: %w", m.cfg.BucketName, err)
	}
	if exists {
		return nil
	}

	err = m.client.MakeBucket(ctx, m.cfg.BucketName, minio.MakeBucketOptions{Region: m.cfg.Region})
	if err != nil {
		return fmt.Errorf("ошибка создания bucket %s: %w", m.cfg.BucketName, err)
	}

	log.Printf("Создан bucket %s", m.cfg.BucketName)
	return nil
}

func (m *MinIOClient) Upload(ctx context.Context, upload Upload) (string, string, error) {
	objectName := ObjectName(upload, time.Now())

	contentType := mime.TypeByExtension(filepath.Ext(objectName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-filename": upload.FileName,
			"owner":             upload.Owner.String(),
			"uploaded-at":       time.Now().Format(time.RFC3339),
		},
	}
	if upload.Progress != nil {
		opts.Progress = NewProgressReader(upload.Size, upload.Progress)
	}

	_, err := m.client.PutObject(ctx, m.cfg.BucketName, objectName, upload.Body, upload.Size, opts)
	if err != nil {
		return "", "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	return objectName, m.URL(objectName), nil
}

func (m *MinIOClient) Delete(ctx context.Context, ref string) error {
	err := m.client.RemoveObject(ctx, m.cfg.BucketName, ref, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}

// URL is the direct address of an object in a public-read bucket.
func (m *MinIOClient) URL(ref string) string {
	scheme := "http"
	if m.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.cfg.Endpoint, m.cfg.BucketName, ref)
}

func (m *MinIOClient) Ref(url string) string {
	prefix := m.URL("")
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}

// ObjectName builds "<folder>/<owner>/<yyyy>/<mm>/<uuid><ext>".
func ObjectName(upload Upload, now time.Time) string {
	fileExt := strings.ToLower(filepath.Ext(upload.FileName))
	if fileExt == "" {
		fileExt = ".bin"
	}

	folder := upload.Folder
	if folder == "" {
		folder = "media"
	}

	return fmt.Sprintf("%s/%s/%d/%02d/%s%s",
		folder,
		upload.Owner,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)
}

// OwnedBy reports whether ref lies in the folder that ObjectName gives owner.
func OwnedBy(ref, folder string, owner identity.Principal) bool {
	if ref == "" || owner.IsAnonymous() {
		return false
	}
	return strings.HasPrefix(ref, folder+"/"+owner.String()+"/")
}
