package objectstore

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/anikan666/pirate-lab/internal/config"
	"github.com/anikan666/pirate-lab/internal/domain"
	"github.com/anikan666/pirate-lab/internal/port"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// presignTTL is how long issued access URLs stay valid.
const presignTTL = time.Hour

// Store implements port.FileStore over an S3-compatible bucket. Each
// filename maps to one object key under a fixed prefix.
//
// Rename is copy-then-delete and therefore not atomic at the provider level:
// when the delete half fails both keys briefly resolve to the same content
// and the operation reports failure.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

var (
	_ port.FileStore   = (*Store)(nil)
	_ port.TempCleaner = (*Store)(nil)
)

// NewStore builds the backend. Client construction failure does not error
// out: the store marks itself uninitialized and every subsequent call
// reports failure without attempting network I/O.
func NewStore(cfg config.S3Config) *Store {
	s := &Store{
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}

	var creds *credentials.Credentials
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	} else {
		// Default chain: env, then instance role.
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.IAM{},
		})
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		logger.Errorw("Object store client init failed, backend disabled",
			"endpoint", cfg.Endpoint, "bucket", cfg.Bucket, "error", err.Error())
		return s
	}

	s.client = client
	return s
}

// Initialized reports whether the backend has a usable client.
func (s *Store) Initialized() bool {
	return s.client != nil
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

// Save uploads content with an audio content type derived from the extension.
func (s *Store) Save(ctx context.Context, name string, content []byte) bool {
	if s.client == nil {
		return false
	}
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name),
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: domain.ContentTypeFor(name)})
	if err != nil {
		logger.Warnw("Object store save failed", "file", name, "error", err.Error())
		return false
	}
	return true
}

// Get downloads the full object content.
func (s *Store) Get(ctx context.Context, name string) ([]byte, bool) {
	if s.client == nil {
		return nil, false
	}
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		logger.Warnw("Object store get failed", "file", name, "error", err.Error())
		return nil, false
	}
	defer func() { _ = obj.Close() }()

	content, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			logger.Warnw("Object store read failed", "file", name, "error", err.Error())
		}
		return nil, false
	}
	return content, true
}

// Delete removes the object. The provider treats deleting an absent key as
// success, so existence is checked first to keep the reported result honest.
func (s *Store) Delete(ctx context.Context, name string) bool {
	if s.client == nil {
		return false
	}
	if !s.Exists(ctx, name) {
		return false
	}
	if err := s.client.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{}); err != nil {
		logger.Warnw("Object store delete failed", "file", name, "error", err.Error())
		return false
	}
	return true
}

// Rename copies the object to the new key, then deletes the original.
func (s *Store) Rename(ctx context.Context, oldName, newName string) bool {
	if s.client == nil {
		return false
	}

	src := minio.CopySrcOptions{Bucket: s.bucket, Object: s.key(oldName)}
	dst := minio.CopyDestOptions{Bucket: s.bucket, Object: s.key(newName)}
	if _, err := s.client.CopyObject(ctx, dst, src); err != nil {
		logger.Warnw("Object store rename copy failed", "from", oldName, "to", newName, "error", err.Error())
		return false
	}

	if err := s.client.RemoveObject(ctx, s.bucket, s.key(oldName), minio.RemoveObjectOptions{}); err != nil {
		// Copy landed but the original remains; both names resolve until a
		// later delete or the sweeper catches up.
		logger.Warnw("Object store rename delete failed, both names may resolve",
			"from", oldName, "to", newName, "error", err.Error())
		return false
	}
	return true
}

// List streams the paginated bucket listing under the key prefix, newest
// first. Created is the object's LastModified time.
func (s *Store) List(ctx context.Context, excludePrefix string) []domain.FileRecord {
	if s.client == nil {
		return nil
	}

	var files []domain.FileRecord
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			logger.Warnw("Object store list failed", "bucket", s.bucket, "error", obj.Err.Error())
			break
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		if !domain.IsAudioFilename(name) {
			continue
		}
		if excludePrefix != "" && strings.HasPrefix(name, excludePrefix) {
			continue
		}
		files = append(files, domain.FileRecord{
			Filename: name,
			Size:     obj.Size,
			Created:  obj.LastModified.Unix(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Created > files[j].Created })
	return files
}

// Exists stats the object.
func (s *Store) Exists(ctx context.Context, name string) bool {
	if s.client == nil {
		return false
	}
	_, err := s.client.StatObject(ctx, s.bucket, s.key(name), minio.StatObjectOptions{})
	return err == nil
}

// AccessURL issues a presigned GET URL valid for one hour.
func (s *Store) AccessURL(ctx context.Context, name string) (string, bool) {
	if s.client == nil {
		return "", false
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, s.key(name), presignTTL, url.Values{})
	if err != nil {
		logger.Warnw("Object store presign failed", "file", name, "error", err.Error())
		return "", false
	}
	return u.String(), true
}

// CleanupTemp deletes temp_ objects older than maxAge.
func (s *Store) CleanupTemp(ctx context.Context, maxAge time.Duration) {
	if s.client == nil {
		return
	}
	now := time.Now()
	for _, file := range s.List(ctx, "") {
		if !file.IsTemp() || file.Age(now) <= maxAge {
			continue
		}
		if !s.Delete(ctx, file.Filename) {
			logger.Warnw("Temp cleanup delete failed", "file", file.Filename)
		}
	}
}
