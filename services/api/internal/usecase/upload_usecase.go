package usecase

import (
	"context"
	"io"
	"mime/multipart"
	"time"

	"vidshare/pkg/apperr"
	"vidshare/pkg/logger"
	"vidshare/pkg/metrics"
	"vidshare/pkg/storage"
	"vidshare/services/api/internal/entity"

	"github.com/gabriel-vasile/mimetype"
)

type UploadKind string

const (
	UploadMedia UploadKind = "media"
	UploadLogo  UploadKind = "logo"
)

type UploadPolicy struct {
	MaxSize      int64
	AllowedTypes []string
}

var (
	MediaPolicy = UploadPolicy{
		MaxSize:      100 << 20,
		AllowedTypes: []string{"video/mp4", "video/webm", "image/jpeg", "image/png", "image/webp"},
	}
	LogoPolicy = UploadPolicy{
		MaxSize:      10 << 20,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/webp"},
	}
)

func (k UploadKind) Policy() UploadPolicy {
	if k == UploadLogo {
		return LogoPolicy
	}
	return MediaPolicy
}

type UploadUseCase interface {
	Upload(ctx context.Context, kind UploadKind, file *multipart.FileHeader) (*entity.UploadedFile, error)
}

type uploadUseCase struct {
	store  storage.Store
	logger *logger.Logger
	now    func() time.Time
}

func NewUploadUseCase(store storage.Store, logger *logger.Logger) UploadUseCase {
	return &uploadUseCase{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Upload checks the declared and sniffed content type against the kind's
// allow-list and its size cap, then stores the file under a generated name.
func (uc *uploadUseCase) Upload(ctx context.Context, kind UploadKind, file *multipart.FileHeader) (*entity.UploadedFile, error) {
	if file == nil {
		return nil, apperr.New(apperr.KindBadRequest, "no_file", "file is required")
	}

	policy := kind.Policy()
	if file.Size > policy.MaxSize {
		return nil, fileTooLarge()
	}

	contentType := file.Header.Get("Content-Type")
	if !allowed(contentType, policy.AllowedTypes) {
		return nil, unsupportedFileType()
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperr.Internal("failed to open upload", err)
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, apperr.Internal("failed to read upload", err)
	}
	if !sniffedAllowed(detected, policy.AllowedTypes) {
		uc.logger.Warn("Rejected upload %s: declared %s, detected %s", file.Filename, contentType, detected.String())
		return nil, unsupportedFileType()
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, apperr.Internal("failed to rewind upload", err)
	}

	filename := storage.GenerateFilename(file.Filename, uc.now())
	url, err := uc.store.Save(ctx, filename, src, file.Size, contentType)
	if err != nil {
		uc.logger.Error("Failed to store upload %s: %v", filename, err)
		return nil, apperr.Internal("failed to store upload", err)
	}

	metrics.RecordUpload(string(kind), file.Size)
	return &entity.UploadedFile{
		URL:      url,
		Filename: filename,
		Size:     file.Size,
		MimeType: contentType,
	}, nil
}

func allowed(contentType string, types []string) bool {
	for _, t := range types {
		if contentType == t {
			return true
		}
	}
	return false
}

// sniffedAllowed accepts detected when it or one of its parent types is on the
// list, so container variants (M4V, 3GP) pass as video/mp4.
func sniffedAllowed(detected *mimetype.MIME, types []string) bool {
	for m := detected; m != nil; m = m.Parent() {
		if mimetype.EqualsAny(m.String(), types...) {
			return true
		}
	}
	return false
}

func fileTooLarge() error {
	return apperr.New(apperr.KindBadRequest, "file_too_large", "file exceeds the size limit")
}

func unsupportedFileType() error {
	return apperr.New(apperr.KindBadRequest, "unsupported_file_type", "file type is not allowed")
}
