package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/adforgehq/adforge-api/internal/models"
	"github.com/adforgehq/adforge-api/internal/repository"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	adFileTypes    = map[string]struct{}{"jpeg": {}, "jpg": {}, "png": {}}
	videoFileTypes = map[string]struct{}{"mp4": {}, "mov": {}}
)

type ContentItemWithLink struct {
	*models.ContentItem
	URL string `json:"url"`
}

type ContentService interface {
	Upload(ctx context.Context, userID int64, kind string, file *multipart.FileHeader) (*models.ContentItem, error)
	List(ctx context.Context, userID int64) ([]*ContentItemWithLink, error)
	Remove(ctx context.Context, userID int64, itemID string) error
}

type contentService struct {
	ci      repository.ContentItemRepository
	storage StorageService
}

func NewContentService(ci repository.ContentItemRepository, storage StorageService) ContentService {
	return &contentService{
		ci:      ci,
		storage: storage,
	}
}

func (s *contentService) Upload(ctx context.Context, userID int64, kind string, file *multipart.FileHeader) (*models.ContentItem, error) {
	if kind != models.ContentKindAd && kind != models.ContentKindVideo {
		return nil, fmt.Errorf("unknown content kind %q: %w", kind, ErrValidation)
	}
	if file == nil {
		return nil, fmt.Errorf("no file provided: %w", ErrValidation)
	}

	fileContent, err := file.Open()
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error opening file: %w", ErrValidation)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error reading file content: %w", ErrValidation)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return nil, fmt.Errorf("unsupported file type: %w", ErrValidation)
	}

	allowed := adFileTypes
	if kind == models.ContentKindVideo {
		allowed = videoFileTypes
	}
	if _, ok := allowed[fileType.Extension]; !ok {
		return nil, fmt.Errorf("file type %s is not allowed for %s items: %w", fileType.Extension, kind, ErrValidation)
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.New("error generating item id")
	}

	if err := s.storage.Upload(ctx, id, fileBytes, fileType.MIME.Value); err != nil {
		return nil, fmt.Errorf("error uploading file: %w", err)
	}

	item := models.ContentItem{
		ID:         id,
		UserID:     userID,
		Kind:       kind,
		StorageKey: id,
		FileType:   fileType.MIME.Value,
		FileSize:   int64(len(fileBytes)),
	}

	if err := s.ci.Create(ctx, &item); err != nil {
		return nil, fmt.Errorf("error saving content item: %w", ErrPersistence)
	}

	return &item, nil
}

// List returns the user's items with short-lived display links for the UI.
func (s *contentService) List(ctx context.Context, userID int64) ([]*ContentItemWithLink, error) {
	items, err := s.ci.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing content items: %w", ErrPersistence)
	}

	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.StorageKey
	}
	links := s.storage.SignedLinkBatch(ctx, keys, DisplayLinkTTL)

	withLinks := make([]*ContentItemWithLink, len(items))
	for i, item := range items {
		withLinks[i] = &ContentItemWithLink{ContentItem: item, URL: links[i]}
	}
	return withLinks, nil
}

func (s *contentService) Remove(ctx context.Context, userID int64, itemID string) error {
	if itemID == "" {
		return fmt.Errorf("item id is required: %w", ErrValidation)
	}

	item, isExist, err := s.ci.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("error loading content item: %w", ErrPersistence)
	}
	if !isExist || item.UserID != userID {
		return ErrNotFoundOrForbidden
	}

	if item.StorageKey != "" {
		if err := s.storage.Remove(ctx, item.StorageKey); err != nil {
			slog.Info(err.Error())
		}
	}

	if err := s.ci.Remove(ctx, itemID); err != nil {
		return fmt.Errorf("error removing content item: %w", ErrPersistence)
	}
	return nil
}
