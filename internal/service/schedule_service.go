package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	config "github.com/adforgehq/adforge-api/configs"
	"github.com/adforgehq/adforge-api/internal/models"
	"github.com/adforgehq/adforge-api/internal/refdocs"
	"github.com/adforgehq/adforge-api/internal/repository"
	"github.com/adforgehq/adforge-api/internal/transfer"
	"github.com/adforgehq/adforge-api/pkg/utils"
)

type ScheduleService interface {
	Schedule(ctx context.Context, userID int64, req *transfer.ScheduleRequest) (*transfer.ScheduleResult, error)
	RetryRegistration(ctx context.Context, intentID int64) error
	Cancel(ctx context.Context, userID, intentID int64) (*transfer.CancelResult, error)
	List(ctx context.Context, userID int64) ([]*models.PostIntent, error)
	IntentInfo(ctx context.Context, intentID, userID int64) (*transfer.IntentDetail, error)
}

type scheduleService struct {
	cfg     config.Config
	ir      repository.IntentRepository
	ci      repository.ContentItemRepository
	ra      repository.RegistrationAttemptRepository
	bp      repository.BrandProfileRepository
	late    LateService
	storage StorageService
	specs   *refdocs.Store
}

func NewScheduleService(
	cfg config.Config,
	ir repository.IntentRepository,
	ci repository.ContentItemRepository,
	ra repository.RegistrationAttemptRepository,
	bp repository.BrandProfileRepository,
	late LateService,
	storage StorageService,
	specs *refdocs.Store) ScheduleService {
	return &scheduleService{
		cfg:     cfg,
		ir:      ir,
		ci:      ci,
		ra:      ra,
		bp:      bp,
		late:    late,
		storage: storage,
		specs:   specs,
	}
}

// Schedule validates the request, persists the intent, then attempts (or
// explicitly skips) external registration. The local write is the source of
// truth: a failed external leg is reported in the result, never rolled back.
func (s *scheduleService) Schedule(ctx context.Context, userID int64, req *transfer.ScheduleRequest) (*transfer.ScheduleResult, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	postType, scheduledTime, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	owned, err := s.resolveOwnership(ctx, userID, req.Items)
	if err != nil {
		return nil, err
	}

	intent := models.PostIntent{
		UserID:        userID,
		PostType:      postType,
		Caption:       req.Caption,
		ScheduledTime: scheduledTime,
		Status:        models.IntentStatusScheduled,
	}

	items := make([]models.IntentItem, len(req.Items))
	for i, ref := range req.Items {
		items[i] = models.IntentItem{
			ContentItemID: ref.ID,
			Kind:          ref.Type,
			DisplayOrder:  i,
		}
	}

	targets := make([]models.IntentTarget, len(req.Platforms))
	for i, target := range req.Platforms {
		targets[i] = models.IntentTarget{
			Platform:      target.Platform,
			LateAccountID: target.AccountID,
			DisplayOrder:  i,
		}
	}

	intentID, err := s.ir.Create(ctx, &intent, items, targets)
	if err != nil {
		return nil, fmt.Errorf("error creating intent: %w", ErrPersistence)
	}
	intent.ID = intentID

	result := &transfer.ScheduleResult{Post: &intent}

	if len(req.Platforms) == 0 {
		result.LateStatus = transfer.LateStatusSkipped
		result.SkipReason = transfer.SkipReasonNoPlatforms
		return result, nil
	}

	apiKey, err := s.userLateKey(ctx, userID)
	if err != nil {
		slog.Info(err.Error())
		apiKey = ""
	}
	if apiKey == "" && !s.late.Configured() {
		result.LateStatus = transfer.LateStatusSkipped
		result.SkipReason = transfer.SkipReasonNoCredential
		return result, nil
	}

	keys := make([]string, len(items))
	kinds := make([]string, len(items))
	for i, item := range items {
		keys[i] = owned[item.ContentItemID].StorageKey
		kinds[i] = item.Kind
	}

	status, errMsg := s.register(ctx, apiKey, &intent, keys, kinds, targets)
	result.LateStatus = status
	result.LateError = errMsg
	return result, nil
}

func (s *scheduleService) validate(req *transfer.ScheduleRequest) (string, time.Time, error) {
	if req == nil {
		return "", time.Time{}, fmt.Errorf("request body is missing: %w", ErrValidation)
	}

	if req.ScheduledFor == "" {
		return "", time.Time{}, fmt.Errorf("scheduled_for is required: %w", ErrValidation)
	}
	scheduledTime, err := ParseScheduledTime(req.ScheduledFor)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid scheduled_for format: %w", ErrValidation)
	}

	postType := req.PostType
	if postType == "" {
		postType = models.PostTypeCarousel
	}

	switch postType {
	case models.PostTypeSingle:
		if len(req.Items) != 1 {
			return "", time.Time{}, fmt.Errorf("a single post takes exactly one item: %w", ErrValidation)
		}
	case models.PostTypeCarousel:
		if len(req.Items) < models.CarouselMinItems || len(req.Items) > models.CarouselMaxItems {
			return "", time.Time{}, fmt.Errorf("a carousel takes between %d and %d items: %w",
				models.CarouselMinItems, models.CarouselMaxItems, ErrValidation)
		}
	default:
		return "", time.Time{}, fmt.Errorf("unknown post_type %q: %w", postType, ErrValidation)
	}

	for _, item := range req.Items {
		if item.ID == "" {
			return "", time.Time{}, fmt.Errorf("item id is required: %w", ErrValidation)
		}
		if item.Type != models.ContentKindAd && item.Type != models.ContentKindVideo {
			return "", time.Time{}, fmt.Errorf("unknown item type %q: %w", item.Type, ErrValidation)
		}
	}

	specs := s.specs.Specs()
	for _, target := range req.Platforms {
		spec, ok := specs.Get(target.Platform)
		if !ok {
			return "", time.Time{}, fmt.Errorf("unknown platform %q: %w", target.Platform, ErrValidation)
		}
		if target.AccountID == "" {
			return "", time.Time{}, fmt.Errorf("account_id is required for platform %q: %w", target.Platform, ErrValidation)
		}
		if utf8.RuneCountInString(req.Caption) > spec.MaxCaptionLength {
			return "", time.Time{}, fmt.Errorf("caption exceeds %d characters for %s: %w", spec.MaxCaptionLength, target.Platform, ErrValidation)
		}
		if len(req.Items) > spec.MaxMediaItems {
			return "", time.Time{}, fmt.Errorf("%s accepts at most %d media items: %w", target.Platform, spec.MaxMediaItems, ErrValidation)
		}
		for _, item := range req.Items {
			if !spec.AllowsKind(item.Type) {
				return "", time.Time{}, fmt.Errorf("%s does not accept %s items: %w", target.Platform, item.Type, ErrValidation)
			}
		}
	}

	return postType, scheduledTime, nil
}

// resolveOwnership loads the referenced items scoped to the requesting user.
// Any missing or foreign-owned id fails the whole batch; there is no partial
// success. Items are immutable once referenced, so this runs exactly once.
func (s *scheduleService) resolveOwnership(ctx context.Context, userID int64, refs []transfer.ItemRef) (map[string]*models.ContentItem, error) {
	seen := make(map[string]struct{}, len(refs))
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.ID]; ok {
			continue
		}
		seen[ref.ID] = struct{}{}
		ids = append(ids, ref.ID)
	}

	items, err := s.ci.GetOwnedByIDs(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("error resolving content items: %w", ErrPersistence)
	}

	if len(items) != len(ids) {
		slog.Info("content reference check failed", "user_id", userID, "requested", len(ids), "owned", len(items))
		return nil, ErrNotFoundOrForbidden
	}

	owned := make(map[string]*models.ContentItem, len(items))
	for _, item := range items {
		owned[item.ID] = item
	}

	for _, ref := range refs {
		if owned[ref.ID].Kind != ref.Type {
			return nil, fmt.Errorf("item %s is not a %s: %w", ref.ID, ref.Type, ErrValidation)
		}
	}

	return owned, nil
}

// register runs the external leg: sign media links, create the Late post,
// store the external reference. Failures are demoted to a status string.
func (s *scheduleService) register(ctx context.Context, apiKey string, intent *models.PostIntent, keys, kinds []string, targets []models.IntentTarget) (status, errMsg string) {
	links := s.storage.SignedLinkBatch(ctx, keys, PublishLinkTTL)

	minLinks := 1
	if intent.PostType == models.PostTypeCarousel {
		minLinks = models.CarouselMinItems
	}

	media := make([]transfer.LateMediaItem, 0, len(links))
	for i, link := range links {
		if link == "" {
			continue
		}
		mediaType := "image"
		if kinds[i] == models.ContentKindVideo {
			mediaType = "video"
		}
		media = append(media, transfer.LateMediaItem{Type: mediaType, URL: link})
	}

	if len(media) < minLinks {
		errMsg = fmt.Sprintf("only %d of %d media links could be signed", len(media), len(keys))
		s.recordAttempt(ctx, intent, transfer.LateStatusError, errMsg)
		return transfer.LateStatusError, errMsg
	}

	platforms := make([]transfer.LatePlatformTarget, len(targets))
	for i, target := range targets {
		platforms[i] = transfer.LatePlatformTarget{
			Platform:  target.Platform,
			AccountID: target.LateAccountID,
		}
	}

	latePostID, err := s.late.CreatePost(ctx, apiKey, &transfer.LateCreatePostRequest{
		Content:      intent.Caption,
		ScheduledFor: intent.ScheduledTime.UTC().Format(time.RFC3339),
		Timezone:     "UTC",
		Platforms:    platforms,
		MediaItems:   media,
	})
	if err != nil {
		slog.Info(err.Error())
		s.recordAttempt(ctx, intent, transfer.LateStatusError, err.Error())
		return transfer.LateStatusError, err.Error()
	}

	if err := s.ir.SetLatePostID(ctx, intent.ID, latePostID); err != nil {
		// The post is registered; next webhook or sweep will find it by the
		// external reference failing to match and the attempt row keeps the id.
		s.recordAttempt(ctx, intent, transfer.LateStatusError, "registered as "+latePostID+" but reference not stored: "+err.Error())
		return transfer.LateStatusError, "external reference could not be stored"
	}
	intent.LatePostID.String = latePostID
	intent.LatePostID.Valid = true

	s.recordAttempt(ctx, intent, transfer.LateStatusSuccess, "")
	return transfer.LateStatusSuccess, ""
}

func (s *scheduleService) recordAttempt(ctx context.Context, intent *models.PostIntent, outcome, errMsg string) {
	attempt := models.RegistrationAttempt{
		UserID:       intent.UserID,
		IntentID:     intent.ID,
		Outcome:      outcome,
		ErrorMessage: errMsg,
	}
	if _, err := s.ra.Create(ctx, &attempt); err != nil {
		slog.Info("error saving registration attempt", "intent_id", intent.ID, "err", err.Error())
	}
}

func (s *scheduleService) userLateKey(ctx context.Context, userID int64) (string, error) {
	profile, isExist, err := s.bp.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !isExist || profile.LateAPIKey == "" {
		return "", nil
	}

	key, err := utils.Decrypt(profile.LateAPIKey, []byte(s.cfg.SecretKey))
	if err != nil {
		return "", err
	}
	return key, nil
}

// RetryRegistration re-runs only the external leg for an intent whose
// registration failed. Cancelled, settled, and already-registered intents are
// left alone.
func (s *scheduleService) RetryRegistration(ctx context.Context, intentID int64) error {
	intent, err := s.ir.GetByID(ctx, intentID)
	if err != nil {
		return err
	}
	if intent == nil || intent.Status != models.IntentStatusScheduled || intent.LatePostID.Valid {
		return nil
	}

	targets, err := s.ir.ListTargets(ctx, intentID)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return nil
	}

	items, err := s.ir.ListItems(ctx, intentID)
	if err != nil {
		return err
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ContentItemID
	}
	owned, err := s.ci.GetOwnedByIDs(ctx, intent.UserID, ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*models.ContentItem, len(owned))
	for _, item := range owned {
		byID[item.ID] = item
	}

	keys := make([]string, len(items))
	kinds := make([]string, len(items))
	for i, item := range items {
		if ci, ok := byID[item.ContentItemID]; ok {
			keys[i] = ci.StorageKey
		}
		kinds[i] = item.Kind
	}

	apiKey, err := s.userLateKey(ctx, intent.UserID)
	if err != nil {
		slog.Info(err.Error())
		apiKey = ""
	}
	if apiKey == "" && !s.late.Configured() {
		return nil
	}

	targetRows := make([]models.IntentTarget, len(targets))
	for i, target := range targets {
		targetRows[i] = *target
	}

	status, errMsg := s.register(ctx, apiKey, intent, keys, kinds, targetRows)
	if status == transfer.LateStatusError {
		return errors.New(errMsg)
	}
	return nil
}

// Cancel marks the intent cancelled locally, then best-effort retracts the
// external registration. Cancelling an already-terminal intent is a no-op
// success, and the retraction outcome never fails the cancellation.
func (s *scheduleService) Cancel(ctx context.Context, userID, intentID int64) (*transfer.CancelResult, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if intentID == 0 {
		return nil, fmt.Errorf("intent id is required: %w", ErrValidation)
	}

	isValid, err := s.ir.CheckByUserID(ctx, intentID, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking intent: %w", ErrPersistence)
	}
	if !isValid {
		return nil, ErrNotFoundOrForbidden
	}

	intent, err := s.ir.GetByID(ctx, intentID)
	if err != nil || intent == nil {
		return nil, fmt.Errorf("error loading intent: %w", ErrPersistence)
	}

	// Terminal intents are left exactly as they are; cancelling one is a
	// no-op success with no external retraction.
	if intent.Status != models.IntentStatusScheduled {
		return &transfer.CancelResult{Success: true, LateDelete: transfer.LateDeleteSkipped}, nil
	}

	if err := s.ir.Cancel(ctx, intentID); err != nil {
		return nil, fmt.Errorf("error cancelling intent: %w", ErrPersistence)
	}

	result := &transfer.CancelResult{Success: true}

	if !intent.LatePostID.Valid || intent.LatePostID.String == "" {
		result.LateDelete = transfer.LateDeleteNoID
		return result, nil
	}

	apiKey, err := s.userLateKey(ctx, userID)
	if err != nil {
		slog.Info(err.Error())
		apiKey = ""
	}
	if apiKey == "" && !s.late.Configured() {
		result.LateDelete = transfer.LateDeleteSkipped
		return result, nil
	}

	if err := s.late.DeletePost(ctx, apiKey, intent.LatePostID.String); err != nil {
		slog.Info(err.Error())
		result.LateDelete = transfer.LateDeleteError
		result.LateError = err.Error()
		return result, nil
	}

	result.LateDelete = transfer.LateDeleteSuccess
	return result, nil
}

func (s *scheduleService) List(ctx context.Context, userID int64) ([]*models.PostIntent, error) {
	intents, err := s.ir.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing intents: %w", ErrPersistence)
	}
	return intents, nil
}

func (s *scheduleService) IntentInfo(ctx context.Context, intentID, userID int64) (*transfer.IntentDetail, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if intentID == 0 {
		return nil, fmt.Errorf("intent id is required: %w", ErrValidation)
	}

	isValid, err := s.ir.CheckByUserID(ctx, intentID, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking intent: %w", ErrPersistence)
	}
	if !isValid {
		return nil, ErrNotFoundOrForbidden
	}

	intent, err := s.ir.GetByID(ctx, intentID)
	if err != nil || intent == nil {
		return nil, fmt.Errorf("error loading intent: %w", ErrPersistence)
	}

	items, err := s.ir.ListItems(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("error loading intent items: %w", ErrPersistence)
	}

	targets, err := s.ir.ListTargets(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("error loading intent targets: %w", ErrPersistence)
	}

	attempts, err := s.ra.GetByIntentID(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("error loading registration attempts: %w", ErrPersistence)
	}

	return &transfer.IntentDetail{Post: intent, Items: items, Targets: targets, Attempts: attempts}, nil
}
