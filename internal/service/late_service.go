package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	config "github.com/adforgehq/adforge-api/configs"
	"github.com/adforgehq/adforge-api/internal/transfer"
)

// LateService talks to the Late publishing API. An empty apiKey argument on
// any call falls back to the process-wide credential.
type LateService interface {
	Configured() bool
	ListAccounts(ctx context.Context, apiKey string) ([]transfer.LateAccount, error)
	CreatePost(ctx context.Context, apiKey string, req *transfer.LateCreatePostRequest) (string, error)
	GetPost(ctx context.Context, apiKey string, latePostID string) (*transfer.LatePost, error)
	DeletePost(ctx context.Context, apiKey string, latePostID string) error
}

type lateService struct {
	cfg    config.Config
	client *http.Client
}

func NewLateService(cfg config.Config) LateService {
	return &lateService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *lateService) Configured() bool {
	return s.cfg.Late.APIKey != ""
}

func (s *lateService) resolveKey(apiKey string) string {
	if apiKey != "" {
		return apiKey
	}
	return s.cfg.Late.APIKey
}

func (s *lateService) newRequest(ctx context.Context, method, path, apiKey string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.cfg.Late.BaseURL+path, reader)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.resolveKey(apiKey))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func lateError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var errResp transfer.LateErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil {
		if errResp.Error != "" {
			return errors.New(errResp.Error)
		}
		if errResp.Message != "" {
			return errors.New(errResp.Message)
		}
	}
	return fmt.Errorf("unexpected response status: %d", resp.StatusCode)
}

func (s *lateService) ListAccounts(ctx context.Context, apiKey string) ([]transfer.LateAccount, error) {
	req, err := s.newRequest(ctx, http.MethodGet, "/accounts", apiKey, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, lateError(resp)
	}

	var accounts transfer.LateAccountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return accounts.Accounts, nil
}

func (s *lateService) CreatePost(ctx context.Context, apiKey string, postReq *transfer.LateCreatePostRequest) (string, error) {
	req, err := s.newRequest(ctx, http.MethodPost, "/posts", apiKey, postReq)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", lateError(resp)
	}

	var created transfer.LateCreatePostResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	if created.Post.ID == "" {
		return "", errors.New("late response has no post id")
	}

	return created.Post.ID, nil
}

func (s *lateService) GetPost(ctx context.Context, apiKey string, latePostID string) (*transfer.LatePost, error) {
	req, err := s.newRequest(ctx, http.MethodGet, "/posts/"+latePostID, apiKey, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, lateError(resp)
	}

	var post transfer.LateGetPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return &post.Post, nil
}

// DeletePost retracts a registered post. A post Late no longer knows about
// counts as retracted.
func (s *lateService) DeletePost(ctx context.Context, apiKey string, latePostID string) error {
	req, err := s.newRequest(ctx, http.MethodDelete, "/posts/"+latePostID, apiKey, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		return nil
	}

	return lateError(resp)
}
