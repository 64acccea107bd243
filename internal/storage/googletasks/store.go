// Package googletasks implements storage.Store on top of the Google Tasks API.
//
// Entries live in a dedicated task list: each entry is one task whose title is
// the key and whose notes hold the value.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todo/internal/config"
	"todo/internal/storage"
)

const (
	// MaxValueBytes is the largest value the notes field accepts.
	MaxValueBytes = 8192

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"
)

// Store implements storage.Store using Google Tasks API.
type Store struct {
	svc       *tasks.Service
	listTitle string

	mu     sync.Mutex
	listID string            // resolved lazily
	ids    map[string]string // key -> task ID
}

// New creates a Store from the OAuth files in the config directory.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrUnauthorized, err)
	}
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrUnauthorized, err)
	}

	// Token source refreshes automatically.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	return NewWithHTTPClient(ctx, httpClient, cfg.RemoteList)
}

// NewWithHTTPClient creates a Store with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, listTitle string, opts ...option.ClientOption) (*Store, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Store{svc: svc, listTitle: listTitle, ids: make(map[string]string)}, nil
}

// Get implements storage.Store.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listID, err := s.resolveList(ctx, false)
	if err != nil || listID == "" {
		return "", false, err
	}
	t, err := s.findTask(ctx, listID, key)
	if err != nil || t == nil {
		return "", false, err
	}
	return t.Notes, true, nil
}

// Set implements storage.Store.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if len(value) > MaxValueBytes {
		return fmt.Errorf("%w: %s is %d bytes (limit %d)", storage.ErrValueTooLarge, key, len(value), MaxValueBytes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	listID, err := s.resolveList(ctx, true)
	if err != nil {
		return err
	}
	existing, err := s.findTask(ctx, listID, key)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if existing != nil {
		_, err = s.svc.Tasks.Patch(listID, existing.Id, &tasks.Task{Notes: value}).Context(ctx).Do()
		return wrapError(err)
	}
	created, err := s.svc.Tasks.Insert(listID, &tasks.Task{Title: key, Notes: value}).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	s.ids[key] = created.Id
	return nil
}

// Close implements storage.Store.
func (s *Store) Close() error {
	return nil
}

// resolveList finds the storage list by title, creating it when create is set.
// Returns "" without error when the list does not exist and create is false.
func (s *Store) resolveList(ctx context.Context, create bool) (string, error) {
	if s.listID != "" {
		return s.listID, nil
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	want := strings.ToLower(strings.TrimSpace(s.listTitle))
	err := s.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if s.listID == "" && strings.ToLower(strings.TrimSpace(list.Title)) == want {
				s.listID = list.Id
			}
		}
		return nil
	})
	if err != nil {
		return "", wrapError(err)
	}
	if s.listID != "" || !create {
		return s.listID, nil
	}

	list, err := s.svc.Tasklists.Insert(&tasks.TaskList{Title: s.listTitle}).Context(ctx).Do()
	if err != nil {
		return "", wrapError(err)
	}
	s.listID = list.Id
	return s.listID, nil
}

// findTask returns the entry task for key, or nil if there is none.
func (s *Store) findTask(ctx context.Context, listID, key string) (*tasks.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if id, ok := s.ids[key]; ok {
		t, err := s.svc.Tasks.Get(listID, id).Context(ctx).Do()
		if err == nil {
			return t, nil
		}
		delete(s.ids, key)
	}

	var found *tasks.Task
	err := s.svc.Tasks.List(listID).
		MaxResults(100).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				if found == nil && t.Title == key {
					found = t
				}
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	if found != nil {
		s.ids[key] = found.Id
	}
	return found, nil
}

// wrapError adds a user-facing message to API errors, keeping the cause.
// Rejected credentials wrap storage.ErrUnauthorized.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: token expired or revoked (run: todo login): %w", storage.ErrUnauthorized, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: token expired or revoked (run: todo login): %w", storage.ErrUnauthorized, err)
		case http.StatusNotFound:
			return fmt.Errorf("not found: %w", err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	return err
}

var _ storage.Store = (*Store)(nil)
