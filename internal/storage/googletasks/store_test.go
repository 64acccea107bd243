package googletasks_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"todo/internal/storage"
	"todo/internal/storage/googletasks"
)

type apiTask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Notes string `json:"notes,omitempty"`
}

type apiList struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// fakeTasksAPI serves the subset of the Tasks REST API the store uses.
type fakeTasksAPI struct {
	mu     sync.Mutex
	lists  []apiList
	tasks  map[string][]apiTask
	nextID int
	status int // when set, every request fails with this status
}

func (f *fakeTasksAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/tasks/v1/")
	parts := strings.Split(path, "/")
	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
		fmt.Fprintf(w, `{"error":{"code":%d,"message":"%s"}}`, f.status, http.StatusText(f.status))
		return
	}

	switch {
	case path == "users/@me/lists" && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode(map[string]any{"items": f.lists})
	case path == "users/@me/lists" && r.Method == http.MethodPost:
		var l apiList
		json.NewDecoder(r.Body).Decode(&l)
		f.nextID++
		l.ID = fmt.Sprintf("list%d", f.nextID)
		f.lists = append(f.lists, l)
		json.NewEncoder(w).Encode(l)
	case len(parts) == 3 && parts[0] == "lists" && parts[2] == "tasks" && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode(map[string]any{"items": f.tasks[parts[1]]})
	case len(parts) == 3 && parts[0] == "lists" && parts[2] == "tasks" && r.Method == http.MethodPost:
		var t apiTask
		json.NewDecoder(r.Body).Decode(&t)
		f.nextID++
		t.ID = fmt.Sprintf("task%d", f.nextID)
		f.tasks[parts[1]] = append(f.tasks[parts[1]], t)
		json.NewEncoder(w).Encode(t)
	case len(parts) == 4 && parts[0] == "lists" && parts[2] == "tasks":
		for i, t := range f.tasks[parts[1]] {
			if t.ID != parts[3] {
				continue
			}
			if r.Method == http.MethodPatch {
				var patch apiTask
				json.NewDecoder(r.Body).Decode(&patch)
				t.Notes = patch.Notes
				f.tasks[parts[1]][i] = t
			}
			json.NewEncoder(w).Encode(t)
			return
		}
		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
	default:
		http.Error(w, `{"error":{"code":400,"message":"unexpected"}}`, http.StatusBadRequest)
	}
}

func newStore(t *testing.T, api *fakeTasksAPI) *googletasks.Store {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	s, err := googletasks.NewWithHTTPClient(context.Background(), srv.Client(), "todo-storage",
		option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return s
}

func TestStore_GetWithoutListIsEmpty(t *testing.T) {
	api := &fakeTasksAPI{tasks: map[string][]apiTask{}}
	s := newStore(t, api)

	_, ok, err := s.Get(context.Background(), "todo")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, api.lists, "Get must not create the list")
}

func TestStore_SetCreatesListAndUpdates(t *testing.T) {
	api := &fakeTasksAPI{tasks: map[string][]apiTask{}}
	s := newStore(t, api)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "todo", "[1]"))
	require.NoError(t, s.Set(ctx, "todo", "[2]"))
	require.NoError(t, s.Set(ctx, "done", "[]"))

	require.Len(t, api.lists, 1)
	assert.Equal(t, "todo-storage", api.lists[0].Title)
	assert.Len(t, api.tasks[api.lists[0].ID], 2)

	// A fresh store resolves the existing list and entries.
	fresh := newStore(t, api)
	v, ok, err := fresh.Get(ctx, "todo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[2]", v)
}

func TestStore_ValueTooLarge(t *testing.T) {
	api := &fakeTasksAPI{tasks: map[string][]apiTask{}}
	s := newStore(t, api)

	err := s.Set(context.Background(), "todo", strings.Repeat("x", googletasks.MaxValueBytes+1))
	assert.ErrorIs(t, err, storage.ErrValueTooLarge)
	assert.Empty(t, api.lists)
}

func TestStore_RejectedCredentials(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			api := &fakeTasksAPI{tasks: map[string][]apiTask{}, status: status}
			s := newStore(t, api)

			_, _, err := s.Get(context.Background(), "todo")
			assert.ErrorIs(t, err, storage.ErrUnauthorized)
			assert.ErrorContains(t, err, "run: todo login")

			var apiErr *googleapi.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, status, apiErr.Code)
		})
	}
}

func TestStore_OtherAPIErrorsAreNotAuth(t *testing.T) {
	api := &fakeTasksAPI{tasks: map[string][]apiTask{}, status: http.StatusInternalServerError}
	s := newStore(t, api)

	err := s.Set(context.Background(), "todo", "[]")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrUnauthorized)
}
