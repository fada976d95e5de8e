package github_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghAdapter "github.com/ewatkins/checkmate/internal/adapter/driven/github"
	"github.com/ewatkins/checkmate/internal/domain/port/driven"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) (*ghAdapter.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/")
	require.NoError(t, err)

	return client, server
}

// commentJSON is a helper struct for building GitHub API comment responses.
type commentJSON struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

func TestCreateCommitStatus(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 1}`)
	})

	client, _ := newTestClient(t, handler)

	err := client.CreateCommitStatus(context.Background(), "octocat/zephyr", "abc123", driven.CommitStatus{
		State:       driven.StateFailure,
		TargetURL:   "https://example.com/style",
		Description: "Verification failed",
		Context:     "checkpatch",
	})
	require.NoError(t, err)

	assert.Equal(t, "/repos/octocat/zephyr/statuses/abc123", gotPath)
	assert.Equal(t, "failure", gotBody["state"])
	assert.Equal(t, "https://example.com/style", gotBody["target_url"])
	assert.Equal(t, "Verification failed", gotBody["description"])
	assert.Equal(t, "checkpatch", gotBody["context"])
}

func TestCreateCommitStatus_APIError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	client, _ := newTestClient(t, handler)

	err := client.CreateCommitStatus(context.Background(), "octocat/gone", "abc123", driven.CommitStatus{
		State:   driven.StatePending,
		Context: "checkpatch",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checkpatch")
}

func TestListIssueComments_SinglePage(t *testing.T) {
	comments := []commentJSON{
		{ID: 11, Body: "looks good"},
		{ID: 12, Body: "Found the following issues, please fix and resubmit:\n\n## Checkpatch issues"},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/zephyr/issues/7/comments", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(comments))
	})

	client, _ := newTestClient(t, handler)

	got, err := client.ListIssueComments(context.Background(), "octocat/zephyr", 7)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, int64(11), got[0].ID)
	assert.Equal(t, "looks good", got[0].Body)
	assert.Contains(t, got[1].Body, "please fix and resubmit")
}

func TestListIssueComments_Pagination(t *testing.T) {
	var server *httptest.Server

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		page := r.URL.Query().Get("page")
		if page == "" || page == "1" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/octocat/zephyr/issues/7/comments?page=2>; rel="next"`, server.URL))
			require.NoError(t, json.NewEncoder(w).Encode([]commentJSON{{ID: 1, Body: "first"}}))
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode([]commentJSON{{ID: 2, Body: "second"}}))
	})

	client, server := newTestClient(t, handler)

	got, err := client.ListIssueComments(context.Background(), "octocat/zephyr", 7)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Body)
	assert.Equal(t, "second", got[1].Body)
}

func TestCreateIssueComment(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 55, "body": "posted"}`)
	})

	client, _ := newTestClient(t, handler)

	err := client.CreateIssueComment(context.Background(), "octocat/zephyr", 7, "report body")
	require.NoError(t, err)

	assert.Equal(t, "/repos/octocat/zephyr/issues/7/comments", gotPath)
	assert.Equal(t, "report body", gotBody["body"])
}

func TestEditIssueComment(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 55, "body": "updated"}`)
	})

	client, _ := newTestClient(t, handler)

	err := client.EditIssueComment(context.Background(), "octocat/zephyr", 55, "updated body")
	require.NoError(t, err)

	assert.Equal(t, "/repos/octocat/zephyr/issues/comments/55", gotPath)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "updated body", gotBody["body"])
}

func TestSplitRepoValidation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an invalid repo name")
	}))

	err := client.CreateCommitStatus(context.Background(), "not-a-repo", "abc", driven.CommitStatus{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner/repo")

	_, err = client.ListIssueComments(context.Background(), "/missing-owner", 1)
	require.Error(t, err)
}
