package bundle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalBundle = `{
  "tests": [
    {"title": "One", "questions": [{"text": "q", "options": ["a","b","c","d"], "correctAnswer": 2}]},
    {"id": "custom", "title": "Two", "questions": []}
  ]
}`

func TestDefault_IsValid(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, b.Tests)

	seen := map[string]bool{}
	for _, tst := range b.Tests {
		assert.False(t, seen[tst.ID], "duplicate id %q", tst.ID)
		seen[tst.ID] = true
		assert.NoError(t, tst.CheckQuestions(), "test %q", tst.ID)
	}
}

func TestDecode_AssignsStableIDs(t *testing.T) {
	b, err := Decode("inline", []byte(minimalBundle))
	require.NoError(t, err)
	require.Len(t, b.Tests, 2)

	assert.Equal(t, "builtin-1", b.Tests[0].ID)
	assert.Equal(t, "custom", b.Tests[1].ID)
	assert.Equal(t, 1, b.Tests[0].Questions[0].ID)
	assert.Equal(t, 2, b.Tests[0].Questions[0].CorrectAnswer)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		invalid bool
		version bool
	}{
		{"not json", `{`, true, false},
		{"missing tests", `{}`, true, false},
		{"three options", `{"tests":[{"title":"x","questions":[{"text":"q","options":["a","b","c"],"correctAnswer":0}]}]}`, true, false},
		{"empty title", `{"tests":[{"title":""}]}`, true, false},
		{"major v2", `{"version":"v2.0.0","tests":[]}`, false, true},
		{"not semver", `{"version":"latest","tests":[]}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("inline", []byte(tt.input))
			require.Error(t, err)

			var inv *ErrInvalidBundle
			assert.Equal(t, tt.invalid, errors.As(err, &inv), "ErrInvalidBundle: %v", err)
			assert.Equal(t, tt.version, errors.Is(err, ErrUnsupportedVersion), "ErrUnsupportedVersion: %v", err)
		})
	}
}

func TestDecode_GeneratedIDSkipsExplicitOne(t *testing.T) {
	input := `{"tests":[
		{"title":"A","questions":[]},
		{"id":"builtin-1","title":"B","questions":[]},
		{"title":"C","questions":[]}
	]}`

	b, err := Decode("inline", []byte(input))
	require.NoError(t, err)
	require.Len(t, b.Tests, 3)

	assert.Equal(t, "builtin-1-2", b.Tests[0].ID)
	assert.Equal(t, "builtin-1", b.Tests[1].ID)
	assert.Equal(t, "builtin-3", b.Tests[2].ID)
}

func TestDecode_RejectsDuplicateExplicitIDs(t *testing.T) {
	input := `{"tests":[
		{"id":"x","title":"A","questions":[]},
		{"id":"x","title":"B","questions":[]}
	]}`

	_, err := Decode("inline", []byte(input))
	require.Error(t, err)

	var inv *ErrInvalidBundle
	assert.True(t, errors.As(err, &inv), "want ErrInvalidBundle, got %v", err)
	assert.Contains(t, err.Error(), `duplicate test id "x"`)
}

func TestDecode_AcceptsV1Minor(t *testing.T) {
	_, err := Decode("inline", []byte(`{"version":"v1.4.2","tests":[]}`))
	assert.NoError(t, err)
}

func TestFetch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(path, []byte(minimalBundle), 0o644))

	b, err := NewFetcher().Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, b.Tests, 2)
}

func TestFetch_MissingFile(t *testing.T) {
	_, err := NewFetcher().Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetch_Embedded(t *testing.T) {
	b, err := NewFetcher().Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, b.Tests)
}

func TestFetch_HTTP(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(minimalBundle))
		}))
		defer server.Close()

		f := NewFetcher(WithHTTPClient(server.Client()))
		b, err := f.Fetch(context.Background(), server.URL+"/data.json")
		require.NoError(t, err)
		assert.Len(t, b.Tests, 2)
	})

	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := NewFetcher(WithHTTPClient(server.Client())).Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 404")
	})
}
