package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"simple-board/internal/config"
	"simple-board/internal/database"
	"simple-board/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Session.TTLMinutes = 30
	cfg.Upload.Dir = t.TempDir()
	cfg.Upload.MaxFileSize = 1024
	cfg.Upload.MaxFiles = 3
	cfg.Security.BcryptCost = 4

	return Setup(cfg, db, session.NewMemory(30*time.Minute))
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doMultipart posts the named files under the given field, each filled with
// the supplied bytes.
func doMultipart(t *testing.T, r *gin.Engine, path, field string, names []string, content []byte, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup",
		`{"id":"alice","username":"Alice","password":"secret1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/auth/login",
		`{"id":"alice","password":"secret1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestSignupLoginMe(t *testing.T) {
	r := newTestRouter(t)
	cookies := login(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			User struct {
				ID       string `json:"id"`
				Username string `json:"username"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Data.User.ID)
	assert.Equal(t, "Alice", resp.Data.User.Username)
}

func TestMutationsRequireCookie(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/posts",
		`{"title":"x","content":"y"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostCommentFlow(t *testing.T) {
	r := newTestRouter(t)
	cookies := login(t, r)

	// create post
	w := doJSON(t, r, http.MethodPost, "/api/posts",
		`{"title":"hello","content":"world"}`, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// public read increments views
	w = doJSON(t, r, http.MethodGet, "/api/posts/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Data struct {
			Post struct {
				Title string `json:"title"`
				Views int64  `json:"views"`
			} `json:"post"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "hello", detail.Data.Post.Title)
	assert.EqualValues(t, 1, detail.Data.Post.Views)

	// comment on it
	w = doJSON(t, r, http.MethodPost, "/api/comments",
		`{"content":"nice","post_id":1}`, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/comments/post/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "nice")

	// public listing shows the comment count
	w = doJSON(t, r, http.MethodGet, "/api/posts?page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"comment_count":1`)
}

func TestLogoutEndsSession(t *testing.T) {
	r := newTestRouter(t)
	cookies := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", "", cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadSingleFile(t *testing.T) {
	r := newTestRouter(t)
	cookies := login(t, r)

	w := doMultipart(t, r, "/api/upload", "file",
		[]string{"avatar.png"}, []byte("png-bytes"), cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			URL      string `json:"url"`
			Filename string `json:"filename"`
			Size     int64  `json:"size"`
			Type     string `json:"type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Data.URL, "/uploads/"), resp.Data.URL)
	assert.True(t, strings.HasSuffix(resp.Data.URL, ".png"), resp.Data.URL)
	// stored name is randomized, original name comes back as-is
	assert.NotContains(t, resp.Data.URL, "avatar")
	assert.Equal(t, "avatar.png", resp.Data.Filename)
	assert.EqualValues(t, len("png-bytes"), resp.Data.Size)
	assert.Equal(t, "image", resp.Data.Type)
}

func TestUploadRequiresCookie(t *testing.T) {
	r := newTestRouter(t)

	w := doMultipart(t, r, "/api/upload", "file",
		[]string{"avatar.png"}, []byte("png-bytes"), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadRejectsOversizeFile(t *testing.T) {
	r := newTestRouter(t)
	cookies := login(t, r)

	// limit in newTestRouter is 1024 bytes
	big := bytes.Repeat([]byte("a"), 2048)
	w := doMultipart(t, r, "/api/upload", "file",
		[]string{"big.bin"}, big, cookies)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
}

func TestUploadMultipleFiles(t *testing.T) {
	r := newTestRouter(t)
	cookies := login(t, r)

	w := doMultipart(t, r, "/api/upload/multiple", "files",
		[]string{"a.png", "b.mp3"}, []byte("data"), cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "a.png")
	assert.Contains(t, w.Body.String(), "b.mp3")
	assert.Contains(t, w.Body.String(), `"type":"image"`)
	assert.Contains(t, w.Body.String(), `"type":"audio"`)

	// limit in newTestRouter is 3 files
	w = doMultipart(t, r, "/api/upload/multiple", "files",
		[]string{"1.txt", "2.txt", "3.txt", "4.txt"}, []byte("data"), cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
