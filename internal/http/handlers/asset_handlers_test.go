package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/assetsvc/domain"
	"github.com/you/assetsvc/internal/http/middleware"
	"github.com/you/assetsvc/internal/mocks"
)

type assetFixture struct {
	assetSvc  *mocks.MockAssetService
	mediaHost *mocks.MockMediaHost
	storage   *mocks.MockLocalStorage
	audit     *mocks.MockAuditLogger
	handlers  *AssetHandlers
}

func newAssetFixture(maxUploadBytes int64) *assetFixture {
	f := &assetFixture{
		assetSvc:  mocks.NewMockAssetService(),
		mediaHost: mocks.NewMockMediaHost(),
		storage:   mocks.NewMockLocalStorage(),
		audit:     mocks.NewMockAuditLogger(),
	}
	f.handlers = NewAssetHandlers(f.assetSvc, f.mediaHost, f.storage, f.audit, maxUploadBytes)
	return f
}

func serve(handler gin.HandlerFunc, req *http.Request, userID uint) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if userID != 0 {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUserRole, "user")
	}
	handler(c)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("title", "no file here"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/assets/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAssetHandlers_Create(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		userID          uint
		serviceErr      error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "created",
			body:            `{"title":"Holiday","description":"beach","fileUrl":"/uploads/a.png"}`,
			userID:          3,
			expectedStatus:  http.StatusCreated,
			expectedMessage: "Asset created successfully",
		},
		{
			name:            "missing title",
			body:            `{"fileUrl":"/uploads/a.png"}`,
			userID:          3,
			serviceErr:      domain.ErrTitleRequired,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Title is required",
		},
		{
			name:            "missing file",
			body:            `{"title":"Holiday"}`,
			userID:          3,
			serviceErr:      domain.ErrFileRequired,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Please upload a file",
		},
		{
			name:            "persistence failure",
			body:            `{"title":"Holiday","fileUrl":"/uploads/a.png"}`,
			userID:          3,
			serviceErr:      errors.New("db down"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Failed to create asset",
		},
		{
			name:            "unauthenticated",
			body:            `{"title":"Holiday","fileUrl":"/uploads/a.png"}`,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "User ID not found in context",
		},
		{
			name:            "malformed body",
			body:            `{"title":`,
			userID:          3,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAssetFixture(1 << 20)
			var gotOwner uint
			f.assetSvc.CreateFunc = func(ctx context.Context, ownerID uint, title, description, sourceRef string) (*domain.Asset, error) {
				gotOwner = ownerID
				if tt.serviceErr != nil {
					return nil, tt.serviceErr
				}
				return &domain.Asset{
					ID:        "a1",
					OwnerID:   ownerID,
					Title:     title,
					FileURL:   sourceRef,
					Category:  domain.CategoryImage,
					MediaType: "image/png",
					CreatedAt: time.Now(),
				}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/assets", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := serve(f.handlers.Create, req, tt.userID)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.expectedMessage, body["message"])

			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, uint(3), gotOwner)
				data := body["data"].(map[string]interface{})
				assert.Equal(t, "image", data["fileType"])
				assert.Equal(t, float64(3), data["user"])
			}
		})
	}
}

func TestAssetHandlers_CreateIgnoresClientSuppliedOwner(t *testing.T) {
	f := newAssetFixture(1 << 20)
	var gotOwner uint
	f.assetSvc.CreateFunc = func(ctx context.Context, ownerID uint, title, description, sourceRef string) (*domain.Asset, error) {
		gotOwner = ownerID
		return &domain.Asset{ID: "a1", OwnerID: ownerID}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/assets", bytes.NewBufferString(`{"title":"t","fileUrl":"/uploads/a.png","user":99}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(f.handlers.Create, req, 3)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(3), gotOwner)
}

func TestAssetHandlers_ListMine(t *testing.T) {
	t.Run("returns owned assets", func(t *testing.T) {
		f := newAssetFixture(1 << 20)
		f.assetSvc.ListOwnedFunc = func(ctx context.Context, ownerID uint) ([]domain.Asset, error) {
			return []domain.Asset{{ID: "b", OwnerID: ownerID}, {ID: "a", OwnerID: ownerID}}, nil
		}

		w := serve(f.handlers.ListMine, httptest.NewRequest(http.MethodGet, "/assets/my", nil), 5)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].([]interface{})
		require.Len(t, data, 2)
		assert.Equal(t, "b", data[0].(map[string]interface{})["_id"])
	})

	t.Run("empty list is an array", func(t *testing.T) {
		f := newAssetFixture(1 << 20)

		w := serve(f.handlers.ListMine, httptest.NewRequest(http.MethodGet, "/assets/my", nil), 5)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newAssetFixture(1 << 20)
		f.assetSvc.ListOwnedFunc = func(ctx context.Context, ownerID uint) ([]domain.Asset, error) {
			return nil, errors.New("db down")
		}

		w := serve(f.handlers.ListMine, httptest.NewRequest(http.MethodGet, "/assets/my", nil), 5)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAssetHandlers_Signature(t *testing.T) {
	t.Run("media host disabled", func(t *testing.T) {
		f := newAssetFixture(1 << 20)

		w := serve(f.handlers.Signature, httptest.NewRequest(http.MethodPost, "/assets/signature", nil), 5)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "Cloud uploads are not configured", decode(t, w)["message"])
	})

	t.Run("issues credential", func(t *testing.T) {
		f := newAssetFixture(1 << 20)
		var gotName string
		f.mediaHost.SignUploadFunc = func(ctx context.Context, filename string) (*domain.UploadCredential, error) {
			gotName = filename
			return &domain.UploadCredential{
				UploadURL: "https://bucket.example.com/uploads/k.png?sig=1",
				Method:    http.MethodPut,
				Key:       "uploads/k.png",
				FileURL:   "https://media.example.com/uploads/k.png",
				Timestamp: 1700000000,
			}, nil
		}

		req := httptest.NewRequest(http.MethodPost, "/assets/signature", bytes.NewBufferString(`{"filename":"photo.png"}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(f.handlers.Signature, req, 5)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "photo.png", gotName)
		data := decode(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "uploads/k.png", data["key"])
		assert.Equal(t, "PUT", data["method"])
		assert.Equal(t, float64(1700000000), data["timestamp"])
	})

	t.Run("signing failure", func(t *testing.T) {
		f := newAssetFixture(1 << 20)
		f.mediaHost.SignUploadFunc = func(ctx context.Context, filename string) (*domain.UploadCredential, error) {
			return nil, errors.New("no credentials")
		}

		w := serve(f.handlers.Signature, httptest.NewRequest(http.MethodPost, "/assets/signature", nil), 5)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAssetHandlers_Upload(t *testing.T) {
	t.Run("stores file and audits", func(t *testing.T) {
		f := newAssetFixture(1 << 20)
		var received []byte
		f.storage.SaveFunc = func(ctx context.Context, originalName string, r io.Reader) (*domain.StoredFile, error) {
			received, _ = io.ReadAll(r)
			return &domain.StoredFile{FileURL: "/uploads/abc.png", Filename: "abc.png", OriginalName: originalName}, nil
		}

		w := serve(f.handlers.Upload, multipartRequest(t, "file", "photo.png", []byte("pngbytes")), 7)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "File uploaded successfully", body["message"])
		assert.Equal(t, "/uploads/abc.png", body["fileUrl"])
		assert.Equal(t, "abc.png", body["filename"])
		assert.Equal(t, "photo.png", body["originalName"])
		assert.Equal(t, []byte("pngbytes"), received)

		events := f.audit.Events(domain.AssetUploadedEvent)
		require.Len(t, events, 1)
		assert.Equal(t, uint(7), events[0].UserID)
	})

	t.Run("no file field", func(t *testing.T) {
		f := newAssetFixture(1 << 20)

		w := serve(f.handlers.Upload, multipartRequest(t, "", "", nil), 7)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No file uploaded", decode(t, w)["message"])
	})

	t.Run("blocked type", func(t *testing.T) {
		f := newAssetFixture(1 << 20)
		f.storage.SaveFunc = func(ctx context.Context, originalName string, r io.Reader) (*domain.StoredFile, error) {
			return nil, domain.ErrBlockedFileType
		}

		w := serve(f.handlers.Upload, multipartRequest(t, "file", "run.exe", []byte("MZ")), 7)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Executable files are not allowed", decode(t, w)["message"])
		assert.Empty(t, f.audit.Events(domain.AssetUploadedEvent))
	})

	t.Run("file over limit", func(t *testing.T) {
		f := newAssetFixture(1 << 20)
		f.storage.SaveFunc = func(ctx context.Context, originalName string, r io.Reader) (*domain.StoredFile, error) {
			return nil, domain.ErrFileTooLarge
		}

		w := serve(f.handlers.Upload, multipartRequest(t, "file", "big.bin", []byte("x")), 7)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "File too large", decode(t, w)["message"])
	})

	t.Run("request body over limit", func(t *testing.T) {
		f := newAssetFixture(1)

		w := serve(f.handlers.Upload, multipartRequest(t, "file", "big.bin", bytes.Repeat([]byte("x"), 2<<20)), 7)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		f := newAssetFixture(1 << 20)

		w := serve(f.handlers.Upload, multipartRequest(t, "file", "photo.png", []byte("x")), 0)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
