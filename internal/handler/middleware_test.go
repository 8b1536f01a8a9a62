package handler

import (
	"concert-booking/internal/cache/mocks"
	apperrors "concert-booking/pkg/app_errors"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupMiddlewareTestRouter(store *mocks.SessionStoreMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", RequireSession(store, testCookie), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": currentUser(c)})
	})
	return router
}

func TestRequireSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := newLoggedInSessionStore()
		router := setupMiddlewareTestRouter(store)

		req := createJSONHTTPRequest("GET", "/whoami", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id": 7}`, w.Body.String())
	})

	t.Run("Failed - NoCookie", func(t *testing.T) {
		store := mocks.NewSessionStoreMock()
		router := setupMiddlewareTestRouter(store)

		req, _ := http.NewRequest("GET", "/whoami", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		store.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})

	t.Run("Failed - UnknownSession", func(t *testing.T) {
		store := mocks.NewSessionStoreMock()
		store.On("Lookup", mock.Anything, testToken).Return(int64(0), apperrors.ErrUnauthorized).Once()
		router := setupMiddlewareTestRouter(store)

		req := createJSONHTTPRequest("GET", "/whoami", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		store.AssertExpectations(t)
	})

	t.Run("Failed - StoreDown", func(t *testing.T) {
		store := mocks.NewSessionStoreMock()
		store.On("Lookup", mock.Anything, testToken).Return(int64(0), errors.New("dial tcp: refused")).Once()
		router := setupMiddlewareTestRouter(store)

		req := createJSONHTTPRequest("GET", "/whoami", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
