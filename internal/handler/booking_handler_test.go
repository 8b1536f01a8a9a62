package handler

import (
	"concert-booking/internal/model"
	"concert-booking/internal/service/mocks"
	apperrors "concert-booking/pkg/app_errors"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2025, 9, 20, 19, 30, 0, 0, time.UTC)

func setupBookingTestRouter(mockService *mocks.BookingServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	bookingHandler := NewBookingHandler(mockService, RequireSession(newLoggedInSessionStore(), testCookie))
	bookingHandler.RegisterRoutes(router)

	return router
}

func testBooking() *model.Booking {
	return &model.Booking{
		ID:        42,
		UserID:    testUserID,
		ConcertID: 1,
		Date:      testDate,
		Seats: []*model.Seat{
			{ID: 1, Label: "A01", Date: testDate, IsBooked: true, Price: decimal.RequireFromString("80")},
			{ID: 2, Label: "A02", Date: testDate, IsBooked: true, Price: decimal.RequireFromString("80")},
		},
		TotalPrice: decimal.RequireFromString("160"),
	}
}

func TestCreateBooking(t *testing.T) {
	createBookingRequest := model.CreateBookingRequest{
		ConcertID:  1,
		Date:       testDate,
		SeatLabels: []string{"A01", "A02"},
	}

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("MakeBooking", mock.Anything, testUserID, mock.MatchedBy(func(req model.CreateBookingRequest) bool {
			return req.ConcertID == 1 && req.Date.Equal(testDate) && len(req.SeatLabels) == 2
		})).Return(testBooking(), nil).Once()

		// request
		req := createJSONHTTPRequest("POST", "/api/v1/bookings", createBookingRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		// assert
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/v1/bookings/42", w.Header().Get("Location"))
		assert.JSONEq(t, `{"booking_id": 42}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - InvalidJSON", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/bookings", InvalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "MakeBooking", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - EmptySeatLabels", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/bookings", model.CreateBookingRequest{
			ConcertID:  1,
			Date:       testDate,
			SeatLabels: []string{},
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "MakeBooking", mock.Anything, mock.Anything, mock.Anything)
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"Failed - ErrInvalidRequest", apperrors.ErrInvalidRequest, http.StatusBadRequest},
		{"Failed - ErrSeatsUnavailable", apperrors.ErrSeatsUnavailable, http.StatusForbidden},
		{"Failed - ErrConflict", fmt.Errorf("%w: gave up after 5 attempts", apperrors.ErrConflict), http.StatusConflict},
		{"Failed - Unexpected", fmt.Errorf("read seats: connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := mocks.NewBookingServiceMock()
			router := setupBookingTestRouter(mockService)

			mockService.On("MakeBooking", mock.Anything, testUserID, mock.Anything).Return(nil, tt.err).Once()

			req := createJSONHTTPRequest("POST", "/api/v1/bookings", createBookingRequest)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusConflict {
				assert.Equal(t, "1", w.Header().Get("Retry-After"))
			}
			mockService.AssertExpectations(t)
		})
	}

	t.Run("Failed - Unauthorized", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		req, _ := http.NewRequest("POST", "/api/v1/bookings", createJSONRequest(createBookingRequest))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "MakeBooking", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetBooking(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("GetBooking", mock.Anything, testUserID, int64(42)).Return(testBooking(), nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/bookings/42", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp model.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, []string{"A01", "A02"}, resp.Seats)
		assert.Equal(t, "160.00", resp.TotalPrice)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - InvalidID", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		req := createJSONHTTPRequest("GET", "/api/v1/bookings/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - ErrBookingNotFound", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("GetBooking", mock.Anything, testUserID, int64(9)).Return(nil, apperrors.ErrBookingNotFound).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/bookings/9", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrBookingForbidden", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		router := setupBookingTestRouter(mockService)

		mockService.On("GetBooking", mock.Anything, testUserID, int64(42)).Return(nil, apperrors.ErrBookingForbidden).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/bookings/42", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestGetBookings(t *testing.T) {
	mockService := mocks.NewBookingServiceMock()
	router := setupBookingTestRouter(mockService)

	mockService.On("ListBookings", mock.Anything, testUserID).Return([]*model.Booking{testBooking()}, nil).Once()

	req := createJSONHTTPRequest("GET", "/api/v1/bookings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []model.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	mockService.AssertExpectations(t)
}
