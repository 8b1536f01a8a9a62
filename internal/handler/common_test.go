package handler

import (
	"bytes"
	"concert-booking/internal/cache/mocks"
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/mock"
)

var (
	InvalidJSON = `{"invalid": json}`
)

const (
	testCookie = "auth"
	testToken  = "token-1"
	testUserID = int64(7)
)

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	if s, ok := data.(string); ok {
		return bytes.NewBufferString(s)
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body and session cookie
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: testCookie, Value: testToken})
	return req
}

// session store 對固定 token 回傳測試使用者
func newLoggedInSessionStore() *mocks.SessionStoreMock {
	store := mocks.NewSessionStoreMock()
	store.On("Lookup", mock.Anything, testToken).Return(testUserID, nil).Maybe()
	return store
}
