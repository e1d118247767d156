package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("requested resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("api token expired")
)

// APIError 后端返回的非 2xx 响应
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("arena api responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("arena api responded %d: %s", e.StatusCode, e.Message)
}

// Unwrap 让调用方可以直接 errors.Is(err, ErrNotFound) 等
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrAccessDenied
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// errorBody 后端错误响应体, 兼容 {"error": "..."} 与 {"message": "..."}
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b *errorBody) text() string {
	if b == nil {
		return ""
	}
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}
