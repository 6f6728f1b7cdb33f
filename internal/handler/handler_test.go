package handler

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashankb2004/edublog/internal/domain"
	"github.com/shashankb2004/edublog/internal/middleware"
)

func createRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	return req
}

func createAuthedRequest(t *testing.T, method, target string, body []byte, uid domain.UserId) *http.Request {
	t.Helper()
	return middleware.WithUserId(createRequest(t, method, target, body), uid)
}
