package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apicontext "github.com/horseradish/horseradish-server/internal/api/context"
	"github.com/horseradish/horseradish-server/internal/auth"
	"github.com/horseradish/horseradish-server/internal/model"
)

var (
	adminUser = model.User{
		ID:       1,
		Username: "horseradish",
		Email:    "horseradish@nobody",
		Active:   true,
		Roles:    []model.Role{{ID: 10, Name: model.RoleAdmin}},
	}
	plainUser = model.User{
		ID:       2,
		Username: "alice",
		Email:    "alice@example.com",
		Active:   true,
		Roles:    []model.Role{{ID: 11, Name: model.RoleReadOnly}, {ID: 12, Name: "dbadmins"}},
	}
)

func principalOf(u model.User) model.Principal {
	return model.Principal{User: u, Identity: auth.ResolveIdentity(u)}
}

// serve runs h through a mux so path values resolve. A zero principal
// leaves the request unauthenticated.
func serve(t *testing.T, pattern string, h http.HandlerFunc, method, target string, body any, p model.Principal) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	if p.User.ID != 0 {
		req = req.WithContext(apicontext.NewManager().SetPrincipalToContext(req.Context(), p))
	}

	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m messageResponse
	decodeBody(t, rec, &m)
	return m.Message
}

func stringsReader(s string) *bytes.Reader {
	return bytes.NewReader([]byte(s))
}
