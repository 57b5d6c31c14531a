package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/horseradish/horseradish-server/internal/auth"
	"github.com/horseradish/horseradish-server/internal/mocks"
	"github.com/horseradish/horseradish-server/internal/testutil"
)

type ctxKey struct{}

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		header         string
		gateErr        error
		wantStatus     int
		wantBody       string
		wantRetryAfter bool
	}{
		{
			name:       "missing header",
			gateErr:    &auth.Rejection{Reason: auth.ReasonMissingAuthorization},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Missing authorization header"}`,
		},
		{
			name:       "revoked",
			header:     "Bearer abc",
			gateErr:    &auth.Rejection{Reason: auth.ReasonTokenRevoked},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"message":"Token has been revoked"}`,
		},
		{
			name:           "store unavailable",
			header:         "Bearer abc",
			gateErr:        &auth.Rejection{Reason: auth.ReasonStoreUnavailable},
			wantStatus:     http.StatusForbidden,
			wantRetryAfter: true,
		},
		{
			name:       "unexpected error",
			header:     "Bearer abc",
			gateErr:    errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "authenticated",
			header:     "Bearer abc",
			wantStatus: http.StatusOK,
			wantBody:   "principal",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gate := mocks.NewAuthenticator(t)
			if tt.gateErr != nil {
				gate.On("Authenticate", mock.Anything, tt.header).Return(nil, tt.gateErr)
			} else {
				gate.On("Authenticate", mock.Anything, tt.header).Return(
					func(ctx context.Context, _ string) (context.Context, error) {
						return context.WithValue(ctx, ctxKey{}, "principal"), nil
					})
			}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(r.Context().Value(ctxKey{}).(string)))
			})
			h := NewAuthenticate(gate, testutil.MakeNoopLogger()).Handle(next)

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				if tt.wantStatus == http.StatusOK {
					assert.Equal(t, tt.wantBody, rec.Body.String())
				} else {
					assert.JSONEq(t, tt.wantBody, rec.Body.String())
				}
			}
			assert.Equal(t, tt.wantRetryAfter, rec.Header().Get("Retry-After") != "")
		})
	}
}
