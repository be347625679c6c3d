package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"todoapp/internal/models"
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/secure", h.authMiddleware, func(c *gin.Context) {
		u, _ := currentUserFrom(c)
		tok, _ := currentTokenFrom(c)
		c.JSON(http.StatusOK, gin.H{"userId": u.ID, "token": tok})
	})
	return r
}

func TestAuthMiddleware_Errors(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{
			name:    "missing header",
			header:  "",
			wantMsg: "missing auth token",
		},
		{
			name:    "invalid or revoked token",
			header:  "revoked",
			wantMsg: "invalid auth token",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{}
			if tc.header != "" {
				auth.validateErr = service.ErrInvalidToken
			}
			s := &service.Service{Authorization: auth}
			r := newMiddlewareOnlyRouter(s)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("x-auth", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401 (body=%s)", w.Code, w.Body.String())
			}
			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.wantMsg {
				t.Fatalf("error message: got %q, want %q", out.Error, tc.wantMsg)
			}
		})
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	auth := &mockAuth{validateUser: &models.User{ID: 9, Email: "a@b.com"}}
	s := &service.Service{Authorization: auth}
	r := newMiddlewareOnlyRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("x-auth", "tok-ok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d (body=%s)", w.Code, w.Body.String())
	}
	var out struct {
		UserID int64  `json:"userId"`
		Token  string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.UserID != 9 || out.Token != "tok-ok" {
		t.Fatalf("context not populated: %+v", out)
	}
	if auth.lastValidateToken != "tok-ok" {
		t.Fatalf("raw token not forwarded: %q", auth.lastValidateToken)
	}
}
