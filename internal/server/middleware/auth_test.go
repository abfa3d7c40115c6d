package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authsvc/internal/authctx"
)

func newGateRouter(validator func(string) (authctx.Identity, error)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(AuthConfig{
		Validator:      validator,
		PublicPrefixes: []string{"/auth/login", "/auth/register"},
	}))

	handler := func(c *gin.Context) {
		identity, ok := authctx.Get[authctx.Identity](c.Request.Context())
		if !ok {
			c.JSON(http.StatusOK, gin.H{"email": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": identity.Email})
	}
	r.GET("/profile", handler)
	r.POST("/auth/login", handler)
	r.POST("/auth/register", handler)
	r.OPTIONS("/profile", handler)
	return r
}

func allowAll(token string) (authctx.Identity, error) {
	return authctx.Identity{Email: "u@x.com"}, nil
}

func denyAll(token string) (authctx.Identity, error) {
	return authctx.Identity{}, errors.New("invalid")
}

func TestAuthMissingHeader(t *testing.T) {
	r := newGateRouter(allowAll)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/profile", http.NoBody))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestAuthWrongScheme(t *testing.T) {
	r := newGateRouter(allowAll)

	req := httptest.NewRequest("GET", "/profile", http.NoBody)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	r := newGateRouter(denyAll)

	req := httptest.NewRequest("GET", "/profile", http.NoBody)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}

	var body struct {
		Message      string  `json:"message"`
		Data         any     `json:"data"`
		ErrorCode    *string `json:"error_code"`
		ErrorMessage *string `json:"error_message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Message != "Invalid token" {
		t.Errorf("expected uniform rejection message, got %q", body.Message)
	}
	if body.Data != nil {
		t.Error("expected null data on rejection")
	}
	if body.ErrorCode == nil || *body.ErrorCode != "INVALID_TOKEN" {
		t.Errorf("unexpected error_code: %v", body.ErrorCode)
	}
}

func TestAuthRejectionsIndistinguishable(t *testing.T) {
	r := newGateRouter(denyAll)

	missing := httptest.NewRecorder()
	r.ServeHTTP(missing, httptest.NewRequest("GET", "/profile", http.NoBody))

	badToken := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/profile", http.NoBody)
	req.Header.Set("Authorization", "Bearer nope")
	r.ServeHTTP(badToken, req)

	if missing.Code != badToken.Code {
		t.Errorf("status differs: %d vs %d", missing.Code, badToken.Code)
	}
	if missing.Body.String() != badToken.Body.String() {
		t.Errorf("rejection bodies differ: %q vs %q", missing.Body.String(), badToken.Body.String())
	}
}

func TestAuthValidTokenAttachesIdentity(t *testing.T) {
	var seen string
	r := newGateRouter(func(token string) (authctx.Identity, error) {
		seen = token
		return authctx.Identity{Email: "u@x.com"}, nil
	})

	req := httptest.NewRequest("GET", "/profile", http.NoBody)
	req.Header.Set("Authorization", "Bearer tok-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if seen != "tok-123" {
		t.Errorf("validator saw token %q", seen)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["email"] != "u@x.com" {
		t.Errorf("expected identity email in handler, got %q", body["email"])
	}
}

func TestAuthSchemeCaseInsensitive(t *testing.T) {
	r := newGateRouter(allowAll)

	for _, scheme := range []string{"bearer", "Bearer", "BEARER", "BeArEr"} {
		req := httptest.NewRequest("GET", "/profile", http.NoBody)
		req.Header.Set("Authorization", scheme+" tok")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("scheme %q: expected 200, got %d", scheme, rr.Code)
		}
	}
}

func TestAuthPublicPrefixBypass(t *testing.T) {
	r := newGateRouter(denyAll)

	for _, path := range []string{"/auth/login", "/auth/register"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("POST", path, http.NoBody))

		if rr.Code != http.StatusOK {
			t.Errorf("path %s: expected bypass 200, got %d", path, rr.Code)
		}
	}
}

func TestAuthPreflightBypass(t *testing.T) {
	r := newGateRouter(denyAll)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("OPTIONS", "/profile", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Errorf("expected OPTIONS bypass 200, got %d", rr.Code)
	}
}
