package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"knoxtech-api/internal/auth"
	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository/sqlite"
	"knoxtech-api/internal/service"
)

const (
	testSecret    = "test-signing-secret"
	adminEmail    = "ops@knoxtech.net"
	adminPassword = "adminpass123"
	staffEmail    = "staff@knoxtech.net"
	staffPassword = "staffpass123"
)

type testServer struct {
	router *gin.Engine
	tokens *auth.Tokens
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	catalogRepo := sqlite.NewCatalogRepository(db)
	billingRepo := sqlite.NewBillingRepository(db)
	siteRepo := sqlite.NewSiteRepository(db)
	for _, init := range []func(context.Context) error{
		userRepo.Init, postRepo.Init, catalogRepo.Init, billingRepo.Init, siteRepo.Init,
	} {
		require.NoError(t, init(ctx))
	}

	users := service.NewUserService(userRepo)
	_, err = users.Provision(ctx, adminEmail, adminPassword, domain.RoleAdmin)
	require.NoError(t, err)
	_, err = users.Provision(ctx, staffEmail, staffPassword, domain.RoleUser)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tokens := auth.NewTokens([]byte(testSecret), time.Hour)
	handler := NewHandler(
		users,
		service.NewContentService(postRepo),
		service.NewCatalogService(catalogRepo),
		service.NewBillingService(billingRepo),
		service.NewSiteService(siteRepo),
		tokens,
		nil,
		"",
		logger,
	)

	router := gin.New()
	handler.RegisterRoutes(router)
	return &testServer{router: router, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, email, resp.User.Email)
	return resp.Token
}

func TestLoginAndVerifyFlow(t *testing.T) {
	srv := newTestServer(t)

	token := srv.login(t, adminEmail, adminPassword)

	rec := srv.do(t, http.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), adminEmail)

	// Same token verifies identically a second time.
	rec = srv.do(t, http.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// One tampered byte in the signature rejects the token.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[len(sig)-1] == 'A' {
		sig[len(sig)-1] = 'B'
	} else {
		sig[len(sig)-1] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)
	rec = srv.do(t, http.MethodGet, "/api/auth/verify", tampered, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail, "password": "wrong-password"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "message")

	rec = srv.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@x.com", "password": "whatever1"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRouteStatusCodes(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.login(t, adminEmail, adminPassword)
	staffToken := srv.login(t, staffEmail, staffPassword)

	// No token: 401.
	rec := srv.do(t, http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Any verified account may read settings.
	rec = srv.do(t, http.MethodGet, "/api/settings", staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Admin-only route: verified non-admin gets 403, not 401.
	post := gin.H{"title": "Outage postmortem", "body": "..."}
	rec = srv.do(t, http.MethodPost, "/api/posts", staffToken, post)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/posts", "", post)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/posts", adminToken, post)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	srv := newTestServer(t)

	expired, err := auth.NewTokens([]byte(testSecret), -time.Minute).
		Issue(auth.Identity{UserID: 1, Email: adminEmail, Role: domain.RoleAdmin})
	require.NoError(t, err)

	rec := srv.do(t, http.MethodGet, "/api/auth/verify", expired, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPublicPostsExcludeDrafts(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.login(t, adminEmail, adminPassword)

	rec := srv.do(t, http.MethodPost, "/api/posts", adminToken, gin.H{"title": "Published post", "published": true})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = srv.do(t, http.MethodPost, "/api/posts", adminToken, gin.H{"title": "Draft post"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var public []PostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &public))
	require.Len(t, public, 1)
	require.Equal(t, "published-post", public[0].Slug)

	// Draft slug is invisible on the public route.
	rec = srv.do(t, http.MethodGet, "/api/posts/draft-post", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// But the back office sees both.
	rec = srv.do(t, http.MethodGet, "/api/admin/posts", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []PostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 2)
}

func TestInvoiceLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	staffToken := srv.login(t, staffEmail, staffPassword)

	rec := srv.do(t, http.MethodPost, "/api/invoices", staffToken, gin.H{
		"customer_name": "Maple Street HOA",
		"amount_cents":  129900,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created InvoiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.True(t, strings.HasPrefix(created.Number, "INV-"))
	require.Equal(t, "draft", created.Status)

	rec = srv.do(t, http.MethodPut, "/api/invoices/1", staffToken, gin.H{
		"customer_name": "Maple Street HOA",
		"amount_cents":  129900,
		"status":        "paid",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/invoices/1", staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got InvoiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "paid", got.Status)
	require.Equal(t, created.Number, got.Number)

	rec = srv.do(t, http.MethodDelete, "/api/invoices/1", staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = srv.do(t, http.MethodGet, "/api/invoices/1", staffToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContactFormFlow(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.login(t, adminEmail, adminPassword)
	staffToken := srv.login(t, staffEmail, staffPassword)

	// Public submission needs no token.
	rec := srv.do(t, http.MethodPost, "/api/contact", "", gin.H{
		"name":  "Pat",
		"email": "pat@example.com",
		"body":  "Is fiber available on Cedar Lane?",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// The inbox is admin-only.
	rec = srv.do(t, http.MethodGet, "/api/contact", staffToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/contact", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msgs []ContactMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	require.Len(t, msgs, 1)
	require.Equal(t, "Pat", msgs[0].Name)
}

func TestCatalogAdminGates(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.login(t, adminEmail, adminPassword)

	rec := srv.do(t, http.MethodPost, "/api/plans", adminToken, gin.H{
		"name":        "Gig Fiber",
		"speed_mbps":  1000,
		"price_cents": 7999,
		"featured":    true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Plan listing is public.
	rec = srv.do(t, http.MethodGet, "/api/plans", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var plans []PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plans))
	require.Len(t, plans, 1)
	require.Equal(t, "Gig Fiber", plans[0].Name)

	// Mutations without a token are rejected.
	rec = srv.do(t, http.MethodDelete, "/api/plans/1", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/plans/1", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = srv.do(t, http.MethodDelete, "/api/plans/1", adminToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	staffToken := srv.login(t, staffEmail, staffPassword)

	rec := srv.do(t, http.MethodPut, "/api/settings", staffToken, gin.H{
		"site_name":     "Knoxville Technologies",
		"support_email": "help@knoxtech.net",
		"outage_banner": "Maintenance Sunday 2am",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/settings", staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var settings SettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	require.Equal(t, "help@knoxtech.net", settings.SupportEmail)
	require.Equal(t, "Maintenance Sunday 2am", settings.OutageBanner)
}
