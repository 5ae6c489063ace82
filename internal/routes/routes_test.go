package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ASS429/ma-tontine-backend/internal/handlers"
	"github.com/ASS429/ma-tontine-backend/internal/models"
	"github.com/ASS429/ma-tontine-backend/internal/services"
	"github.com/ASS429/ma-tontine-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	alertSvc := services.NewAlertService(nil, nil)
	otpSvc := services.NewOTPService(nil, nil)

	SetupRoutes(r,
		handlers.NewAuthHandler(nil, otpSvc, alertSvc),
		handlers.NewUserHandler(nil, alertSvc),
		handlers.NewTontineHandler(nil, alertSvc),
		handlers.NewMemberHandler(nil),
		handlers.NewContributionHandler(nil),
		handlers.NewDrawHandler(nil, alertSvc),
		handlers.NewPaymentHandler(nil),
		handlers.NewAccountHandler(nil),
		handlers.NewRevenueHandler(nil),
		handlers.NewAlertHandler(alertSvc),
		handlers.NewStatsHandler(nil),
		handlers.NewAdminHandler(nil, alertSvc),
	)
	return r
}

func TestHealthEndpoint(t *testing.T) {
	r := setupTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r := setupTestRouter()

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/admin/settings"},
		{http.MethodPut, "/api/v1/admin/settings"},
		{http.MethodGet, "/api/v1/admin/alerts"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(route.method, route.path, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestAdminRoutesRejectRegularUser(t *testing.T) {
	r := setupTestRouter()

	token, err := utils.GenerateJWT(uuid.New(), "owner@example.com", models.RoleUser)
	require.NoError(t, err)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/admin/settings"},
		{http.MethodPut, "/api/v1/admin/settings"},
		{http.MethodGet, "/api/v1/admin/alerts"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", route.method, route.path)
	}
}
