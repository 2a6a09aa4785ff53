package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	apppartner "github.com/scart/backend/internal/application/partner"
	"github.com/scart/backend/internal/domain/identity"
	"github.com/scart/backend/internal/infrastructure/notification"
	"github.com/scart/backend/internal/infrastructure/persistence"
	"github.com/scart/backend/internal/infrastructure/persistence/models"
	"github.com/scart/backend/internal/interfaces/http/dto"
	"github.com/scart/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type customerTestEnv struct {
	db     *gorm.DB
	engine *gin.Engine
}

// fakeAuth simulates JWTAuth by planting the given identity in the context
func fakeAuth(userID uint, role identity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID)
		c.Set(middleware.JWTRoleKey, string(role))
		c.Next()
	}
}

func newCustomerTestEnv(t *testing.T, userID uint, role identity.UserRole) *customerTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.CustomerModel{},
		&models.ApprovalLogModel{},
		&models.CustomerCreditModel{},
		&models.QuotationModel{},
		&models.QuotationDetailModel{},
	)
	require.NoError(t, err)

	customerRepo := persistence.NewGormCustomerRepository(db)
	creditRepo := persistence.NewGormCustomerCreditRepository(db)
	quotationRepo := persistence.NewGormQuotationRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	logRepo := persistence.NewGormApprovalLogRepository(db)

	customers := apppartner.NewCustomerService(db, customerRepo, creditRepo, quotationRepo)
	approvals := apppartner.NewCustomerApprovalService(
		db, customerRepo, userRepo, logRepo,
		notification.NewLogNotifier(zap.NewNop()), zap.NewNop(),
	)
	h := NewCustomerHandler(customers, approvals)

	engine := gin.New()
	group := engine.Group("/api/v1")
	group.Use(fakeAuth(userID, role))
	group.POST("/customers", h.Create)
	group.GET("/customers", h.List)
	group.GET("/customers/:id", h.Get)
	group.PUT("/customers/:id", h.Update)
	group.DELETE("/customers/:id", middleware.RequireAdmin(), h.Delete)
	group.POST("/customers/:id/approve", middleware.RequireAdmin(), h.Approve)
	group.POST("/customers/:id/reject", middleware.RequireAdmin(), h.Reject)
	group.GET("/customers/:id/approval-history", middleware.RequireAdmin(), h.ApprovalHistory)

	return &customerTestEnv{db: db, engine: engine}
}

func (env *customerTestEnv) seedUser(t *testing.T, loginID string, role identity.UserRole, active bool) uint {
	t.Helper()
	user := &models.UserModel{
		LoginID:      loginID,
		DisplayName:  loginID,
		PasswordHash: "x",
		Role:         role,
		IsActive:     active,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user.ID
}

func (env *customerTestEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "response data is not an object: %s", w.Body.String())
	return data
}

func TestCustomerHandler_CreateAndGet(t *testing.T) {
	env := newCustomerTestEnv(t, 1, identity.RoleAdmin)
	env.seedUser(t, "admin", identity.RoleAdmin, true)

	w := env.do(t, http.MethodPost, "/api/v1/customers", apppartner.CreateCustomerRequest{
		Name:    "Acme Industries",
		Address: "Osaka",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decodeData(t, w)
	assert.Equal(t, "pending", data["status"])
	assert.EqualValues(t, 1, data["requested_by_user_id"])

	id := uint(data["id"].(float64))
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/customers/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Industries", decodeData(t, w)["name"])
}

func TestCustomerHandler_CreateValidation(t *testing.T) {
	env := newCustomerTestEnv(t, 1, identity.RoleAdmin)

	w := env.do(t, http.MethodPost, "/api/v1/customers", map[string]string{"address": "Osaka"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandler_ApproveFlow(t *testing.T) {
	env := newCustomerTestEnv(t, 2, identity.RoleAdmin)
	requesterID := env.seedUser(t, "requester", identity.RoleUser, false)
	env.seedUser(t, "admin", identity.RoleAdmin, true)

	w := env.do(t, http.MethodPost, "/api/v1/customers", apppartner.CreateCustomerRequest{Name: "Pending KK"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeData(t, w)["id"].(float64))

	// The seeded requester (id 1) filed the request; the handler records the
	// caller, so patch the row to point at the inactive requester account.
	require.NoError(t, env.db.Model(&models.CustomerModel{}).
		Where("id = ?", id).
		Update("requested_by_user_id", requesterID).Error)

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/customers/%d/approve", id), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "approved", data["status"])
	assert.EqualValues(t, 2, data["approved_by_user_id"])

	// Second decision on the same customer conflicts.
	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/customers/%d/reject", id), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The requesting account is now active.
	var user models.UserModel
	require.NoError(t, env.db.First(&user, requesterID).Error)
	assert.True(t, user.IsActive)

	// One audit row shows up in the history endpoint.
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/customers/%d/approval-history", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	entries, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, entries, 1)
}

func TestCustomerHandler_RejectWithComment(t *testing.T) {
	env := newCustomerTestEnv(t, 2, identity.RoleAdmin)
	env.seedUser(t, "requester", identity.RoleUser, false)
	env.seedUser(t, "admin", identity.RoleAdmin, true)

	w := env.do(t, http.MethodPost, "/api/v1/customers", apppartner.CreateCustomerRequest{Name: "Doomed KK"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeData(t, w)["id"].(float64))

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/customers/%d/reject", id),
		apppartner.RejectCustomerRequest{Comment: "insufficient credit data"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "rejected", data["status"])
	assert.Equal(t, "insufficient credit data", data["approval_comment"])
}

func TestCustomerHandler_ApproveMissing(t *testing.T) {
	env := newCustomerTestEnv(t, 1, identity.RoleAdmin)
	env.seedUser(t, "admin", identity.RoleAdmin, true)

	w := env.do(t, http.MethodPost, "/api/v1/customers/9999/approve", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerHandler_AdminOnlyRoutes(t *testing.T) {
	env := newCustomerTestEnv(t, 1, identity.RoleUser)
	env.seedUser(t, "plain", identity.RoleUser, true)

	w := env.do(t, http.MethodPost, "/api/v1/customers", apppartner.CreateCustomerRequest{Name: "Visible KK"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeData(t, w)["id"].(float64))

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, fmt.Sprintf("/api/v1/customers/%d/approve", id)},
		{http.MethodPost, fmt.Sprintf("/api/v1/customers/%d/reject", id)},
		{http.MethodGet, fmt.Sprintf("/api/v1/customers/%d/approval-history", id)},
		{http.MethodDelete, fmt.Sprintf("/api/v1/customers/%d", id)},
	} {
		w := env.do(t, route.method, route.path, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", route.method, route.path)
	}
}

func TestCustomerHandler_ListRoleFiltering(t *testing.T) {
	adminEnv := newCustomerTestEnv(t, 1, identity.RoleAdmin)
	adminEnv.seedUser(t, "admin", identity.RoleAdmin, true)

	for i, name := range []string{"Pending A", "Pending B", "Approved C"} {
		w := adminEnv.do(t, http.MethodPost, "/api/v1/customers", apppartner.CreateCustomerRequest{Name: name})
		require.Equal(t, http.StatusCreated, w.Code)
		if i == 2 {
			id := uint(decodeData(t, w)["id"].(float64))
			w = adminEnv.do(t, http.MethodPost, fmt.Sprintf("/api/v1/customers/%d/approve", id), nil)
			require.Equal(t, http.StatusOK, w.Code)
		}
	}

	w := adminEnv.do(t, http.MethodGet, "/api/v1/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.EqualValues(t, 3, resp.Meta.Total)

	// Re-route the same engine through a non-admin identity: only the
	// approved customer remains visible.
	userEngine := gin.New()
	userEngine.Use(fakeAuth(5, identity.RoleUser))
	userEnv := &customerTestEnv{db: adminEnv.db, engine: userEngine}
	customers := apppartner.NewCustomerService(
		adminEnv.db,
		persistence.NewGormCustomerRepository(adminEnv.db),
		persistence.NewGormCustomerCreditRepository(adminEnv.db),
		persistence.NewGormQuotationRepository(adminEnv.db),
	)
	approvals := apppartner.NewCustomerApprovalService(
		adminEnv.db,
		persistence.NewGormCustomerRepository(adminEnv.db),
		persistence.NewGormUserRepository(adminEnv.db),
		persistence.NewGormApprovalLogRepository(adminEnv.db),
		notification.NewLogNotifier(zap.NewNop()), zap.NewNop(),
	)
	ch := NewCustomerHandler(customers, approvals)
	userEngine.GET("/api/v1/customers", ch.List)

	w = userEnv.do(t, http.MethodGet, "/api/v1/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.EqualValues(t, 1, resp.Meta.Total)
}

func TestCustomerHandler_DeleteBlockedWhenReferenced(t *testing.T) {
	env := newCustomerTestEnv(t, 1, identity.RoleAdmin)
	env.seedUser(t, "admin", identity.RoleAdmin, true)

	w := env.do(t, http.MethodPost, "/api/v1/customers", apppartner.CreateCustomerRequest{Name: "Referenced KK"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeData(t, w)["id"].(float64))

	quotation := &models.QuotationModel{CompanyName: "Referenced KK", ProjectName: "Job", CustomerID: &id}
	require.NoError(t, env.db.Create(quotation).Error)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/customers/%d", id), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
