package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// brokenDB returns a handle whose queries fail: the DSN points at a closed
// port and connecting is deferred until first use.
func brokenDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "host=127.0.0.1 port=9 user=nadie dbname=nada sslmode=disable connect_timeout=1"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)
	return db
}

// A failed uniqueness lookup must stop registration, not read as "no
// duplicate" and fall through to the insert.
func TestRegisterReportsLookupFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(brokenDB(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"email":"ana@mitienda.com","username":"ana","password":"secreta1"}`
	req := httptest.NewRequest(http.MethodPost, "/usuarios/registro", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Register(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL"`)
}
