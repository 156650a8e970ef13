package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ezguapp/medalert/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubHTMLRender struct{}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	return &stubHTMLInstance{name: name, data: data}
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

func setupHandlerTest(t *testing.T) (*API, *gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	api := NewAPI(gdb, "TomaBien")

	r := gin.New()
	r.HTMLRender = &stubHTMLRender{}
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))

	cleanup := func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	return api, r, cleanup
}

// forceLogin plants the account into the request session ahead of the
// handler, standing in for a real login round-trip.
func forceLogin(userID uint, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("user_id", userID)
		session.Set("username", username)
		c.Next()
	}
}

func seedHandlerUser(t *testing.T, username string) *db.User {
	t.Helper()
	user := db.User{Username: username, Password: "x"}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	if err := db.DB.Create(&db.UserProfile{UserID: user.ID}).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	return &user
}

func completeProfile(t *testing.T, userID uint) {
	t.Helper()
	weight := 70.0
	sex := db.SexMale
	activity := db.ActivityModerate
	err := db.DB.Model(&db.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"weight_kg":      weight,
			"sex":            sex,
			"activity_level": activity,
		}).Error
	if err != nil {
		t.Fatalf("failed to complete profile: %v", err)
	}
}
