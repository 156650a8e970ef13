package router

import (
	"html/template"

	"github.com/ezguapp/medalert/internal/config"
	"github.com/ezguapp/medalert/internal/db"
	"github.com/ezguapp/medalert/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("medalert_session", store))

	// 加载模板并添加自定义函数
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"seq": func(n uint) []uint {
			out := make([]uint, 0, n)
			for i := uint(0); i < n; i++ {
				out = append(out, i)
			}
			return out
		},
	})
	r.LoadHTMLGlob("web/template/*.html")

	// 静态文件服务
	r.Static("/static", "./web/static")

	api := handler.NewAPI(db.DB, cfg.SiteName)

	r.GET("/", api.Home)
	r.GET("/login", api.ShowLoginPage)
	r.POST("/login", api.Login)
	r.GET("/register", api.ShowRegisterPage)
	r.POST("/register", api.Register)
	r.GET("/logout", api.Logout)
	r.POST("/logout", api.Logout)

	// 需要登录的路由
	auth := r.Group("")
	auth.Use(handler.AuthRequired())
	{
		auth.GET("/medicamentos", api.ShowMedications)
		auth.POST("/medicamentos", api.CreateMedication)
		auth.POST("/medicamentos/eliminar/:id", api.DeleteMedication)
		auth.POST("/medicamentos/:id/toma", api.RegisterDose)

		auth.GET("/hidratacion", api.ShowHydration)
		auth.POST("/hidratacion", api.AddCup)

		auth.GET("/perfil", api.ShowProfile)
		auth.POST("/perfil", api.UpdateProfile)
		auth.GET("/perfil/completar", api.ShowCompleteProfile)
		auth.POST("/perfil/completar", api.CompleteProfile)
	}

	return r
}
