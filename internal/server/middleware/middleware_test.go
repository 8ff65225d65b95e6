package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"imagegen/internal/pkg/ctxutil"
	"imagegen/internal/pkg/id"
	"imagegen/internal/pkg/lobe"
)

type call struct {
	method string
	route  string
	status int
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []call
}

func (f *fakeRecorder) RecordHTTPRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{method, route, status})
}

func TestRequestID(t *testing.T) {
	Convey("RequestID 注入请求 ID", t, func() {
		gin.SetMode(gin.TestMode)
		var fromCtx, fromGin string
		r := gin.New()
		r.Use(RequestID())
		r.GET("/x", func(c *gin.Context) {
			fromCtx = ctxutil.RequestID(c.Request.Context())
			fromGin = c.GetString(RequestIDKey)
		})

		Convey("未携带时生成新的 UUID", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			So(id.IsValid(fromCtx), ShouldBeTrue)
			So(fromGin, ShouldEqual, fromCtx)
			So(w.Header().Get(RequestIDHeader), ShouldEqual, fromCtx)
		})

		Convey("沿用合法的上游 ID", func() {
			rid := id.New()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set(RequestIDHeader, rid)
			r.ServeHTTP(httptest.NewRecorder(), req)
			So(fromCtx, ShouldEqual, rid)
		})

		Convey("非法 ID 被替换", func() {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set(RequestIDHeader, "<script>")
			r.ServeHTTP(httptest.NewRecorder(), req)
			So(fromCtx, ShouldNotEqual, "<script>")
			So(id.IsValid(fromCtx), ShouldBeTrue)
		})
	})
}

func TestCORS(t *testing.T) {
	Convey("CORS 允许插件设置请求头", t, func() {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(CORS())
		r.POST("/api/:provider/generate", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/api/xai/generate", nil)
		req.Header.Set("Origin", "https://chat.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		So(w.Code, ShouldEqual, http.StatusNoContent)
		So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "https://chat.example.com")
		So(w.Header().Get("Access-Control-Allow-Headers"), ShouldContainSubstring, lobe.SettingsHeader)
	})
}

func TestMetrics(t *testing.T) {
	Convey("Metrics 按路由模板记录", t, func() {
		gin.SetMode(gin.TestMode)
		rec := &fakeRecorder{}
		r := gin.New()
		r.Use(Metrics(rec))
		r.GET("/api/:provider/manifest.json", func(c *gin.Context) { c.Status(http.StatusOK) })

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/xai/manifest.json", nil))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

		So(rec.calls, ShouldHaveLength, 2)
		So(rec.calls[0], ShouldResemble, call{http.MethodGet, "/api/:provider/manifest.json", http.StatusOK})
		So(rec.calls[1].route, ShouldEqual, "")
		So(rec.calls[1].status, ShouldEqual, http.StatusNotFound)
	})
}

func TestRecovery(t *testing.T) {
	Convey("Recovery 将 panic 转为 500", t, func() {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(Recovery())
		r.GET("/boom", func(c *gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		So(w.Code, ShouldEqual, http.StatusInternalServerError)
		So(w.Body.String(), ShouldContainSubstring, `"message":"Internal Server Error"`)
	})
}
