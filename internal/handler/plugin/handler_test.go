package plugin

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"imagegen/internal/imagegen"
	"imagegen/internal/imagegen/siliconflow"
	"imagegen/internal/imagegen/xai"
	"imagegen/internal/pkg/lobe"
)

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/:provider/generate", h.Generate)
	r.GET("/api/:provider/manifest.json", h.Manifest)
	return r
}

func doRequest(r http.Handler, method, path, settings, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if settings != "" {
		req.Header.Set(lobe.SettingsHeader, settings)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Generate(t *testing.T) {
	Convey("Generate 转发到对应服务商并返回插件响应", t, func() {
		var gotAuth string
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			if gotAuth == "Bearer bad" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"error":"unauthorized"}`)
				return
			}
			_, _ = io.WriteString(w, `{"data":[{"url":"https://img/1.png"}]}`)
		}))
		defer upstream.Close()

		h := NewHandler(lobe.NewHeaderResolver(),
			xai.New(imagegen.Options{BaseURL: upstream.URL}),
			siliconflow.New(imagegen.Options{BaseURL: upstream.URL}),
		)
		r := newRouter(h)

		Convey("成功返回 markdownResponse", func() {
			w := doRequest(r, http.MethodPost, "/api/xai/generate", `{"XAI_API_KEY":"good"}`, `{"prompt":"cat"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(gotAuth, ShouldEqual, "Bearer good")

			var resp MarkdownResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.MarkdownResponse, ShouldEqual, "![Generated Image 1](https://img/1.png)")
		})

		Convey("缺少设置请求头返回 422 插件错误", func() {
			w := doRequest(r, http.MethodPost, "/api/xai/generate", "", `{"prompt":"cat"}`)
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)

			var resp lobe.ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.ErrorType, ShouldEqual, lobe.PluginSettingsInvalid)
			So(resp.Body.Message, ShouldEqual, imagegen.MsgSettingsNotFound)
		})

		Convey("API Key 为空", func() {
			w := doRequest(r, http.MethodPost, "/api/siliconflow/generate", `{"SILICONFLOW_API_KEY":""}`, `{"prompt":"cat"}`)
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(w.Body.String(), ShouldContainSubstring, "SiliconFlow API key is required.")
		})

		Convey("上游 401 视为设置无效", func() {
			w := doRequest(r, http.MethodPost, "/api/xai/generate", `{"XAI_API_KEY":"bad"}`, `{"prompt":"cat"}`)
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(w.Body.String(), ShouldContainSubstring, "Invalid xAI API key.")
		})

		Convey("缺少 prompt 返回 400", func() {
			w := doRequest(r, http.MethodPost, "/api/xai/generate", `{"XAI_API_KEY":"good"}`, `{}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var resp MessageResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Message, ShouldEqual, imagegen.MsgPromptRequired)
		})

		Convey("未知服务商返回 404", func() {
			w := doRequest(r, http.MethodPost, "/api/midjourney/generate", `{"X":"y"}`, `{"prompt":"cat"}`)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldContainSubstring, MsgUnknownProvider)
		})
	})
}

func TestHandler_Manifest(t *testing.T) {
	Convey("Manifest 根据请求地址生成插件描述", t, func() {
		h := NewHandler(lobe.NewHeaderResolver(), xai.New(imagegen.Options{}))
		r := newRouter(h)

		Convey("API 地址使用请求 Host", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/xai/manifest.json", nil)
			req.Host = "plugins.example.com"
			req.Header.Set("X-Forwarded-Proto", "https")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)

			var m lobe.Manifest
			So(json.Unmarshal(w.Body.Bytes(), &m), ShouldBeNil)
			So(m.Identifier, ShouldEqual, "xai-image")
			So(m.API, ShouldHaveLength, 1)
			So(m.API[0].URL, ShouldEqual, "https://plugins.example.com/api/xai/generate")
			So(m.API[0].Parameters.Required, ShouldResemble, []string{"prompt"})
			So(m.Settings.Required, ShouldResemble, []string{xai.SettingsKey})
			So(m.Settings.Properties[xai.SettingsKey].Format, ShouldEqual, "password")
		})

		Convey("未知服务商", func() {
			w := doRequest(r, http.MethodGet, "/api/none/manifest.json", "", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHandler_Providers(t *testing.T) {
	Convey("Providers 按注册顺序返回", t, func() {
		h := NewHandler(lobe.NewHeaderResolver(),
			siliconflow.New(imagegen.Options{}),
			xai.New(imagegen.Options{}),
		)
		list := h.Providers()
		So(list, ShouldHaveLength, 2)
		So(list[0].ID, ShouldEqual, siliconflow.ID)
		So(list[1].ID, ShouldEqual, xai.ID)
	})
}
