package lobe

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHeaderResolver_Resolve(t *testing.T) {
	Convey("HeaderResolver 解析插件设置请求头", t, func() {
		resolver := NewHeaderResolver()

		Convey("缺少请求头", func() {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			settings, ok := resolver.Resolve(req)
			So(ok, ShouldBeFalse)
			So(settings, ShouldBeNil)
		})

		Convey("非法 JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.Header.Set(SettingsHeader, "{oops")
			_, ok := resolver.Resolve(req)
			So(ok, ShouldBeFalse)
		})

		Convey("JSON null 视为未提供", func() {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.Header.Set(SettingsHeader, "null")
			_, ok := resolver.Resolve(req)
			So(ok, ShouldBeFalse)
		})

		Convey("合法设置", func() {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.Header.Set(SettingsHeader, `{"XAI_API_KEY":"sk-1","N":3}`)
			settings, ok := resolver.Resolve(req)
			So(ok, ShouldBeTrue)
			So(settings.String("XAI_API_KEY"), ShouldEqual, "sk-1")
			So(settings.String("N"), ShouldEqual, "3")
			So(settings.String("MISSING"), ShouldBeEmpty)
		})

		Convey("空对象仍视为已提供", func() {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.Header.Set(SettingsHeader, `{}`)
			settings, ok := resolver.Resolve(req)
			So(ok, ShouldBeTrue)
			So(settings.String("XAI_API_KEY"), ShouldBeEmpty)
		})
	})
}

func TestErrorResponse(t *testing.T) {
	Convey("插件错误响应格式", t, func() {
		resp := NewErrorResponse(PluginSettingsInvalid, "Plugin settings not found.")
		data, err := json.Marshal(resp)
		So(err, ShouldBeNil)
		So(string(data), ShouldEqual, `{"errorType":"PluginSettingsInvalid","body":{"message":"Plugin settings not found."}}`)

		So(ErrorStatus(PluginSettingsInvalid), ShouldEqual, http.StatusUnprocessableEntity)
		So(ErrorStatus(BadRequest), ShouldEqual, http.StatusBadRequest)
		So(ErrorStatus(PluginServerError), ShouldEqual, http.StatusInternalServerError)
	})
}
