package zhipuai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"imagegen/internal/imagegen"
	"imagegen/internal/pkg/lobe"
)

func newUpstream(status int, response string, sent *map[string]any) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		if sent != nil {
			_ = json.Unmarshal(data, sent)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
}

func settings() lobe.Settings {
	return lobe.Settings{SettingsKey: "zp-key"}
}

const okResponse = `{"created":1700000000,"data":[{"url":"https://cdn/z.png"}],"content_filter":[{"role":"assistant","level":3}]}`

func TestGenerate(t *testing.T) {
	Convey("智谱AI 生成流程", t, func() {
		ctx := context.Background()

		Convey("成功输出三行元数据", func() {
			var sent map[string]any
			srv := newUpstream(http.StatusOK, okResponse, &sent)
			defer srv.Close()

			md, err := New(imagegen.Options{BaseURL: srv.URL}, Config{}).
				Generate(ctx, settings(), []byte(`{"prompt":"山水画","model":"cogview-3-flash","user_id":"u-1"}`))
			So(err, ShouldBeNil)
			So(md, ShouldEqual, "![Generated Image](https://cdn/z.png)\n*提示词: 山水画*\n*模型: cogview-3-flash*\n*尺寸: 1024x1024*")
			So(sent["size"], ShouldEqual, DefaultSize)
			So(sent["user_id"], ShouldEqual, "u-1")
			So(sent["model"], ShouldEqual, "cogview-3-flash")
		})

		Convey("缺省字段原样缺省", func() {
			var sent map[string]any
			srv := newUpstream(http.StatusOK, okResponse, &sent)
			defer srv.Close()

			_, err := New(imagegen.Options{BaseURL: srv.URL}, Config{}).
				Generate(ctx, settings(), []byte(`{"prompt":"cat","size":"768x1344"}`))
			So(err, ShouldBeNil)
			So(sent, ShouldNotContainKey, "model")
			So(sent, ShouldNotContainKey, "user_id")
			So(sent["size"], ShouldEqual, "768x1344")
		})

		Convey("默认不校验 prompt，请求照常转发", func() {
			var sent map[string]any
			srv := newUpstream(http.StatusOK, okResponse, &sent)
			defer srv.Close()

			md, err := New(imagegen.Options{BaseURL: srv.URL}, Config{}).Generate(ctx, settings(), []byte(`{}`))
			So(err, ShouldBeNil)
			So(md, ShouldContainSubstring, "*提示词: *")
			So(sent, ShouldNotContainKey, "prompt")
		})

		Convey("严格模式校验", func() {
			gen := New(imagegen.Options{BaseURL: "http://127.0.0.1:0"}, Config{StrictValidation: true})

			_, err := gen.Generate(ctx, settings(), []byte(`{"model":"cogview-3"}`))
			So(imagegen.AsError(err).Message, ShouldEqual, "Prompt is required.")

			_, err = gen.Generate(ctx, settings(), []byte(`{"prompt":"cat"}`))
			So(imagegen.AsError(err).Message, ShouldEqual, "Model is required.")

			_, err = gen.Generate(ctx, settings(), []byte(`{"prompt":"cat","model":"dall-e-3"}`))
			e := imagegen.AsError(err)
			So(e.Status, ShouldEqual, http.StatusBadRequest)
			So(e.Message, ShouldEqual, "Invalid model value.")
		})

		Convey("设置缺失与 Key 为空", func() {
			gen := New(imagegen.Options{}, Config{})
			_, err := gen.Generate(ctx, nil, nil)
			So(imagegen.AsError(err).Message, ShouldEqual, "Plugin settings not found.")

			_, err = gen.Generate(ctx, lobe.Settings{"OTHER": "x"}, nil)
			So(imagegen.AsError(err).Message, ShouldEqual, "ZhipuAI API key is required.")
		})

		Convey("上游无数据", func() {
			srv := newUpstream(http.StatusOK, `{"created":1,"data":[]}`, nil)
			defer srv.Close()

			_, err := New(imagegen.Options{BaseURL: srv.URL}, Config{}).Generate(ctx, settings(), []byte(`{"prompt":"cat"}`))
			So(imagegen.AsError(err).Message, ShouldEqual, "Failed to generate image, imageUrl is empty.")
		})

		Convey("上游 401 与 500", func() {
			srv401 := newUpstream(http.StatusUnauthorized, `{"error":{"code":"1000","message":"身份验证失败"}}`, nil)
			defer srv401.Close()
			_, err := New(imagegen.Options{BaseURL: srv401.URL}, Config{}).Generate(ctx, settings(), []byte(`{"prompt":"cat"}`))
			So(imagegen.AsError(err).Kind, ShouldEqual, imagegen.KindSettings)
			So(imagegen.AsError(err).Message, ShouldEqual, "Invalid ZhipuAI API key.")

			srv500 := newUpstream(http.StatusInternalServerError, `{"error":{"code":"500","message":"boom"}}`, nil)
			defer srv500.Close()
			_, err = New(imagegen.Options{BaseURL: srv500.URL}, Config{}).Generate(ctx, settings(), []byte(`{"prompt":"cat"}`))
			So(imagegen.AsError(err).Status, ShouldEqual, http.StatusInternalServerError)
			So(imagegen.AsError(err).Message, ShouldEqual, "Failed to generate image.")
		})
	})
}

func TestBaseURLFromEnv(t *testing.T) {
	Convey("ZHIPUAI_BASE_URL 覆盖默认地址", t, func() {
		t.Setenv(BaseURLEnv, "")
		So(BaseURLFromEnv(), ShouldEqual, DefaultBaseURL)

		t.Setenv(BaseURLEnv, "https://proxy.example.com/v4")
		So(BaseURLFromEnv(), ShouldEqual, "https://proxy.example.com/v4")
		So(New(imagegen.Options{}, Config{}).Descriptor().BaseURL, ShouldEqual, "https://proxy.example.com/v4")
	})
}
