package server_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/scoremodel"
	"github.com/abhisek/dsamentor/internal/server"
)

type stubAnalyzer struct {
	err   error
	panic bool
	last  analysis.Input
}

func (s *stubAnalyzer) Analyze(in analysis.Input) (*analysis.Snapshot, error) {
	s.last = in
	if s.panic {
		panic("boom")
	}
	if s.err != nil {
		return nil, s.err
	}
	return analysis.NewPipeline(nil).Analyze(in)
}

var _ = Describe("Handler", func() {
	var (
		router   *gin.Engine
		analyzer *stubAnalyzer
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		analyzer = &stubAnalyzer{}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		router = server.NewRouter(server.NewHandler(scoremodel.New(), analyzer), logger)
	})

	post := func(path string, body any) *httptest.ResponseRecorder {
		var buf *bytes.Buffer
		switch b := body.(type) {
		case string:
			buf = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			Expect(err).NotTo(HaveOccurred())
			buf = bytes.NewBuffer(raw)
		}
		req := httptest.NewRequest(http.MethodPost, path, buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decodeData := func(w *httptest.ResponseRecorder) map[string]any {
		var resp struct {
			Data []map[string]any `json:"data"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Data).To(HaveLen(1))
		return resp.Data[0]
	}

	It("reports health", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"ok"`))
	})

	Describe("POST /api/predict", func() {
		It("dispatches on fn_index", func() {
			w := post("/api/predict", map[string]any{"data": []any{0.5, 0.6, 0.4, 1000}, "fn_index": 1})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeData(w)["estimated_hours"]).To(BeNumerically("==", 1.8))
		})

		It("infers a timeline request from four numbers", func() {
			w := post("/api/predict", map[string]any{"data": []any{0.5, 0.6, 0.4, 1000}})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeData(w)).To(HaveKey("estimated_hours"))
		})

		It("requires fn_index for eight numbers", func() {
			w := post("/api/predict", map[string]any{"data": []any{1, 0, 0, 10, 0.2, 1, 1, 0.5}})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("fn_index is required"))
		})

		It("serves a numeric mistake vector by fn_index", func() {
			w := post("/api/predict", map[string]any{"data": []any{2, 3, 3, 30, 0.5, 0, 2, 0.6}, "fn_index": 2})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeData(w)).To(HaveKeyWithValue("predicted_mistake", "✅ No Error"))
		})

		It("rejects an unknown vector shape", func() {
			w := post("/api/predict", map[string]any{"data": []any{1, 2}})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an unknown fn_index", func() {
			w := post("/api/predict", map[string]any{"data": []any{1, 2, 3, 4}, "fn_index": 9})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("unknown fn_index"))
		})

		It("rejects malformed JSON", func() {
			w := post("/api/predict", `{`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /api/predict/:fn", func() {
		It("serves a named function", func() {
			w := post("/api/predict/mistake", map[string]any{"data": []any{4, 8, 6, 80, 0.9, false, 3, 0.7}})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeData(w)).To(HaveKeyWithValue("risk_level", "High"))
		})

		It("returns 404 for an unknown function", func() {
			w := post("/api/predict/nope", map[string]any{"data": []any{}})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 400 for the wrong arity", func() {
			w := post("/api/predict/timeline", map[string]any{"data": []any{1}})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /api/analyze", func() {
		It("returns a full snapshot", func() {
			w := post("/api/analyze", map[string]any{"code": lang.Starter(lang.Python), "language": "py"})
			Expect(w.Code).To(Equal(http.StatusOK))

			var snap analysis.Snapshot
			Expect(json.Unmarshal(w.Body.Bytes(), &snap)).To(Succeed())
			Expect(snap.Language).To(Equal(lang.Python))
			Expect(snap.Mistakes).NotTo(BeNil())
			Expect(snap.Mistakes.Findings).NotTo(BeEmpty())
			Expect(analyzer.last.Profile.SkillLevel).To(Equal(0.6))
		})

		It("uses the posted profile", func() {
			w := post("/api/analyze", map[string]any{
				"code":    "x = 1",
				"profile": map[string]any{"skill_level": 0.2},
			})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(analyzer.last.Profile.SkillLevel).To(Equal(0.2))
			Expect(analyzer.last.Language).To(Equal(lang.Python))
		})

		It("returns the empty snapshot for blank code", func() {
			w := post("/api/analyze", map[string]any{"code": "  "})
			Expect(w.Code).To(Equal(http.StatusOK))
			var snap analysis.Snapshot
			Expect(json.Unmarshal(w.Body.Bytes(), &snap)).To(Succeed())
			Expect(snap.Empty()).To(BeTrue())
		})

		It("rejects an unknown language", func() {
			w := post("/api/analyze", map[string]any{"code": "x", "language": "cobol"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 500 when analysis fails", func() {
			analyzer.err = errors.New("stage failed")
			w := post("/api/analyze", map[string]any{"code": "x = 1"})
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})

		It("recovers from a panicking analyzer", func() {
			analyzer.panic = true
			w := post("/api/analyze", map[string]any{"code": "x = 1"})
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(ContainSubstring("internal server error"))
		})
	})

	Describe("GET /api/templates/:language", func() {
		It("returns starter and reset buffers", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/templates/java", nil))
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]string
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["name"]).To(Equal("Java"))
			Expect(resp["starter"]).To(Equal(lang.Starter(lang.Java)))
			Expect(resp["reset"]).To(Equal(lang.Reset(lang.Java)))
		})

		It("returns 404 for an unsupported language", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/templates/cobol", nil))
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
