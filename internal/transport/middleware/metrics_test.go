package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Metrics", func() {
	It("should count requests by route pattern and status", func() {
		metrics := NewMetrics()

		router := chi.NewRouter()
		router.Use(metrics.Middleware)
		router.Delete("/api/user/deleteUser/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		for _, id := range []string{"1", "2"} {
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/user/deleteUser/"+id, nil))
		}

		rec := httptest.NewRecorder()
		metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		body, err := io.ReadAll(rec.Body)
		Expect(err).NotTo(HaveOccurred())

		Expect(string(body)).To(ContainSubstring(
			`hr_http_requests_total{method="DELETE",route="/api/user/deleteUser/{id}",status="404"} 2`))
		Expect(string(body)).To(ContainSubstring("go_goroutines"))
	})

	It("should keep registries separate per instance", func() {
		Expect(func() {
			NewMetrics()
			NewMetrics()
		}).NotTo(Panic())
	})
})
