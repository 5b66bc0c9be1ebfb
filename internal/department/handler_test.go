package department_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/employee-management/internal/core/datamodel"
	"github.com/frahmantamala/employee-management/internal/department"
	departmentPostgres "github.com/frahmantamala/employee-management/internal/department/postgres"
	"github.com/frahmantamala/employee-management/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Department Handler Integration", func() {
	var (
		handler *department.Handler
		service *department.Service
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(datamodel.All()...)).To(Succeed())

		repo := departmentPostgres.NewDepartmentRepository(db)
		service = department.NewService(repo, slogger)
		handler = department.NewHandler(transport.NewBaseHandler(slogger), service)

		for _, name := range []string{"secret operations", "engineering", "ENGINEERING"} {
			_, err := service.EnsureExists(context.Background(), name)
			Expect(err).NotTo(HaveOccurred())
		}
	})

	It("should handle GET /getAllDepartments request successfully", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/user/getAllDepartments", nil)
		w := httptest.NewRecorder()

		handler.GetAllDepartments(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response department.DepartmentsResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())

		names := make([]string, len(response.Departments))
		for i, d := range response.Departments {
			names[i] = d.Name
		}
		Expect(names).To(Equal([]string{"ENGINEERING", "SECRET OPERATIONS"}))
	})
})
