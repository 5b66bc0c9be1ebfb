package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/auth"
	"github.com/frahmantamala/employee-management/internal/core/datamodel"
	departmentDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/department"
	roleDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/role"
	"github.com/frahmantamala/employee-management/internal/core/events"
	"github.com/frahmantamala/employee-management/internal/seed"
	"github.com/frahmantamala/employee-management/internal/transport/rest"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Router Suite")
}

const testSecret = "router-test-secret"

var _ = Describe("Router", func() {
	var (
		ctx    context.Context
		gdb    *gorm.DB
		router *chi.Mux
		bus    *events.EventBus
	)

	do := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(raw)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	login := func(username, password string) string {
		rec := do(http.MethodPost, "/api/user/login", "", map[string]string{"username": username, "password": password})
		Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())
		var token string
		Expect(json.Unmarshal(rec.Body.Bytes(), &token)).To(Succeed())
		return token
	}

	decode := func(rec *httptest.ResponseRecorder) map[string]interface{} {
		var out map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &out)).To(Succeed())
		return out
	}

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		gdb, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := gdb.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(gdb.AutoMigrate(datamodel.All()...)).To(Succeed())

		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		bus = events.NewEventBus(log)
		bus.SubscribeAll(events.NewAuditHandler(log))

		sdb := sqlx.NewDb(sqlDB, "sqlite3")
		svc := rest.BuildServices(gdb, sdb, internal.SecurityConfig{
			JWTSecret:  testSecret,
			BCryptCost: bcrypt.MinCost,
		}, bus, log)

		_, err = seed.NewSeeder(svc.Role, svc.User, svc.Employee, log).Run(ctx, seed.Options{Demo: true})
		Expect(err).NotTo(HaveOccurred())

		router, err = rest.NewRouter(ctx, rest.BuildHandlers(svc, sdb, log), rest.RouterConfig{LoginRateLimit: 1000}, log)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		bus.Wait()
	})

	Describe("public routes", func() {
		It("should answer ping and health", func() {
			Expect(do(http.MethodGet, "/api/ping", "", nil).Code).To(Equal(http.StatusOK))

			rec := do(http.MethodGet, "/api/health", "", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode(rec)["status"]).To(Equal("healthy"))
		})

		It("should serve the OpenAPI document", func() {
			rec := do(http.MethodGet, "/openapi.yml", "", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("/employee/addEmployee"))
		})

		It("should expose request metrics", func() {
			do(http.MethodGet, "/api/ping", "", nil)

			rec := do(http.MethodGet, "/metrics", "", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchRegexp(`hr_http_requests_total\{method="GET",route="/api/(\*/)?ping",status="200"\}`))
		})

		It("should set the trace id header", func() {
			rec := do(http.MethodGet, "/api/ping", "", nil)
			Expect(rec.Header().Get("X-Trace-ID")).NotTo(BeEmpty())
		})

		It("should reject bad credentials with 401", func() {
			rec := do(http.MethodPost, "/api/user/login", "", map[string]string{"username": "admin", "password": "wrong"})
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(decode(rec)["error"]).To(Equal(internal.MsgInvalidCredentials))
		})

		It("should log out without a token", func() {
			rec := do(http.MethodPost, "/api/user/logout", "", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode(rec)["message"]).To(Equal("Logged out successfully"))
		})
	})

	Describe("authentication", func() {
		protected := []struct{ method, path string }{
			{http.MethodPost, "/api/user/createUser"},
			{http.MethodPut, "/api/user/updateUser"},
			{http.MethodPut, "/api/user/updateRole"},
			{http.MethodDelete, "/api/user/deleteUser/1"},
			{http.MethodGet, "/api/user/getAllUsers"},
			{http.MethodGet, "/api/user/usersByRoleName"},
			{http.MethodGet, "/api/user/getAllRoles"},
			{http.MethodGet, "/api/user/getAllDepartments"},
			{http.MethodPost, "/api/employee/addEmployee"},
			{http.MethodGet, "/api/employee/employeesByJobType"},
			{http.MethodGet, "/api/employee/employeesByDepartment"},
			{http.MethodGet, "/api/employee/employeeByUsername"},
		}

		It("should return 401 without a token on every protected route", func() {
			for _, route := range protected {
				rec := do(route.method, route.path, "", nil)
				Expect(rec.Code).To(Equal(http.StatusUnauthorized), route.path)
				Expect(decode(rec)["error"]).To(Equal("Authorization token is missing"), route.path)
			}
		})

		It("should return 401 Invalid token for a Bearer prefix without a credential", func() {
			rec := do(http.MethodGet, "/api/user/getAllUsers", "Bearer    ", nil)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(decode(rec)["error"]).To(Equal("Invalid token"))
		})

		It("should return 401 Invalid token for a token signed with another secret", func() {
			forged, err := auth.NewTokenService("some-other-secret").Issue("admin")
			Expect(err).NotTo(HaveOccurred())

			for _, route := range protected {
				rec := do(route.method, route.path, forged, nil)
				Expect(rec.Code).To(Equal(http.StatusUnauthorized), route.path)
				Expect(decode(rec)["error"]).To(Equal("Invalid token"), route.path)
			}
		})
	})

	Describe("authorization", func() {
		It("should let ADMIN create a user that then shows up in the list", func() {
			admin := login("admin", seed.DefaultAdminPassword)

			rec := do(http.MethodPost, "/api/user/createUser", admin, map[string]string{
				"username": "NewHire",
				"password": "newhire123",
				"email":    "newhire@example.com",
				"roleName": "EMPLOYEE",
			})
			Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
			body := decode(rec)
			Expect(body["message"]).To(Equal("User created successfully"))
			Expect(body["user"]).NotTo(HaveKey("password"))
			Expect(body["user"]).NotTo(HaveKey("passwordHash"))

			rec = do(http.MethodGet, "/api/user/getAllUsers", admin, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"username":"newhire"`))
			Expect(rec.Body.String()).NotTo(ContainSubstring("$2a$"))
		})

		It("should reject a whitespace-only username with 400 and store nothing", func() {
			admin := login("admin", seed.DefaultAdminPassword)

			rec := do(http.MethodPost, "/api/user/createUser", admin, map[string]string{
				"username": "   ", "password": "password123", "roleName": "EMPLOYEE",
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(rec)["error"]).To(Equal("username is required"))

			rec = do(http.MethodGet, "/api/user/getAllUsers", admin, nil)
			Expect(rec.Body.String()).NotTo(ContainSubstring(`"username":""`))
		})

		It("should return 409 when the username is taken", func() {
			admin := login("admin", seed.DefaultAdminPassword)
			rec := do(http.MethodPost, "/api/user/createUser", admin, map[string]string{
				"username": "johndoe", "password": "johndoe123", "roleName": "EMPLOYEE",
			})
			Expect(rec.Code).To(Equal(http.StatusConflict))
		})

		It("should return 403 when an EMPLOYEE tries to create an employee", func() {
			employee := login("johndoe", "johndoe123")

			rec := do(http.MethodPost, "/api/employee/addEmployee", employee, map[string]string{
				"username": "johnwick", "jobType": "FULL_TIME", "departmentName": "SALES", "roleName": "EMPLOYEE",
			})
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(decode(rec)["error"]).To(Equal("Forbidden - Insufficient Permission"))
		})

		It("should apply a role permission update on the next request", func() {
			admin := login("admin", seed.DefaultAdminPassword)
			hr := login("benstone", "benstone123")

			Expect(do(http.MethodGet, "/api/user/getAllUsers", hr, nil).Code).To(Equal(http.StatusForbidden))
			Expect(do(http.MethodGet, "/api/employee/employeesByJobType?jobType=FULL_TIME", hr, nil).Code).To(Equal(http.StatusOK))

			rec := do(http.MethodPut, "/api/user/updateRole", admin, map[string]interface{}{
				"roleName":    "hr manager",
				"permissions": []string{"READ_ALL_USERS"},
			})
			Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
			Expect(decode(rec)["updateRole"]).To(HaveKeyWithValue("permissions", ConsistOf("READ_ALL_USERS")))

			Expect(do(http.MethodGet, "/api/user/getAllUsers", hr, nil).Code).To(Equal(http.StatusOK))
			Expect(do(http.MethodGet, "/api/employee/employeesByJobType?jobType=FULL_TIME", hr, nil).Code).To(Equal(http.StatusForbidden))
		})

		It("should reject unknown permission names", func() {
			admin := login("admin", seed.DefaultAdminPassword)
			rec := do(http.MethodPut, "/api/user/updateRole", admin, map[string]interface{}{
				"roleName":    "EMPLOYEE",
				"permissions": []string{"READ_USER", "FLY"},
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject a token once its user is deleted", func() {
			admin := login("admin", seed.DefaultAdminPassword)
			wick := login("johnwick", "johndoe123")

			rec := do(http.MethodGet, "/api/user/usersByRoleName?roleName=EMPLOYEE", admin, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var listed struct {
				EmployeesByRoleName []struct {
					ID       int64  `json:"id"`
					Username string `json:"username"`
				} `json:"employeesByRoleName"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &listed)).To(Succeed())
			var wickID int64
			for _, u := range listed.EmployeesByRoleName {
				if u.Username == "johnwick" {
					wickID = u.ID
				}
			}
			Expect(wickID).To(BeNumerically(">", 0))

			rec = do(http.MethodDelete, fmt.Sprintf("/api/user/deleteUser/%d", wickID), admin, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			rec = do(http.MethodPut, "/api/user/updateUser", wick, map[string]string{"username": "johnwick", "firstName": "Jonathan"})
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(decode(rec)["error"]).To(Equal("Invalid token"))

			Expect(do(http.MethodDelete, fmt.Sprintf("/api/user/deleteUser/%d", wickID), admin, nil).Code).To(Equal(http.StatusNotFound))
			Expect(do(http.MethodDelete, "/api/user/deleteUser/abc", admin, nil).Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("updateUser", func() {
		It("should ignore a role change requested by a non-admin", func() {
			hr := login("benstone", "benstone123")

			rec := do(http.MethodPut, "/api/user/updateUser", hr, map[string]string{
				"username": "johndoe", "lastName": "Doe-Smith", "roleName": "ADMIN",
			})
			Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
			Expect(decode(rec)["user"]).To(And(
				HaveKeyWithValue("lastName", "Doe-Smith"),
				HaveKeyWithValue("roleName", "EMPLOYEE"),
			))
		})

		It("should return 404 for an unknown user", func() {
			admin := login("admin", seed.DefaultAdminPassword)
			rec := do(http.MethodPut, "/api/user/updateUser", admin, map[string]string{"username": "ghost", "firstName": "G"})
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("employees", func() {
		It("should auto-create a new role and department exactly once", func() {
			admin := login("admin", seed.DefaultAdminPassword)

			for _, username := range []string{"calstone", "benstone"} {
				rec := do(http.MethodPost, "/api/employee/addEmployee", admin, map[string]string{
					"username":       username,
					"address":        "1 Market St",
					"jobType":        "PART_TIME",
					"departmentName": "research",
					"roleName":       "scientist",
				})
				Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
				body := decode(rec)
				Expect(body["message"]).To(Equal("Employee created successfully"))
				Expect(body["newEmployee"]).To(HaveKeyWithValue("departmentName", "RESEARCH"))
			}

			var roles, departments int64
			Expect(gdb.Model(&roleDatamodel.Role{}).Where("name = ?", "SCIENTIST").Count(&roles).Error).To(Succeed())
			Expect(gdb.Model(&departmentDatamodel.Department{}).Where("name = ?", "RESEARCH").Count(&departments).Error).To(Succeed())
			Expect(roles).To(Equal(int64(1)))
			Expect(departments).To(Equal(int64(1)))

			rec := do(http.MethodGet, "/api/employee/employeesByDepartment?departmentName=Research", admin, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode(rec)["employeesByDepartment"]).To(HaveLen(2))
		})

		It("should require an existing user", func() {
			admin := login("admin", seed.DefaultAdminPassword)
			rec := do(http.MethodPost, "/api/employee/addEmployee", admin, map[string]string{
				"username": "ghost", "jobType": "FULL_TIME", "departmentName": "SALES", "roleName": "EMPLOYEE",
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(rec)["error"]).To(Equal("User not found. Create a user ID first."))
		})

		It("should read lookup keys from the query or the JSON body", func() {
			hr := login("benstone", "benstone123")

			rec := do(http.MethodGet, "/api/employee/employeeByUsername?username=JohnDoe", hr, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode(rec)["employeeByUsername"]).To(HaveKeyWithValue("jobType", "FULL_TIME"))

			rec = do(http.MethodGet, "/api/employee/employeesByJobType", hr, map[string]string{"jobType": "CONTRACT"})
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode(rec)["employeesByJobType"]).To(HaveLen(1))
		})

		It("should map lookup errors to 400 and 404", func() {
			hr := login("benstone", "benstone123")

			rec := do(http.MethodGet, "/api/employee/employeesByJobType", hr, nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(rec)["error"]).To(Equal("Missing jobType in request body"))

			rec = do(http.MethodGet, "/api/employee/employeesByJobType?jobType=INTERN", hr, nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(rec)["error"]).To(Equal("Invalid `jobType` property in request body"))

			rec = do(http.MethodGet, "/api/employee/employeeByUsername?username=ghost", hr, nil)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(decode(rec)["error"]).To(Equal("Employee not found"))
		})
	})

	Describe("listings", func() {
		It("should list roles and departments for ADMIN", func() {
			admin := login("admin", seed.DefaultAdminPassword)

			rec := do(http.MethodGet, "/api/user/getAllRoles", admin, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode(rec)["roles"]).To(HaveLen(3))

			rec = do(http.MethodGet, "/api/user/getAllDepartments", admin, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode(rec)["departments"]).To(HaveLen(2))
		})
	})
})
