package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("Auth HTTP layer", func() {
	var (
		handler *Handler
		rbac    *RBACAuthorization
		store   *mockCredentialStore
		service *Service
		reached bool
		guarded http.Handler
	)

	errorBody := func(rec *httptest.ResponseRecorder) string {
		var body transport.ErrorResponse
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
		return body.Error
	}

	login := func(username string) string {
		token, err := service.Login(context.Background(), LoginDTO{Username: username, Password: "correct_password"})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return token
	}

	ginkgo.BeforeEach(func() {
		hasher := NewPasswordHasher(bcrypt.MinCost)
		store = newMockCredentialStore(hasher)
		service = NewService(store, hasher, NewTokenService("test-access-secret"), discardLogger())
		base := transport.NewBaseHandler(discardLogger())
		handler = NewHandler(base, service)
		rbac = NewRBACAuthorization(base)

		reached = false
		final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			principal, ok := PrincipalFromContext(r.Context())
			gomega.Expect(ok).To(gomega.BeTrue())
			w.Header().Set("X-Principal", principal.Username)
			w.WriteHeader(http.StatusOK)
		})
		guarded = handler.AuthMiddleware(rbac.Middleware(ReadAllUsers)(final))
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("should respond with the bare bearer string", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/user/login",
				strings.NewReader(`{"username":"admin","password":"correct_password"}`))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			var token string
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &token)).To(gomega.Succeed())
			gomega.Expect(token).To(gomega.HavePrefix("Bearer "))
		})

		ginkgo.It("should return 401 for wrong credentials", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/user/login",
				strings.NewReader(`{"username":"admin","password":"nope"}`))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(errorBody(rec)).To(gomega.Equal(internal.MsgInvalidCredentials))
		})

		ginkgo.It("should return 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"username":`))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("should always succeed", func() {
			rec := httptest.NewRecorder()
			handler.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/user/logout", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("Logged out successfully"))
		})
	})

	ginkgo.Describe("AuthMiddleware and RBAC", func() {
		serve := func(authorization string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/api/user/getAllUsers", nil)
			if authorization != "" {
				req.Header.Set("Authorization", authorization)
			}
			rec := httptest.NewRecorder()
			guarded.ServeHTTP(rec, req)
			return rec
		}

		ginkgo.It("should return 401 when the header is missing", func() {
			rec := serve("")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(errorBody(rec)).To(gomega.Equal(internal.MsgTokenMissing))
			gomega.Expect(reached).To(gomega.BeFalse())
		})

		ginkgo.It("should return 401 Invalid token for a Bearer prefix with no credential", func() {
			for _, header := range []string{"Bearer ", "Bearer    "} {
				rec := serve(header)

				gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized), header)
				gomega.Expect(errorBody(rec)).To(gomega.Equal(internal.MsgInvalidToken), header)
			}
			gomega.Expect(reached).To(gomega.BeFalse())
		})

		ginkgo.It("should treat a non-Bearer scheme as a missing token", func() {
			rec := serve("Basic YWRtaW46YWRtaW4=")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(errorBody(rec)).To(gomega.Equal(internal.MsgTokenMissing))
		})

		ginkgo.It("should return 401 for a token that does not verify", func() {
			rec := serve("Bearer garbage")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(errorBody(rec)).To(gomega.Equal(internal.MsgInvalidToken))
		})

		ginkgo.It("should return 401 when the token's user was deleted", func() {
			token := login("johndoe")
			delete(store.creds, "johndoe")

			rec := serve(token)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(errorBody(rec)).To(gomega.Equal(internal.MsgInvalidToken))
		})

		ginkgo.It("should return 403 when the role lacks the permission", func() {
			rec := serve(login("benstone"))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(errorBody(rec)).To(gomega.Equal(internal.MsgInsufficientPermission))
			gomega.Expect(reached).To(gomega.BeFalse())
		})

		ginkgo.It("should return 401 from RBAC when no principal was attached", func() {
			rec := httptest.NewRecorder()
			bare := rbac.Middleware(ReadAllUsers)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
			}))
			bare.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/getAllUsers", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(internal.ErrInvalidToken.StatusCode))
			gomega.Expect(errorBody(rec)).To(gomega.Equal(internal.MsgInvalidToken))
			gomega.Expect(reached).To(gomega.BeFalse())
		})

		ginkgo.It("should let ADMIN through and expose the principal", func() {
			rec := serve(login("admin"))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(reached).To(gomega.BeTrue())
			gomega.Expect(rec.Header().Get("X-Principal")).To(gomega.Equal("admin"))
		})

		ginkgo.It("should apply a permission grant without a new login", func() {
			token := login("benstone")
			store.creds["benstone"].Role.Permissions[ReadAllUsers] = struct{}{}

			rec := serve(token)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})
})
