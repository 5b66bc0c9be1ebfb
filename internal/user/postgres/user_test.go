package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/datamodel"
	roleDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/role"
	userDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/user"
	"github.com/frahmantamala/employee-management/internal/user"
	userPostgres "github.com/frahmantamala/employee-management/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

var _ = Describe("User PostgreSQL Repository", func() {
	var (
		ctx  context.Context
		db   *gorm.DB
		repo user.RepositoryAPI
	)

	newUser := func(username, roleName string) *userDatamodel.User {
		return &userDatamodel.User{
			Username:     username,
			PasswordHash: "$2a$04$placeholder",
			FirstName:    "First",
			LastName:     "Last",
			RoleName:     roleName,
		}
	}

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(db.AutoMigrate(datamodel.All()...)).To(Succeed())
		Expect(db.Create(&roleDatamodel.Role{Name: "EMPLOYEE"}).Error).To(Succeed())
		Expect(db.Create(&roleDatamodel.Role{Name: "HR MANAGER"}).Error).To(Succeed())

		repo = userPostgres.NewUserRepository(db)
	})

	Describe("Create and GetByUsername", func() {
		It("should round-trip a user", func() {
			dob := time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC)
			u := newUser("johndoe", "EMPLOYEE")
			u.DateOfBirth = &dob
			Expect(repo.Create(ctx, u)).To(Succeed())
			Expect(u.ID).To(BeNumerically(">", 0))

			stored, err := repo.GetByUsername(ctx, "johndoe")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).NotTo(BeNil())
			Expect(stored.RoleName).To(Equal("EMPLOYEE"))
			Expect(stored.DateOfBirth).NotTo(BeNil())
			Expect(stored.DateOfBirth.Equal(dob)).To(BeTrue())
		})

		It("should return nil for an unknown username", func() {
			stored, err := repo.GetByUsername(ctx, "ghost")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(BeNil())
		})

		It("should wrap a duplicate username as ErrDuplicateKey", func() {
			Expect(repo.Create(ctx, newUser("johndoe", "EMPLOYEE"))).To(Succeed())

			err := repo.Create(ctx, newUser("johndoe", "EMPLOYEE"))
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, internal.ErrDuplicateKey)).To(BeTrue())
		})
	})

	Describe("GetAll and GetByRoleName", func() {
		BeforeEach(func() {
			Expect(repo.Create(ctx, newUser("johndoe", "EMPLOYEE"))).To(Succeed())
			Expect(repo.Create(ctx, newUser("johnwick", "EMPLOYEE"))).To(Succeed())
			Expect(repo.Create(ctx, newUser("benstone", "HR MANAGER"))).To(Succeed())
		})

		It("should list every user in id order", func() {
			users, err := repo.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(3))
			Expect(users[0].Username).To(Equal("johndoe"))
			Expect(users[2].Username).To(Equal("benstone"))
		})

		It("should filter by role name", func() {
			users, err := repo.GetByRoleName(ctx, "EMPLOYEE")
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))

			users, err = repo.GetByRoleName(ctx, "ADMIN")
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		It("should persist changed fields", func() {
			u := newUser("johndoe", "EMPLOYEE")
			Expect(repo.Create(ctx, u)).To(Succeed())

			u.FirstName = "Johnny"
			u.RoleName = "HR MANAGER"
			Expect(repo.Update(ctx, u)).To(Succeed())

			stored, err := repo.GetByUsername(ctx, "johndoe")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.FirstName).To(Equal("Johnny"))
			Expect(stored.RoleName).To(Equal("HR MANAGER"))
		})
	})

	Describe("DeleteByID", func() {
		It("should report whether a row was removed", func() {
			u := newUser("johndoe", "EMPLOYEE")
			Expect(repo.Create(ctx, u)).To(Succeed())

			deleted, err := repo.DeleteByID(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			deleted, err = repo.DeleteByID(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeFalse())

			stored, err := repo.GetByUsername(ctx, "johndoe")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(BeNil())
		})
	})
})
