package auth

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	coreuser "github.com/frahmantamala/grievance-management/internal/core/user"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock UserRepository for testing
type mockUserRepository struct {
	usersByEmail map[string]*coreuser.User
	usersByID    map[int64]*coreuser.User
	createError  error
	nextID       int64
}

func newMockUserRepository() *mockUserRepository {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	existing := &coreuser.User{
		ID:           1,
		Name:         "Existing User",
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role:         coreuser.RoleUser,
		Department:   "Support",
	}

	return &mockUserRepository{
		usersByEmail: map[string]*coreuser.User{existing.Email: existing},
		usersByID:    map[int64]*coreuser.User{existing.ID: existing},
		nextID:       2,
	}
}

func (m *mockUserRepository) Create(u *coreuser.User) error {
	if m.createError != nil {
		return m.createError
	}
	u.ID = m.nextID
	m.nextID++
	m.usersByEmail[u.Email] = u
	m.usersByID[u.ID] = u
	return nil
}

func (m *mockUserRepository) GetByEmail(email string) (*coreuser.User, error) {
	u, exists := m.usersByEmail[email]
	if !exists {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByID(id int64) (*coreuser.User, error) {
	u, exists := m.usersByID[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) UpdatePassword(userID int64, passwordHash string) error {
	u, exists := m.usersByID[userID]
	if !exists {
		return ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator("test-secret-at-least-16-chars")
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = NewService(mockRepo, tokenGen, bcrypt.MinCost, logger)
	})

	ginkgo.Describe("Register", func() {
		ginkgo.It("should create the user and issue a token", func() {
			user, token, err := service.Register(RegisterDTO{
				Name:       "New User",
				Email:      "New@Example.com",
				Password:   "password123",
				Role:       "User",
				Department: "Support",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user.ID).To(gomega.BeNumerically(">", 0))
			gomega.Expect(user.Email).To(gomega.Equal("new@example.com"))
			gomega.Expect(user.Role).To(gomega.Equal("user"))
			gomega.Expect(token).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should reject a duplicate email", func() {
			_, _, err := service.Register(RegisterDTO{
				Name:       "Dup",
				Email:      "user@example.com",
				Password:   "password123",
				Role:       "user",
				Department: "Support",
			})

			gomega.Expect(err).To(gomega.Equal(ErrEmailTaken))
		})

		ginkgo.It("should reject a short password", func() {
			_, _, err := service.Register(RegisterDTO{
				Name:       "Short",
				Email:      "short@example.com",
				Password:   "short",
				Role:       "user",
				Department: "Support",
			})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.It("should return the user and a token for valid credentials", func() {
			user, token, err := service.Authenticate(LoginDTO{
				Email:    "user@example.com",
				Password: "correct_password",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user.ID).To(gomega.Equal(int64(1)))
			gomega.Expect(token).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should reject a wrong password", func() {
			_, _, err := service.Authenticate(LoginDTO{
				Email:    "user@example.com",
				Password: "wrong_password",
			})

			gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
		})

		ginkgo.It("should reject an unknown email with the same error as a wrong password", func() {
			_, _, err := service.Authenticate(LoginDTO{
				Email:    "nobody@example.com",
				Password: "correct_password",
			})

			gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
		})
	})

	ginkgo.Describe("Token round-trip", func() {
		ginkgo.It("should carry the subject user id through generate and validate", func() {
			token, err := tokenGen.GenerateToken(42)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := tokenGen.ValidateToken(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal(int64(42)))
			gomega.Expect(claims.Subject).To(gomega.Equal(strconv.FormatInt(42, 10)))
		})

		ginkgo.It("should report an expired token as expired, not invalid", func() {
			expiredGen := &JWTTokenGenerator{
				Secret:   tokenGen.Secret,
				TokenTTL: -time.Hour,
			}
			token, err := expiredGen.GenerateToken(42)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
		})

		ginkgo.It("should report a token signed with a different secret as invalid", func() {
			otherGen := NewJWTTokenGenerator("a-completely-different-secret")
			token, err := otherGen.GenerateToken(42)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should report garbage as invalid", func() {
			_, err := tokenGen.ValidateToken("not-a-jwt")

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("ResetPassword", func() {
		ginkgo.It("should replace the password so the new one authenticates", func() {
			err := service.ResetPassword(1, ResetPasswordDTO{Password: "brand_new_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, _, err = service.Authenticate(LoginDTO{
				Email:    "user@example.com",
				Password: "brand_new_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should fail for an unknown user id", func() {
			err := service.ResetPassword(999, ResetPasswordDTO{Password: "whatever123"})

			gomega.Expect(err).To(gomega.Equal(ErrUserNotFound))
		})
	})

	ginkgo.Describe("GetUserByID", func() {
		ginkgo.It("should resolve an existing user", func() {
			u, err := service.GetUserByID(1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.Email).To(gomega.Equal("user@example.com"))
		})

		ginkgo.It("should propagate not found", func() {
			_, err := service.GetUserByID(999)

			gomega.Expect(errors.Is(err, ErrUserNotFound)).To(gomega.BeTrue())
		})
	})
})
