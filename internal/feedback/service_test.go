package feedback_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/grievance-management/internal"
	coreuser "github.com/frahmantamala/grievance-management/internal/core/user"
	"github.com/frahmantamala/grievance-management/internal/feedback"
)

func TestFeedback(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Feedback Module Suite")
}

// Mock repository for testing
type mockFeedbackRepository struct {
	entries     map[string]*feedback.Feedback
	createError error
}

func newMockFeedbackRepository() *mockFeedbackRepository {
	return &mockFeedbackRepository{entries: make(map[string]*feedback.Feedback)}
}

func (m *mockFeedbackRepository) Create(f *feedback.Feedback) error {
	if m.createError != nil {
		return m.createError
	}
	f.CreatedAt = time.Now()
	f.UpdatedAt = time.Now()
	m.entries[f.ID] = f
	return nil
}

func (m *mockFeedbackRepository) GetByID(id string) (*feedback.Feedback, error) {
	f, exists := m.entries[id]
	if !exists {
		return nil, errors.New("feedback not found")
	}
	return f, nil
}

func (m *mockFeedbackRepository) GetFiltered(filters feedback.Filters, limit, offset int) ([]*feedback.Feedback, error) {
	var out []*feedback.Feedback
	for _, f := range m.entries {
		if filters.Category != "" && f.Category != filters.Category {
			continue
		}
		if filters.Rating != 0 && f.Rating != filters.Rating {
			continue
		}
		if filters.UserID != nil && f.UserID != *filters.UserID {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (m *mockFeedbackRepository) Update(id string, fields map[string]interface{}) (*feedback.Feedback, error) {
	f, exists := m.entries[id]
	if !exists {
		return nil, errors.New("feedback not found")
	}
	if v, ok := fields["message"].(string); ok {
		f.Message = v
	}
	if v, ok := fields["rating"].(int); ok {
		f.Rating = v
	}
	if v, ok := fields["category"].(string); ok {
		f.Category = v
	}
	f.UpdatedAt = time.Now()
	return f, nil
}

func (m *mockFeedbackRepository) Delete(id string) error {
	if _, exists := m.entries[id]; !exists {
		return errors.New("feedback not found")
	}
	delete(m.entries, id)
	return nil
}

func (m *mockFeedbackRepository) Statistics(scopeUserID *int64) (*feedback.Statistics, error) {
	stats := &feedback.Statistics{RatingDistribution: make(map[int]int64)}
	var sum int64
	for _, f := range m.entries {
		if scopeUserID != nil && f.UserID != *scopeUserID {
			continue
		}
		stats.TotalFeedback++
		sum += int64(f.Rating)
		stats.RatingDistribution[f.Rating]++
	}
	if stats.TotalFeedback > 0 {
		stats.AverageRating = float64(sum) / float64(stats.TotalFeedback)
	}
	return stats, nil
}

var _ = Describe("FeedbackService", func() {
	var (
		service  *feedback.Service
		mockRepo *mockFeedbackRepository

		ownerUser   *coreuser.User
		otherUser   *coreuser.User
		staffUser   *coreuser.User
		managerUser *coreuser.User
		adminUser   *coreuser.User
	)

	BeforeEach(func() {
		mockRepo = newMockFeedbackRepository()
		ownerUser = &coreuser.User{ID: 1, Name: "Alice", Email: "alice@example.com", Role: coreuser.RoleUser}
		otherUser = &coreuser.User{ID: 2, Name: "Bob", Email: "bob@example.com", Role: coreuser.RoleUser}
		staffUser = &coreuser.User{ID: 3, Name: "Sam", Email: "sam@example.com", Role: coreuser.RoleStaff}
		managerUser = &coreuser.User{ID: 4, Name: "Mia", Email: "mia@example.com", Role: coreuser.RoleManager}
		adminUser = &coreuser.User{ID: 5, Name: "Ada", Email: "ada@example.com", Role: coreuser.RoleAdmin}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = feedback.NewService(mockRepo, logger)
	})

	submit := func(actor *coreuser.User) *feedback.Feedback {
		f, err := service.Create(actor, feedback.CreateFeedbackDTO{
			Message:  "The filter view is hard to find",
			Rating:   4,
			Category: "usability",
		})
		Expect(err).ToNot(HaveOccurred())
		return f
	}

	Describe("Create", func() {
		It("should create feedback with a generated id and denormalized user name", func() {
			f := submit(ownerUser)

			Expect(f.ID).ToNot(BeEmpty())
			Expect(f.UserID).To(Equal(ownerUser.ID))
			Expect(f.UserName).To(Equal(ownerUser.Name))
		})

		It("should round-trip message, rating and category through fetch by id", func() {
			f := submit(ownerUser)

			fetched, err := service.GetByID(ownerUser, f.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(fetched.Message).To(Equal(f.Message))
			Expect(fetched.Rating).To(Equal(f.Rating))
			Expect(fetched.Category).To(Equal(f.Category))
			Expect(fetched.UserID).To(Equal(f.UserID))
		})

		DescribeTable("rating validation at the boundaries",
			func(rating int, valid bool) {
				_, err := service.Create(ownerUser, feedback.CreateFeedbackDTO{
					Message:  "msg",
					Rating:   rating,
					Category: "other",
				})
				if valid {
					Expect(err).ToNot(HaveOccurred())
				} else {
					appErr, ok := internal.IsAppError(err)
					Expect(ok).To(BeTrue())
					Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRating))
				}
			},
			Entry("rating 0 is rejected", 0, false),
			Entry("rating 1 is accepted", 1, true),
			Entry("rating 5 is accepted", 5, true),
			Entry("rating 6 is rejected", 6, false),
		)

		It("should reject an unknown category", func() {
			_, err := service.Create(ownerUser, feedback.CreateFeedbackDTO{
				Message:  "msg",
				Rating:   3,
				Category: "pricing",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidCategory))
		})

		It("should reject an empty message", func() {
			_, err := service.Create(ownerUser, feedback.CreateFeedbackDTO{Rating: 3, Category: "other"})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetByID", func() {
		var existing *feedback.Feedback

		BeforeEach(func() {
			existing = submit(ownerUser)
		})

		It("should allow the owner to read their feedback", func() {
			f, err := service.GetByID(ownerUser, existing.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(f.ID).To(Equal(existing.ID))
		})

		It("should allow admin and manager to read anyone's feedback", func() {
			_, err := service.GetByID(adminUser, existing.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.GetByID(managerUser, existing.ID)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should deny staff access to another user's feedback", func() {
			_, err := service.GetByID(staffUser, existing.ID)

			Expect(err).To(Equal(internal.ErrAccessDenied))
		})

		It("should deny another regular user", func() {
			_, err := service.GetByID(otherUser, existing.ID)

			Expect(err).To(Equal(internal.ErrAccessDenied))
		})

		It("should return not found for an unknown id", func() {
			_, err := service.GetByID(ownerUser, "does-not-exist")

			Expect(err).To(Equal(internal.ErrFeedbackNotFound))
		})
	})

	Describe("Update", func() {
		var existing *feedback.Feedback

		BeforeEach(func() {
			existing = submit(ownerUser)
		})

		It("should let the owner update their feedback", func() {
			rating := 2
			f, err := service.Update(ownerUser, existing.ID, feedback.UpdateFeedbackDTO{Rating: &rating})

			Expect(err).ToNot(HaveOccurred())
			Expect(f.Rating).To(Equal(2))
		})

		It("should deny staff updating another user's feedback", func() {
			rating := 1
			_, err := service.Update(staffUser, existing.ID, feedback.UpdateFeedbackDTO{Rating: &rating})

			Expect(err).To(Equal(internal.ErrAccessDenied))
		})

		It("should reject an out-of-range rating on update", func() {
			rating := 6
			_, err := service.Update(ownerUser, existing.ID, feedback.UpdateFeedbackDTO{Rating: &rating})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRating))
		})
	})

	Describe("Delete", func() {
		var existing *feedback.Feedback

		BeforeEach(func() {
			existing = submit(ownerUser)
		})

		It("should let a manager delete anyone's feedback", func() {
			Expect(service.Delete(managerUser, existing.ID)).To(Succeed())

			_, err := service.GetByID(ownerUser, existing.ID)
			Expect(err).To(Equal(internal.ErrFeedbackNotFound))
		})

		It("should deny staff deleting another user's feedback", func() {
			err := service.Delete(staffUser, existing.ID)

			Expect(err).To(Equal(internal.ErrAccessDenied))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			submit(ownerUser)
			submit(ownerUser)
			submit(otherUser)
		})

		It("should pin non-moderators to their own entries", func() {
			entries, err := service.List(ownerUser, feedback.Filters{}, 50, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			for _, f := range entries {
				Expect(f.UserID).To(Equal(ownerUser.ID))
			}
		})

		It("should pin staff to their own entries as well", func() {
			entries, err := service.List(staffUser, feedback.Filters{}, 50, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})

		It("should return everything for a manager", func() {
			entries, err := service.List(managerUser, feedback.Filters{}, 50, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(HaveLen(3))
		})
	})

	Describe("GetStatistics", func() {
		BeforeEach(func() {
			submit(ownerUser)
			submit(ownerUser)
			submit(otherUser)
		})

		It("should aggregate every entry for an admin", func() {
			stats, err := service.GetStatistics(adminUser)

			Expect(err).ToNot(HaveOccurred())
			Expect(stats.TotalFeedback).To(Equal(int64(3)))
			Expect(stats.AverageRating).To(BeNumerically("==", 4))
		})

		It("should scope to the actor's own entries for everyone else", func() {
			stats, err := service.GetStatistics(ownerUser)

			Expect(err).ToNot(HaveOccurred())
			Expect(stats.TotalFeedback).To(Equal(int64(2)))
		})
	})
})
