package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Role policy", func() {
	const (
		ownerID = int64(1)
		otherID = int64(2)
	)

	ginkgo.Describe("grievance access", func() {
		ginkgo.DescribeTable("read",
			func(role string, actorID int64, expected bool) {
				gomega.Expect(CanReadGrievance(role, actorID, ownerID)).To(gomega.Equal(expected))
			},
			ginkgo.Entry("owner with role user can read", "user", ownerID, true),
			ginkgo.Entry("other user cannot read", "user", otherID, false),
			ginkgo.Entry("staff can read regardless of ownership", "staff", otherID, true),
			ginkgo.Entry("manager can read regardless of ownership", "manager", otherID, true),
			ginkgo.Entry("admin can read regardless of ownership", "admin", otherID, true),
			ginkgo.Entry("role comparison is case-insensitive", "Admin", otherID, true),
		)

		ginkgo.DescribeTable("update",
			func(role string, actorID int64, expected bool) {
				gomega.Expect(CanUpdateGrievance(role, actorID, ownerID)).To(gomega.Equal(expected))
			},
			ginkgo.Entry("owner can update", "user", ownerID, true),
			ginkgo.Entry("other user cannot update", "user", otherID, false),
			ginkgo.Entry("staff can update regardless of ownership", "staff", otherID, true),
		)
	})

	ginkgo.Describe("feedback access", func() {
		ginkgo.It("keeps the staff asymmetry: staff updates grievances but not others' feedback", func() {
			gomega.Expect(CanUpdateGrievance("staff", otherID, ownerID)).To(gomega.BeTrue())
			gomega.Expect(CanAccessFeedback("staff", otherID, ownerID)).To(gomega.BeFalse())
		})

		ginkgo.DescribeTable("read/update/delete",
			func(role string, actorID int64, expected bool) {
				gomega.Expect(CanAccessFeedback(role, actorID, ownerID)).To(gomega.Equal(expected))
			},
			ginkgo.Entry("owner can access", "user", ownerID, true),
			ginkgo.Entry("other user cannot access", "user", otherID, false),
			ginkgo.Entry("staff cannot access", "staff", otherID, false),
			ginkgo.Entry("manager can access", "manager", otherID, true),
			ginkgo.Entry("admin can access", "admin", otherID, true),
		)
	})

	ginkgo.Describe("statistics scope", func() {
		ginkgo.It("gives only admin the global view", func() {
			gomega.Expect(SeesAllStatistics("admin")).To(gomega.BeTrue())
			gomega.Expect(SeesAllStatistics("ADMIN")).To(gomega.BeTrue())
			gomega.Expect(SeesAllStatistics("manager")).To(gomega.BeFalse())
			gomega.Expect(SeesAllStatistics("staff")).To(gomega.BeFalse())
			gomega.Expect(SeesAllStatistics("user")).To(gomega.BeFalse())
		})
	})
})
