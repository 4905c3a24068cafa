package uploads_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/grievance-management/internal/uploads"
)

func TestUploads(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Uploads Module Suite")
}

var _ = Describe("Store", func() {
	var (
		dir   string
		store *uploads.Store
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "uploads-test-*")
		Expect(err).ToNot(HaveOccurred())

		store, err = uploads.NewStore(dir, 64)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	Describe("Allowed", func() {
		DescribeTable("extension allowlist",
			func(filename string, expected bool) {
				Expect(uploads.Allowed(filename)).To(Equal(expected))
			},
			Entry("txt allowed", "notes.txt", true),
			Entry("pdf allowed", "evidence.pdf", true),
			Entry("png allowed", "photo.png", true),
			Entry("jpeg allowed", "photo.JPEG", true),
			Entry("docx allowed", "report.docx", true),
			Entry("exe rejected", "malware.exe", false),
			Entry("sh rejected", "script.sh", false),
			Entry("no extension rejected", "README", false),
		)
	})

	Describe("Save", func() {
		It("should store the file under a uuid-prefixed name", func() {
			storedName, err := store.Save("photo.png", strings.NewReader("fake image bytes"))

			Expect(err).ToNot(HaveOccurred())
			Expect(storedName).To(HaveSuffix("_photo.png"))
			Expect(storedName).ToNot(Equal("photo.png"))

			content, err := os.ReadFile(filepath.Join(dir, storedName))
			Expect(err).ToNot(HaveOccurred())
			Expect(string(content)).To(Equal("fake image bytes"))
		})

		It("should give two saves of the same filename distinct stored names", func() {
			first, err := store.Save("doc.pdf", strings.NewReader("one"))
			Expect(err).ToNot(HaveOccurred())

			second, err := store.Save("doc.pdf", strings.NewReader("two"))
			Expect(err).ToNot(HaveOccurred())

			Expect(first).ToNot(Equal(second))
		})

		It("should reject a disallowed extension", func() {
			_, err := store.Save("script.sh", strings.NewReader("#!/bin/sh"))

			Expect(err).To(Equal(uploads.ErrFileNotAllowed))
		})

		It("should reject a file over the size limit and leave nothing on disk", func() {
			_, err := store.Save("big.txt", strings.NewReader(strings.Repeat("x", 65)))

			Expect(err).To(HaveOccurred())

			entries, err := os.ReadDir(dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})

	Describe("Path", func() {
		It("should resolve a stored file", func() {
			storedName, err := store.Save("notes.txt", strings.NewReader("hello"))
			Expect(err).ToNot(HaveOccurred())

			p, err := store.Path(storedName)
			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal(filepath.Join(dir, storedName)))
		})

		It("should reject names with path separators", func() {
			_, err := store.Path("../etc/passwd")

			Expect(err).To(Equal(uploads.ErrInvalidName))
		})

		It("should return not found for an unknown name", func() {
			_, err := store.Path("missing.txt")

			Expect(err).To(Equal(uploads.ErrNotFound))
		})
	})

	Describe("IsImage", func() {
		It("should accept image extensions and reject documents", func() {
			Expect(uploads.IsImage("a.png")).To(BeTrue())
			Expect(uploads.IsImage("a.jpg")).To(BeTrue())
			Expect(uploads.IsImage("a.pdf")).To(BeFalse())
			Expect(uploads.IsImage("a.txt")).To(BeFalse())
		})
	})
})
