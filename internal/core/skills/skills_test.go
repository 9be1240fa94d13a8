package skills_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/satriajanaka/workforce-management/internal/core/skills"
)

func TestSkills(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Skills Suite")
}

var _ = Describe("Parse", func() {
	It("should trim, lower-case and split on commas", func() {
		set := skills.Parse(" Python ,  SQL,Go ")
		Expect(set).To(Equal(skills.Set{"python", "sql", "go"}))
	})

	It("should drop duplicate labels", func() {
		set := skills.Parse("python, Python, PYTHON, sql")
		Expect(set).To(Equal(skills.Set{"python", "sql"}))
	})

	It("should drop empty labels", func() {
		set := skills.Parse("python,, ,sql,")
		Expect(set).To(Equal(skills.Set{"python", "sql"}))
	})

	It("should return an empty set for blank input", func() {
		Expect(skills.Parse("").IsEmpty()).To(BeTrue())
		Expect(skills.Parse("   ").IsEmpty()).To(BeTrue())
	})
})

var _ = Describe("Set", func() {
	Describe("Intersect", func() {
		It("should return common labels in receiver order", func() {
			required := skills.Parse("python, sql, docker")
			candidate := skills.Parse("docker, java, python")
			Expect(required.Intersect(candidate)).To(Equal(skills.Set{"python", "docker"}))
		})

		It("should return an empty set when nothing overlaps", func() {
			Expect(skills.Parse("go").Intersect(skills.Parse("java")).IsEmpty()).To(BeTrue())
		})
	})

	Describe("String", func() {
		It("should render the delimited display form", func() {
			Expect(skills.Parse("Python, SQL").String()).To(Equal("python, sql"))
		})
	})
})
