package runner

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/conformlab/constcheck/check"
	"github.com/conformlab/constcheck/recording"
)

var _ = Describe("Runner", func() {
	var (
		mockCtrl *gomock.Controller
		recorder *MockRecorder
		buf      *bytes.Buffer
		r        *Runner
		captured []recording.RunRecord
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		recorder = NewMockRecorder(mockCtrl)
		buf = &bytes.Buffer{}
		captured = nil

		recorder.EXPECT().
			RecordRun(gomock.Any()).
			Do(func(rec recording.RunRecord) {
				captured = append(captured, rec)
			}).
			AnyTimes()
		recorder.EXPECT().Flush().Times(1)

		r = MakeBuilder().
			WithRecorder(recorder).
			WithWriter(buf).
			Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should record a passing run with its result", func() {
		summary := r.RunAll([]check.Params{
			{Bound: 10, Flag: 1, PowerValue: 4},
		})

		Expect(summary).To(Equal(Summary{Total: 1, Passed: 1}))
		Expect(captured).To(HaveLen(1))
		Expect(captured[0].Status).To(Equal(recording.StatusPass))
		Expect(captured[0].Result).To(BeNumerically("~", 7.425, 1e-12))
		Expect(buf.String()).To(Equal("7.425000\n"))
	})

	It("should record a violation and produce no output", func() {
		summary := r.RunAll([]check.Params{
			{Bound: 5, Flag: 1, PowerValue: 4},
		})

		Expect(summary).To(Equal(Summary{Total: 1, Violated: 1}))
		Expect(captured).To(HaveLen(1))
		Expect(captured[0].Status).To(Equal(recording.StatusViolation))
		Expect(captured[0].Detail).To(ContainSubstring("Bound"))
		Expect(buf.Len()).To(BeZero())
	})

	It("should keep running after a violation", func() {
		summary := r.RunAll([]check.Params{
			{Bound: 10, Flag: 1, PowerValue: 0},
			{Bound: 10, Flag: 1, PowerValue: 6},
			{Bound: 10, Flag: 1, PowerValue: 4},
		})

		Expect(summary).To(Equal(Summary{Total: 3, Passed: 1, Violated: 2}))
		Expect(summary.AllPassed()).To(BeFalse())
		Expect(captured).To(HaveLen(3))
		Expect(buf.String()).To(Equal("7.425000\n"))
	})

	It("should report an all-pass batch", func() {
		summary := r.RunAll([]check.Params{
			{Bound: 10, Flag: 1, PowerValue: 4},
			{Bound: 12, Flag: 0, PowerValue: 8},
		})

		Expect(summary.AllPassed()).To(BeTrue())
	})

	It("should flush an empty batch", func() {
		summary := r.RunAll(nil)

		Expect(summary).To(Equal(Summary{}))
		Expect(captured).To(BeEmpty())
	})
})

var _ = Describe("Builder", func() {
	It("should refuse to build without a recorder", func() {
		Expect(func() { MakeBuilder().Build() }).To(Panic())
	})
})
