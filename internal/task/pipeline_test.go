package task_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/physgen/gravgen/internal/config"
	"github.com/physgen/gravgen/internal/storage"
	"github.com/physgen/gravgen/internal/task"
)

var _ = Describe("Generator", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.GenerateVideos = false
	})

	It("produces a full-length trajectory for every task", func() {
		gen, err := task.NewGenerator(cfg, 99, nil)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 5; i++ {
			pair, err := gen.GenerateTask("t")
			Expect(err).NotTo(HaveOccurred())
			Expect(pair.Trajectory).To(HaveLen(cfg.Steps()))
		}
	})

	It("keeps sampled parameters inside the configured ranges", func() {
		gen, err := task.NewGenerator(cfg, 3, nil)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 20; i++ {
			pair, err := gen.GenerateTask("t")
			Expect(err).NotTo(HaveOccurred())
			sc := pair.Scenario
			Expect(sc.Height).To(And(
				BeNumerically(">=", cfg.Ranges.MinHeight),
				BeNumerically("<=", cfg.Ranges.MaxHeight)))
			Expect(sc.Velocity).To(And(
				BeNumerically(">=", cfg.Ranges.MinVelocity),
				BeNumerically("<=", cfg.Ranges.MaxVelocity)))
			Expect(sc.Gravity).To(And(
				BeNumerically(">=", cfg.Ranges.MinGravity),
				BeNumerically("<=", cfg.Ranges.MaxGravity)))
		}
	})

	It("computes metrics for every task", func() {
		gen, err := task.NewGenerator(cfg, 12, nil)
		Expect(err).NotTo(HaveOccurred())

		pair, err := gen.GenerateTask("t")
		Expect(err).NotTo(HaveOccurred())
		Expect(pair.Metrics).To(HaveKey("peak_height"))
		Expect(pair.Metrics).To(HaveKey("bounce_count"))
		Expect(pair.Metrics["peak_height"]).To(BeNumerically(">=", cfg.Ranges.MinHeight))
	})

	It("rejects a config with an inverted range", func() {
		cfg.Ranges.MinGravity = 20
		cfg.Ranges.MaxGravity = 10
		_, err := task.NewGenerator(cfg, 1, nil)
		Expect(err).To(HaveOccurred())
	})

	It("renders stills sized to the configured image", func() {
		gen, err := task.NewGenerator(cfg, 5, nil)
		Expect(err).NotTo(HaveOccurred())

		pair, err := gen.GenerateTask("t")
		Expect(err).NotTo(HaveOccurred())
		Expect(pair.FirstImage.Bounds().Dx()).To(Equal(cfg.ImageWidth))
		Expect(pair.FirstImage.Bounds().Dy()).To(Equal(cfg.ImageHeight))
		Expect(pair.FinalImage.Bounds().Dx()).To(Equal(cfg.ImageWidth))
	})
})

var _ = Describe("Batch", func() {
	It("stores one directory per generated task", func() {
		cfg := config.DefaultConfig()
		cfg.GenerateVideos = false
		cfg.NumSamples = 3

		st := storage.New(GinkgoT().TempDir())
		Expect(st.Init()).To(Succeed())

		batch := task.NewBatch(cfg, st, 3, 7)
		pairs, err := batch.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(pairs).To(HaveLen(3))

		tasks, err := st.List()
		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(HaveLen(3))
	})
})
