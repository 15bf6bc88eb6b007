package config_test

import (
	"bytes"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"

	"github.com/angeloszaimis/kube-healthcheck/config"
)

var _ = Describe("Config", func() {
	var output *bytes.Buffer

	BeforeEach(func() {
		output = &bytes.Buffer{}
	})

	load := func(args ...string) (*config.Config, error) {
		return config.Load("kube-healthcheck", args, output)
	}

	Describe("Load", func() {
		Context("with only a URL", func() {
			It("should apply the defaults", func() {
				cfg, err := load("http://localhost:8080/healthz")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.URL).To(Equal("http://localhost:8080/healthz"))
				Expect(cfg.Delay).To(Equal(15))
				Expect(cfg.FailureThreshold).To(Equal(3))
				Expect(cfg.Timeout).To(Equal(10))
				Expect(cfg.LogLevel).To(Equal(config.LogLevelWarn))
				Expect(cfg.LogFormat).To(Equal(config.LogFormatText))
				Expect(cfg.Color).To(Equal(config.ColorAuto))
			})

			It("should expose the parsed target and durations", func() {
				cfg, err := load("https://example.com/api/health")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Target().Host).To(Equal("example.com"))
				Expect(cfg.Target().Path).To(Equal("/api/health"))
				Expect(cfg.DelayDuration()).To(Equal(15 * time.Second))
				Expect(cfg.TimeoutDuration()).To(Equal(10 * time.Second))
			})

			It("should not print anything", func() {
				_, err := load("http://localhost:8080")
				Expect(err).NotTo(HaveOccurred())
				Expect(output.String()).To(BeEmpty())
			})
		})

		Context("with flags", func() {
			It("should parse long flags", func() {
				cfg, err := load("--delay", "5", "--failure-threshold", "1", "--timeout", "2", "http://localhost:8080")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Delay).To(Equal(5))
				Expect(cfg.FailureThreshold).To(Equal(1))
				Expect(cfg.Timeout).To(Equal(2))
			})

			It("should parse short flags", func() {
				cfg, err := load("-d", "1", "-f", "5", "-t", "3", "http://localhost:8080")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Delay).To(Equal(1))
				Expect(cfg.FailureThreshold).To(Equal(5))
				Expect(cfg.Timeout).To(Equal(3))
			})

			It("should accept flags after the URL", func() {
				cfg, err := load("http://localhost:8080", "-d", "0")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Delay).To(BeZero())
				Expect(cfg.DelayDuration()).To(BeZero())
			})

			It("should parse the ambient flags", func() {
				cfg, err := load("--log-level", "debug", "--log-format", "json", "--color", "never", "http://localhost:8080")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.LogLevel).To(Equal(config.LogLevelDebug))
				Expect(cfg.LogFormat).To(Equal(config.LogFormatJSON))
				Expect(cfg.Color).To(Equal(config.ColorNever))
			})
		})

		Context("with help", func() {
			It("should return ErrHelp and print usage", func() {
				cfg, err := load("--help")
				Expect(errors.Is(err, pflag.ErrHelp)).To(BeTrue())
				Expect(cfg).To(BeNil())
				Expect(output.String()).To(ContainSubstring("--failure-threshold"))
				Expect(output.String()).To(ContainSubstring("<url>"))
			})
		})

		Context("with invalid input", func() {
			It("should reject a missing URL", func() {
				cfg, err := load()
				Expect(errors.Is(err, config.ErrUsage)).To(BeTrue())
				Expect(cfg).To(BeNil())
				Expect(output.String()).To(ContainSubstring("Usage:"))
			})

			It("should reject more than one URL", func() {
				_, err := load("http://a.example.com", "http://b.example.com")
				Expect(errors.Is(err, config.ErrUsage)).To(BeTrue())
			})

			It("should reject a non-numeric flag value", func() {
				cfg, err := load("-d", "soon", "http://localhost:8080")
				Expect(err).To(HaveOccurred())
				Expect(cfg).To(BeNil())
				Expect(output.String()).To(ContainSubstring("Usage:"))
			})

			It("should reject an unknown flag", func() {
				_, err := load("--method", "POST", "http://localhost:8080")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	DescribeTable("rejected configurations",
		func(args ...string) {
			cfg, err := config.Load("kube-healthcheck", args, output)
			Expect(err).To(HaveOccurred())
			Expect(cfg).To(BeNil())
		},
		Entry("not a URL", "not-a-url"),
		Entry("relative path", "/healthz"),
		Entry("unsupported scheme", "ftp://example.com/file"),
		Entry("missing host", "http:///healthz"),
		Entry("zero failure threshold", "-f", "0", "http://localhost:8080"),
		Entry("negative failure threshold", "-f", "-2", "http://localhost:8080"),
		Entry("zero timeout", "-t", "0", "http://localhost:8080"),
		Entry("negative delay", "-d", "-1", "http://localhost:8080"),
		Entry("delay overflowing a duration", "-d", "10000000000", "http://localhost:8080"),
		Entry("timeout overflowing a duration", "-t", "10000000000", "http://localhost:8080"),
		Entry("unknown log level", "--log-level", "trace", "http://localhost:8080"),
		Entry("unknown log format", "--log-format", "xml", "http://localhost:8080"),
		Entry("unknown color mode", "--color", "rainbow", "http://localhost:8080"),
	)

	Describe("Validate", func() {
		var cfg *config.Config

		BeforeEach(func() {
			cfg = &config.Config{
				URL:              "http://localhost:8080/healthz",
				Delay:            15,
				FailureThreshold: 3,
				Timeout:          10,
				LogLevel:         config.LogLevelWarn,
				LogFormat:        config.LogFormatText,
				Color:            config.ColorAuto,
			}
		})

		It("should accept a complete config", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should name the offending field", func() {
			cfg.FailureThreshold = -1
			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("failure-threshold"))
		})

		It("should accept the largest representable delay and timeout", func() {
			cfg.Delay = config.MaxSeconds
			cfg.Timeout = config.MaxSeconds
			Expect(cfg.Validate()).To(Succeed())
			Expect(cfg.DelayDuration()).To(BeNumerically(">", 0))
			Expect(cfg.TimeoutDuration()).To(BeNumerically(">", 0))
		})

		It("should reject a delay one past the limit", func() {
			cfg.Delay = config.MaxSeconds + 1
			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("delay"))
		})

		It("should require a URL", func() {
			cfg.URL = ""
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should leave the target unset outside Load", func() {
			Expect(cfg.Target()).To(BeNil())
		})
	})
})
