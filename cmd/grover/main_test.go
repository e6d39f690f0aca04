package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/grover"
)

func TestRun(t *testing.T) {
	Convey("Given a small sweep", t, func() {
		dir := t.TempDir()
		out := filepath.Join(dir, "report.json")

		args := []string{"-min", "2", "-max", "3", "-runs", "2", "-measure", "50", "-seed", "1", "-workers", "2", "-out", out}

		Convey("When running with the plot", func() {
			var buf bytes.Buffer
			So(run(args, &buf), ShouldBeNil)

			Convey("Progress is printed per point", func() {
				So(buf.String(), ShouldContainSubstring, "Qubits: 2, Failures: 0\n")
				So(buf.String(), ShouldContainSubstring, "Qubits: 3, Failures: ")
			})

			Convey("The plot follows the progress lines", func() {
				So(buf.String(), ShouldContainSubstring, "Mapping:\n2 Qubits: 100.00000\n")
			})

			Convey("The report is written", func() {
				report, err := grover.ReadReport(out)
				So(err, ShouldBeNil)
				So(report, ShouldContainKey, 2)
				So(report, ShouldContainKey, 3)
				So(report[2], ShouldEqual, 100)
			})
		})

		Convey("When running with metrics and no plot", func() {
			var buf bytes.Buffer
			So(run(append(args, "-plot=false", "-metrics"), &buf), ShouldBeNil)

			So(buf.String(), ShouldNotContainSubstring, "Mapping:")
			So(buf.String(), ShouldContainSubstring, "grover_trials_total 4")
		})
	})

	Convey("Given a config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		out := filepath.Join(dir, "from-file.json")

		body := "pool:\n  workers: 1\n  seed: 3\nsweep:\n  min_qubits: 1\n  max_qubits: 1\n  runs: 1\n  measure_count: 10\n  output: " + out + "\n"
		So(os.WriteFile(path, []byte(body), 0o644), ShouldBeNil)

		Convey("Flags set on the command line win over the file", func() {
			var buf bytes.Buffer
			So(run([]string{"-config", path, "-max", "2", "-plot=false"}, &buf), ShouldBeNil)

			report, err := grover.ReadReport(out)
			So(err, ShouldBeNil)
			So(report, ShouldHaveLength, 2)
		})
	})

	Convey("Given the logging flags", t, func() {
		Convey("Pool logging stays off by default", func() {
			cfg := &grover.FileConfig{Pool: *grover.NewConfig(), Sweep: *grover.NewSweepConfig()}
			opts, err := parseFlags([]string{}, cfg)
			So(err, ShouldBeNil)
			So(opts.debug, ShouldBeFalse)
			So(cfg.Pool.Verbose, ShouldBeFalse)
		})

		Convey("-debug switches pool logging on", func() {
			cfg := &grover.FileConfig{Pool: *grover.NewConfig(), Sweep: *grover.NewSweepConfig()}
			opts, err := parseFlags([]string{"-debug"}, cfg)
			So(err, ShouldBeNil)
			So(opts.debug, ShouldBeTrue)
			So(cfg.Pool.Verbose, ShouldBeTrue)
		})
	})

	Convey("Given invalid flags", t, func() {
		var buf bytes.Buffer

		Convey("A non-binary target is rejected", func() {
			err := run([]string{"-target", "2", "-out", ""}, &buf)
			So(errors.Is(err, grover.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("An inverted range is rejected", func() {
			err := run([]string{"-min", "4", "-max", "2", "-out", ""}, &buf)
			So(errors.Is(err, grover.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("Unknown flags are rejected", func() {
			So(run([]string{"-bogus"}, &buf), ShouldNotBeNil)
		})
	})
}
