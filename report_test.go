package grover

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestReport(t *testing.T) {
	Convey("Given sweep points", t, func() {
		points := []Point{
			{Qubits: 6, Accuracy: 99.5},
			{Qubits: 5, Accuracy: 99.25},
		}
		path := filepath.Join(t.TempDir(), "fail_by_qubit_count.json")

		Convey("When writing the report", func() {
			So(WriteReport(path, NewReport(points)), ShouldBeNil)

			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)

			Convey("Keys are strings in ascending order with four-space indent", func() {
				So(string(data), ShouldEqual, "{\n    \"5\": 99.25,\n    \"6\": 99.5\n}\n")
			})

			Convey("It reads back into the same mapping", func() {
				report, err := ReadReport(path)
				So(err, ShouldBeNil)
				So(report, ShouldResemble, Report{5: 99.25, 6: 99.5})
			})
		})

		Convey("When the directory does not exist", func() {
			err := WriteReport(filepath.Join(t.TempDir(), "missing", "r.json"), NewReport(points))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "failed to write report")
		})
	})

	Convey("Given a corrupt report file", t, func() {
		path := filepath.Join(t.TempDir(), "bad.json")
		So(os.WriteFile(path, []byte("{\"five\": 1}"), 0o644), ShouldBeNil)

		_, err := ReadReport(path)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "failed to decode report")
	})
}
