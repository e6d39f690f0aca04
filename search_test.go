package grover

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOptimalIterations(t *testing.T) {
	Convey("Given register sizes", t, func() {
		Convey("Four qubits take three rounds", func() {
			So(OptimalIterations(4), ShouldEqual, 3)
		})

		Convey("The count truncates instead of rounding", func() {
			So(OptimalIterations(0), ShouldEqual, 0)   // 0.785
			So(OptimalIterations(1), ShouldEqual, 1)   // 1.110
			So(OptimalIterations(2), ShouldEqual, 1)   // 1.571
			So(OptimalIterations(3), ShouldEqual, 2)   // 2.221
			So(OptimalIterations(10), ShouldEqual, 25) // 25.13
		})
	})
}

func TestParseTarget(t *testing.T) {
	Convey("Given target labels", t, func() {
		Convey("A valid label is read most significant bit first", func() {
			index, err := ParseTarget(3, "101")
			So(err, ShouldBeNil)
			So(index, ShouldEqual, 5)

			index, err = ParseTarget(4, "0001")
			So(err, ShouldBeNil)
			So(index, ShouldEqual, 1)

			index, err = ParseTarget(0, "")
			So(err, ShouldBeNil)
			So(index, ShouldEqual, 0)
		})

		Convey("Labels of the wrong length are rejected", func() {
			_, err := ParseTarget(3, "10")
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)

			_, err = ParseTarget(3, "1010")
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("Labels outside the binary alphabet are rejected", func() {
			for _, label := range []string{"1a1", "012", " 01", "1-0"} {
				_, err := ParseTarget(3, label)
				So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			}
		})

		Convey("Negative register sizes are rejected", func() {
			_, err := ParseTarget(-1, "")
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})
	})
}

func TestSearch(t *testing.T) {
	Convey("Given a single qubit and no iterations", t, func() {
		dist, err := Search(1, "0", 0)

		Convey("The distribution stays uniform", func() {
			So(err, ShouldBeNil)
			So(dist, ShouldHaveLength, 2)
			So(dist[0], ShouldAlmostEqual, 0.5, 1e-12)
			So(dist[1], ShouldAlmostEqual, 0.5, 1e-12)
		})
	})

	Convey("Given two qubits and one iteration", t, func() {
		dist, err := Search(2, "11", 1)

		Convey("The target is found with certainty", func() {
			So(err, ShouldBeNil)
			So(dist.Probability(3), ShouldAlmostEqual, 1.0, 1e-12)
			So(dist.Probability(0), ShouldAlmostEqual, 0.0, 1e-12)
		})
	})

	Convey("Given four qubits and the default iteration count", t, func() {
		dist, err := Search(4, "1010", DefaultIterations)
		So(err, ShouldBeNil)

		Convey("The target dominates", func() {
			theta := math.Asin(0.25)
			want := math.Pow(math.Sin(7*theta), 2)

			So(dist.Probability(10), ShouldAlmostEqual, want, 1e-9)
			So(dist.Probability(10), ShouldBeGreaterThan, 0.95)
		})

		Convey("The distribution sums to one", func() {
			var sum float64
			for _, p := range dist {
				So(p, ShouldBeGreaterThanOrEqualTo, 0)
				sum += p
			}
			So(sum, ShouldAlmostEqual, 1.0, 1e-9)
		})
	})

	Convey("Given a malformed target", t, func() {
		dist, err := Search(3, "102", DefaultIterations)

		So(dist, ShouldBeNil)
		So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
	})

	Convey("Given out-of-range probabilities", t, func() {
		dist := Distribution{0.25, 0.75}

		So(dist.Probability(-1), ShouldEqual, 0)
		So(dist.Probability(2), ShouldEqual, 0)
	})
}

func TestDistribution(t *testing.T) {
	Convey("Given an all-zero amplitude vector", t, func() {
		_, err := Amplitudes{0, 0, 0, 0}.Distribution()
		So(errors.Is(err, ErrNumericDegeneracy), ShouldBeTrue)
	})

	Convey("Given a vector containing NaN", t, func() {
		_, err := Amplitudes{math.NaN(), 1}.Distribution()
		So(errors.Is(err, ErrNumericDegeneracy), ShouldBeTrue)
	})

	Convey("Given an unnormalised vector", t, func() {
		dist, err := Amplitudes{1, -1, 2}.Distribution()

		So(err, ShouldBeNil)
		So(dist[0], ShouldAlmostEqual, 1.0/6, 1e-12)
		So(dist[1], ShouldAlmostEqual, 1.0/6, 1e-12)
		So(dist[2], ShouldAlmostEqual, 4.0/6, 1e-12)
	})
}
