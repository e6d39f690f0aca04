package grover

import (
	"encoding/json"
	"fmt"
	"os"
)

// Report maps register size to accuracy percent.
type Report map[int]float64

func NewReport(points []Point) Report {
	report := make(Report, len(points))
	for _, p := range points {
		report[p.Qubits] = p.Accuracy
	}
	return report
}

/*
WriteReport saves the report as an indented JSON object. encoding/json renders
the integer keys as strings in ascending order.
*/
func WriteReport(path string, report Report) error {
	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

func ReadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	report := Report{}
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	return report, nil
}
