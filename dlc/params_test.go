package dlc

import "testing"

func TestComputeOptimalParamsDegenerate(t *testing.T) {
	p, b, err := ComputeOptimalParams(12, 1, 1, false)
	if err != nil {
		t.Fatalf("ComputeOptimalParams: %v", err)
	}
	if p != 0.5 {
		t.Fatalf("expected p=0.5 for the degenerate case, got %v", p)
	}
	if b != 12 {
		t.Fatalf("expected B=ceil(s)=12, got %d", b)
	}
}

func TestParamsMonotoneHalvesAnticipations(t *testing.T) {
	params := Params{NOutcomes: 16, NOracles: 4, Monotone: false}
	monotoneParams := Params{NOutcomes: 16, NOracles: 4, Monotone: true}
	if monotoneParams.NAnticipationsPerOracle()*2 != params.NAnticipationsPerOracle() {
		t.Fatalf("monotone mode should halve anticipations per oracle: got %d vs %d",
			monotoneParams.NAnticipationsPerOracle(), params.NAnticipationsPerOracle())
	}
}

func TestParamsDerivedSizesConsistent(t *testing.T) {
	p, b, err := ComputeOptimalParams(20, 8, 3, false)
	if err != nil {
		t.Fatalf("ComputeOptimalParams: %v", err)
	}
	params := Params{NOutcomes: 8, NOracles: 3, P: p, B: b, Monotone: false}
	if params.NB() != params.B*params.NAnticipationsPerOracle()*params.NOracles {
		t.Fatalf("NB inconsistent with B*E*O")
	}
	if params.M() < params.NB() {
		t.Fatalf("M must be >= NB")
	}
	if params.NumOpenings() != params.M()-params.NB() {
		t.Fatalf("NumOpenings inconsistent")
	}
}
