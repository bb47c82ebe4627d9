package cnfstat

import "testing"

func TestNoOpDiscardsObservations(t *testing.T) {
	// Exists purely to exercise the no-op path; nothing to assert beyond
	// "does not panic".
	NoOp.Record("somefile.go:1", 3)
}

func TestCallerTallyAccumulatesByCallSite(t *testing.T) {
	tally := NewCallerTally()
	recordHere(tally, 3)
	recordHere(tally, 2)
	recordElsewhere(tally, 5)

	entries := tally.Report()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	// recordHere was called twice (clauses 3+2=5 literals), recordElsewhere
	// once (5 literals); recordHere has more calls so it sorts first.
	if entries[0].Clauses != 2 {
		t.Errorf("entries[0].Clauses = %d, want 2", entries[0].Clauses)
	}
	if entries[0].Literals != 5 {
		t.Errorf("entries[0].Literals = %d, want 5", entries[0].Literals)
	}
	if entries[1].Clauses != 1 || entries[1].Literals != 5 {
		t.Errorf("entries[1] = %+v, want {Clauses:1 Literals:5 ...}", entries[1])
	}
}

func recordHere(r Recorder, literals int) {
	r.Record(CallSite(1), literals)
}

func recordElsewhere(r Recorder, literals int) {
	r.Record(CallSite(1), literals)
}

func TestCallSiteFormatsFileAndLine(t *testing.T) {
	site := CallSite(1)
	if site == "unknown" {
		t.Error("CallSite returned \"unknown\" for a valid call")
	}
	if len(site) == 0 || site[len(site)-1] < '0' || site[len(site)-1] > '9' {
		t.Errorf("CallSite() = %q, want it to end in a line number", site)
	}
}
