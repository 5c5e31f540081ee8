package domain

import "testing"

func TestRevieweeFromName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		reviewee string
		ok       bool
	}{
		{"to-B", "B", true},
		{"to-teamB.pdf", "teamB", true},
		{"to-team-7.tar.gz", "team-7", true},
		{"review.pdf", "", false},
		{"to-", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		reviewee, ok := RevieweeFromName(tc.name)
		if ok != tc.ok || reviewee != tc.reviewee {
			t.Errorf("RevieweeFromName(%q) = (%q, %v), want (%q, %v)", tc.name, reviewee, ok, tc.reviewee, tc.ok)
		}
	}
}

func TestAddressVariants(t *testing.T) {
	t.Parallel()

	structured := Submission{SubmissionName: "to-A", RevieweeTeamID: "A"}
	legacy := Submission{SubmissionName: "review-to-A-final.pdf"}
	other := Submission{SubmissionName: "to-B", RevieweeTeamID: "B"}
	// Misleading name, but the structured field is authoritative.
	misnamed := Submission{SubmissionName: "to-A.pdf", RevieweeTeamID: "B"}

	addresses := AddressesFor("A")
	if len(addresses) != 2 {
		t.Fatalf("expected structured and legacy variants, got %d", len(addresses))
	}
	for _, addr := range addresses {
		if addr.Reviewee() != "A" {
			t.Fatalf("reviewee = %q, want A", addr.Reviewee())
		}
	}
	if _, ok := addresses[0].(StructuredAddress); !ok {
		t.Fatalf("first variant should be structured, got %T", addresses[0])
	}
	if _, ok := addresses[1].(LegacyAddress); !ok {
		t.Fatalf("second variant should be legacy, got %T", addresses[1])
	}

	if !addresses[0].Matches(structured) {
		t.Errorf("structured variant should match the structured field")
	}
	if addresses[0].Matches(legacy) {
		t.Errorf("structured variant must not match a document without the field")
	}
	if !addresses[1].Matches(legacy) {
		t.Errorf("legacy variant should match the naming convention")
	}
	if addresses[0].Matches(other) || addresses[1].Matches(other) {
		t.Errorf("addresses for A must not match a submission addressed to B")
	}
	if addresses[1].Matches(misnamed) {
		t.Errorf("legacy variant must defer to a document's structured field")
	}
}

func TestAddressedTo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		sub    Submission
		teamID string
		want   bool
	}{
		{Submission{SubmissionName: "anything", RevieweeTeamID: "A"}, "A", true},
		{Submission{SubmissionName: "review-to-A-final.pdf"}, "A", true},
		{Submission{SubmissionName: "to-A.pdf", RevieweeTeamID: "B"}, "A", false},
		{Submission{SubmissionName: "to-B"}, "A", false},
	}
	for _, tc := range cases {
		if got := AddressedTo(tc.sub, tc.teamID); got != tc.want {
			t.Errorf("AddressedTo(%q/%q, %q) = %v, want %v",
				tc.sub.SubmissionName, tc.sub.RevieweeTeamID, tc.teamID, got, tc.want)
		}
	}
}

func TestSubmissionAndAnswerPaths(t *testing.T) {
	t.Parallel()

	got := SubmissionPath("CSC101", 1, "to-B.pdf")
	want := "courses/CSC101/1/peer-review-submissions/to-B.pdf"
	if got != want {
		t.Errorf("SubmissionPath = %q, want %q", got, want)
	}

	got = AnswerPath("CSC101", 1)
	want = "courses/CSC101/1/peer-review-submissions"
	if got != want {
		t.Errorf("AnswerPath = %q, want %q", got, want)
	}
}
