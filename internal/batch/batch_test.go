package batch

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"artalign/internal/article"
	"artalign/internal/classify"
)

func coll(docs ...[]string) article.Collection {
	return article.FromSentences(docs)
}

func TestWindows(t *testing.T) {
	tests := []struct {
		n, size int
		want    []Window
	}{
		{0, 500, nil},
		{3, 500, []Window{{1, 0, 3}}},
		{1001, 500, []Window{{1, 0, 500}, {2, 500, 1000}, {3, 1000, 1001}}},
		{4, 2, []Window{{1, 0, 2}, {2, 2, 4}}},
		{2, 0, []Window{{1, 0, 2}}},
	}
	for _, tt := range tests {
		got := Windows(tt.n, tt.size)
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("Windows(%d, %d) = %v, want %v", tt.n, tt.size, got, tt.want)
		}
	}
}

func TestDeduplicateKeepsBestClaim(t *testing.T) {
	in := []Alignment{
		{Batch: 1, SourceIndex: 0, TargetIndex: 7, SourceID: "S1", TargetID: "T", Scores: classify.Scores{BLEU: 0.6}},
		{Batch: 2, SourceIndex: 500, TargetIndex: 7, SourceID: "S2", TargetID: "T", Scores: classify.Scores{BLEU: 0.4}},
		{Batch: 2, SourceIndex: 501, TargetIndex: 3, SourceID: "S3", TargetID: "U", Scores: classify.Scores{BLEU: 0.2}},
	}
	out, dropped := Deduplicate(in)
	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
	if len(out) != 2 || out[0].SourceID != "S1" || out[1].SourceID != "S3" {
		t.Fatalf("unexpected result: %+v", out)
	}

	again, droppedAgain := Deduplicate(out)
	if droppedAgain != 0 || !reflect.DeepEqual(again, out) {
		t.Fatalf("deduplication is not idempotent: %+v (dropped %d)", again, droppedAgain)
	}
}

func TestDeduplicateTieKeepsLowerSource(t *testing.T) {
	in := []Alignment{
		{Batch: 2, SourceIndex: 9, TargetIndex: 1, Scores: classify.Scores{BLEU: 0.5}},
		{Batch: 1, SourceIndex: 2, TargetIndex: 1, Scores: classify.Scores{BLEU: 0.5}},
	}
	out, _ := Deduplicate(in)
	if len(out) != 1 || out[0].SourceIndex != 2 {
		t.Fatalf("unexpected tie winner: %+v", out)
	}
}

func TestDeduplicateEmpty(t *testing.T) {
	out, dropped := Deduplicate(nil)
	if out != nil || dropped != 0 {
		t.Fatalf("unexpected result for empty input: %v %d", out, dropped)
	}
}

func TestRunExactMatch(t *testing.T) {
	in := Input{
		Source:      coll([]string{"src.txt", "Der Bundesrat beschliesst."}),
		Translation: coll([]string{"src.txt", "The Federal Council decides."}),
		Target:      coll([]string{"trg.txt", "The Federal Council decides."}),
	}
	res, err := New(Options{}).Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(res.Alignments) != 1 {
		t.Fatalf("expected one alignment, got %+v", res.Alignments)
	}
	a := res.Alignments[0]
	if a.SourceID != "src.txt" || a.TargetID != "trg.txt" {
		t.Fatalf("unexpected ids: %+v", a)
	}
	if a.Label != classify.LabelParallel || a.Method != classify.MethodBLEU || a.BLEU() <= 0.1 {
		t.Fatalf("unexpected classification: %+v", a)
	}
	if res.Candidates != 1 || res.Batches != 1 || res.Dropped != 0 {
		t.Fatalf("unexpected counters: %+v", res)
	}
}

func TestRunEmptyTarget(t *testing.T) {
	in := Input{
		Source:      coll([]string{"a", "Text."}, []string{"b", "Mehr Text."}),
		Translation: coll([]string{"a", "Text."}, []string{"b", "More text."}),
	}
	res, err := New(Options{}).Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(res.Alignments) != 0 || res.Candidates != 0 {
		t.Fatalf("expected no alignments, got %+v", res)
	}
}

func TestRunRejectsMismatchedTranslation(t *testing.T) {
	in := Input{
		Source:      coll([]string{"a", "x"}, []string{"b", "y"}),
		Translation: coll([]string{"a", "x"}),
		Target:      coll([]string{"t", "x"}),
	}
	_, err := New(Options{}).Run(context.Background(), in)
	if !errors.Is(err, ErrCollectionMismatch) {
		t.Fatalf("expected ErrCollectionMismatch, got %v", err)
	}
}

type recordingObserver struct {
	mu         sync.Mutex
	batches    []int
	decisions  int
	dropped    int
	dedupCalls int
}

func (r *recordingObserver) BatchDone(w Window, _ int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, w.Index)
}

func (r *recordingObserver) Classified(classify.Decision) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions++
}

func (r *recordingObserver) Deduplicated(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropped += n
	r.dedupCalls++
}

func TestRunDeduplicatesAcrossBatches(t *testing.T) {
	in := Input{
		Source: coll(
			[]string{"s1", "Der Bundesrat beschliesst heute das neue Eisenbahngesetz."},
			[]string{"s2", "Der Bundesrat beschliesst das Budget."},
		),
		Translation: coll(
			[]string{"s1", "the federal council decides on the new railway law today."},
			[]string{"s2", "the federal council decides on the budget."},
		),
		Target: coll([]string{"t", "the federal council decides on the new railway law today."}),
	}
	obs := &recordingObserver{}
	res, err := New(Options{WindowSize: 1, Workers: 2, Observer: obs}).Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(res.Alignments) != 1 || res.Alignments[0].SourceID != "s1" {
		t.Fatalf("expected only s1 to keep the target, got %+v", res.Alignments)
	}
	if res.Dropped != 1 || res.Batches != 2 || res.Candidates != 2 {
		t.Fatalf("unexpected counters: %+v", res)
	}
	if len(obs.batches) != 2 || obs.decisions != 2 || obs.dedupCalls != 1 || obs.dropped != 1 {
		t.Fatalf("unexpected observer state: %+v", obs)
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := Input{
		Source:      coll([]string{"a", "x y z"}),
		Translation: coll([]string{"a", "x y z"}),
		Target:      coll([]string{"t", "x y z"}),
	}
	if _, err := New(Options{}).Run(ctx, in); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPairBooksCountMismatch(t *testing.T) {
	books := []article.Book{{Name: "a"}}
	if _, err := PairBooks(books, books, nil); !errors.Is(err, ErrBookCountMismatch) {
		t.Fatalf("expected ErrBookCountMismatch, got %v", err)
	}
}

func TestRunBooksKeepsOrder(t *testing.T) {
	mk := func(name, text string) article.Book {
		return article.Book{Name: name, Articles: coll([]string{name + "/1", text})}
	}
	source := []article.Book{mk("1900_de", "Erster Artikel."), mk("1901_de", "Zweiter Artikel.")}
	translation := []article.Book{mk("1900_de", "the first article of the year."), mk("1901_de", "the second article of the year.")}
	target := []article.Book{mk("1900_fr", "the first article of the year."), mk("1901_fr", "the second article of the year.")}

	jobs, err := PairBooks(source, translation, target)
	if err != nil {
		t.Fatalf("PairBooks returned error: %v", err)
	}
	results, err := New(Options{Workers: 2}).RunBooks(context.Background(), jobs)
	if err != nil {
		t.Fatalf("RunBooks returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected two results, got %d", len(results))
	}
	for i, want := range []string{"1900_de", "1901_de"} {
		r := results[i]
		if r.Job.Name != want {
			t.Fatalf("result %d is for %q, want %q", i, r.Job.Name, want)
		}
		if len(r.Result.Alignments) != 1 || r.Result.Alignments[0].Label != classify.LabelParallel {
			t.Fatalf("book %s: unexpected alignments %+v", want, r.Result.Alignments)
		}
	}
	if results[1].Job.TargetName != "1901_fr" {
		t.Fatalf("unexpected target name %q", results[1].Job.TargetName)
	}
}
