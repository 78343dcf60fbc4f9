package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dharsanguruparan/PaperProbe/internal/model"
	"github.com/dharsanguruparan/PaperProbe/internal/state"
)

// notificationPrinter writes each new notification to w as it is committed.
func notificationPrinter(w io.Writer) state.Listener {
	return func(prev, next state.Snapshot) {
		seen := make(map[int64]bool, len(prev.Notifications))
		for _, n := range prev.Notifications {
			seen[n.ID] = true
		}
		for _, n := range next.Notifications {
			if seen[n.ID] {
				continue
			}
			fmt.Fprintf(w, "[%s] %s: %s\n", n.Kind, n.Title, n.Message)
		}
	}
}

func writeJSON(w io.Writer, payload interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func printPaper(w io.Writer, p model.GeneratedPaper, hints bool) {
	fmt.Fprintln(w, p.Title)
	fmt.Fprintln(w, strings.Repeat("=", len(p.Title)))
	fmt.Fprintf(w, "\nAbstract\n%s\n", p.Abstract)
	fmt.Fprintf(w, "\nIntroduction\n%s\n", p.Introduction)
	d := p.Dataset
	fmt.Fprintf(w, "\nDataset: %s (%d samples, %d features)\n", d.Name, d.Samples, d.Features)
	fmt.Fprintf(w, "%s\n", d.Description)
	fmt.Fprintf(w, "Accuracy %s, precision %s, recall %s\n", d.Accuracy, d.Precision, d.Recall)
	if hints && len(p.DetectionHints) > 0 {
		fmt.Fprintln(w, "\nDetection hints")
		for _, h := range p.DetectionHints {
			fmt.Fprintf(w, "  - %s\n", h)
		}
	}
}

func printReport(w io.Writer, f model.FileRecord) {
	if f.Analysis == nil {
		msg := string(f.Status)
		if f.Message != "" {
			msg += ": " + f.Message
		}
		fmt.Fprintf(w, "%s: no result (%s)\n", f.Name, msg)
		return
	}
	r := f.Analysis
	fmt.Fprintf(w, "%s: %s (AI probability %.1f%%, confidence %.1f%%)\n",
		f.Name, r.Verdict, r.AIProbability, r.Confidence)
	if len(r.SuspiciousElements) > 0 {
		fmt.Fprintf(w, "  Suspicious: %s\n", strings.Join(r.SuspiciousElements, "; "))
	}
	m := r.Detailed
	fmt.Fprintf(w, "  Sentence complexity %.1f, vocabulary diversity %.1f, coherence %.1f\n",
		m.SentenceComplexity, m.VocabularyDiversity, m.CoherenceScore)
	fmt.Fprintf(w, "  Citation pattern %s, statistical claims %d\n", m.CitationPattern, m.StatisticalClaims)
	if md := f.Metadata; md != nil {
		fmt.Fprintf(w, "  %d words, %d lines, %s, about %d min to read\n",
			md.WordCount, md.LineCount, md.SizeFormatted, md.ReadingTime)
	}
}

func printPreferences(w io.Writer, p model.Preferences) error {
	return writeJSON(w, p)
}
