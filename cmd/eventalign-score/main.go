package main

// eventalign-score aligns segmented pore events against a candidate
// nucleotide sequence and reports per-read alignment scores.
//
// The model file is a "kmer<TAB>level_mean<TAB>level_stdv" table (optionally
// gzipped). The events file is a "read<TAB>index<TAB>mean<TAB>stdv<TAB>start"
// table; rows are grouped by read name in file order. Every read is scored
// against -sequence independently, so reads run in parallel.
//
// Example:
//
//    eventalign-score -model r9.model -events events.tsv -sequence ACGTACCA

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/pkg/errors"

	"github.com/strandlab/eventalign/hmm"
	"github.com/strandlab/eventalign/pore"
)

type scoreFlags struct {
	modelPath  string
	eventsPath string
	sequence   string
	strand     string
	algorithm  string
	global     bool
}

// readEvents is the event window of one read, in file order.
type readEvents struct {
	name   string
	events []pore.Event
}

// loadEvents reads the per-read event table, preserving the order in which
// read names first appear.
func loadEvents(path string) ([]readEvents, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open events")
	}
	defer f.Close() // nolint: errcheck

	var (
		reads []readEvents
		index = map[string]int{}
	)
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		if len(text) == 0 || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "read") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 5 {
			return nil, errors.Errorf("%s:%d: expected 'read<TAB>index<TAB>mean<TAB>stdv<TAB>start', found %q", path, line, text)
		}
		var ev pore.Event
		if ev.Mean, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return nil, errors.Wrapf(err, "%s:%d: event mean", path, line)
		}
		if ev.Stdv, err = strconv.ParseFloat(fields[3], 64); err != nil {
			return nil, errors.Wrapf(err, "%s:%d: event stdv", path, line)
		}
		if ev.Start, err = strconv.ParseFloat(fields[4], 64); err != nil {
			return nil, errors.Wrapf(err, "%s:%d: event start", path, line)
		}
		name := fields[0]
		i, ok := index[name]
		if !ok {
			i = len(reads)
			index[name] = i
			reads = append(reads, readEvents{name: name})
		}
		reads[i].events = append(reads[i].events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if len(reads) == 0 {
		return nil, errors.Errorf("%s: no event lines found", path)
	}
	return reads, nil
}

func parseStrand(s string) pore.Strand {
	switch s {
	case "template":
		return pore.Template
	case "complement":
		return pore.Complement
	}
	log.Fatalf("unknown strand %q, want template or complement", s)
	return pore.Template
}

type result struct {
	forward  float32
	viterbi  float32
	pathLen  int
	numKmers int
}

func scoreRead(seq string, in hmm.Input, flags scoreFlags) result {
	numRows := in.NumEvents() + 1
	numCols := (in.NumKmers(seq) + 2) * hmm.NumStates
	res := result{numKmers: in.NumKmers(seq)}

	if flags.algorithm == "forward" || flags.algorithm == "both" {
		out := hmm.NewForwardOutput(hmm.NewFloatMatrix(numRows, numCols))
		if flags.global {
			res.forward = hmm.FillGlobal(seq, in, out)
		} else {
			res.forward = hmm.FillLocal(seq, in, out)
		}
	}
	if flags.algorithm == "viterbi" || flags.algorithm == "both" {
		if flags.global {
			out := hmm.NewViterbiOutput(hmm.NewFloatMatrix(numRows, numCols), hmm.NewByteMatrix(numRows, numCols))
			res.viterbi = hmm.FillGlobal(seq, in, out)
		} else {
			path, score := hmm.AlignLocal(seq, in)
			res.viterbi = score
			res.pathLen = len(path)
		}
	}
	return res
}

func main() {
	var flags scoreFlags
	flag.StringVar(&flags.modelPath, "model", "", "pore model table (kmer, level mean, level stdv); .gz supported")
	flag.StringVar(&flags.eventsPath, "events", "", "per-read event table (read, index, mean, stdv, start)")
	flag.StringVar(&flags.sequence, "sequence", "", "candidate nucleotide sequence to align against")
	flag.StringVar(&flags.strand, "strand", "template", "strand to score: template or complement")
	flag.StringVar(&flags.algorithm, "algorithm", "both", "algorithm to run: forward, viterbi or both")
	flag.BoolVar(&flags.global, "global", false, "require the alignment to span the full event window")

	cleanup := grail.Init()
	defer cleanup()

	if flags.modelPath == "" || flags.eventsPath == "" || flags.sequence == "" {
		log.Fatal("-model, -events and -sequence are required")
	}
	if flags.algorithm != "forward" && flags.algorithm != "viterbi" && flags.algorithm != "both" {
		log.Fatalf("unknown algorithm %q", flags.algorithm)
	}
	strand := parseStrand(flags.strand)

	model, err := pore.LoadModel(flags.modelPath)
	if err != nil {
		log.Fatal(err)
	}
	reads, err := loadEvents(flags.eventsPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("scoring %d reads against %d-base sequence (k=%d)", len(reads), len(flags.sequence), model.K)

	results := make([]result, len(reads))
	err = traverse.Each(len(reads), func(i int) error {
		read := &pore.Read{}
		read.Events[strand] = reads[i].events
		read.Models[strand] = model
		read.Params[strand] = pore.DefaultTransitionParams

		in := hmm.Input{
			Read:        read,
			Strand:      strand,
			EventStart:  0,
			EventStop:   len(reads[i].events) - 1,
			EventStride: 1,
		}
		results[i] = scoreRead(flags.sequence, in, flags)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush() // nolint: errcheck
	for i, read := range reads {
		fmt.Fprintf(w, "%s\t%d\t%d", read.name, len(read.events), results[i].numKmers)
		if flags.algorithm == "forward" || flags.algorithm == "both" {
			fmt.Fprintf(w, "\t%.4f", results[i].forward)
		}
		if flags.algorithm == "viterbi" || flags.algorithm == "both" {
			fmt.Fprintf(w, "\t%.4f", results[i].viterbi)
			if !flags.global {
				fmt.Fprintf(w, "\t%d", results[i].pathLen)
			}
		}
		fmt.Fprintln(w)
	}
}
