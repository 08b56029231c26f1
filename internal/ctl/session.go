package ctl

import (
	"cmp"
	"fmt"
	"io"
	"strconv"

	"github.com/npillmayer/btreekit/btree"
	"github.com/npillmayer/btreekit/console"
	"github.com/npillmayer/btreekit/instrument"
	"github.com/npillmayer/btreekit/observe"
	"github.com/pingcap/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const metricsNamespace = "btreectl"

// session applies operations to a tree and reports on them. It hides the
// key type of the tree.
type session interface {
	apply(op operation) error
	finish() error
	stats() stats
}

type stats struct {
	inserted, duplicates int
	deleted, missing     int
	found, notFound      int
}

func newSession(cfg *Config, w io.Writer, quiet bool) (session, error) {
	if cfg.Tree.Keys == "string" {
		return makeSession(cfg, w, quiet, func(s string) (string, error) {
			return s, nil
		})
	}
	return makeSession(cfg, w, quiet, parseInt)
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("not an integer key: %q", s)
	}
	return n, nil
}

type treeSession[K cmp.Ordered] struct {
	cfg       *Config
	tree      *btree.Tree[K]
	parse     func(string) (K, error)
	w         io.Writer
	printer   *console.Printer
	quiet     bool
	async     *asyncEvents[K]
	collector *instrument.Collector[K]
	registry  *prometheus.Registry
	counts    stats
}

func makeSession[K cmp.Ordered](cfg *Config, w io.Writer, quiet bool,
	parse func(string) (K, error)) (*treeSession[K], error) {
	//
	s := &treeSession[K]{
		cfg:     cfg,
		parse:   parse,
		w:       w,
		printer: console.New(w, nil),
		quiet:   quiet,
	}
	if !cfg.Output.Color {
		s.printer.DisableColor()
	}
	var observers observe.Tee[K]
	if cfg.Output.Async {
		async, err := newAsyncEvents[K]()
		if err != nil {
			return nil, err
		}
		s.async = async
		observers = append(observers, async)
	} else if cfg.Output.Events {
		observers = append(observers, console.Observer[K](s.printer))
	}
	if cfg.Output.Metrics {
		s.collector = instrument.NewCollector[K](metricsNamespace, nil)
		s.registry = prometheus.NewRegistry()
		if err := s.registry.Register(s.collector); err != nil {
			return nil, errors.WithStack(err)
		}
		observers = append(observers, s.collector)
	}
	tcfg := btree.OrderedConfig[K](cfg.Tree.Degree)
	if len(observers) > 0 {
		tcfg.Observer = observers
	}
	tree, err := btree.NewWithConfig(tcfg)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	s.tree = tree
	if s.collector != nil {
		s.collector.Track(tree)
	}
	return s, nil
}

func (s *treeSession[K]) apply(op operation) error {
	switch op.kind {
	case opPrint:
		return console.PrintTree(s.printer, s.tree)
	case opDot:
		return s.tree.WriteDot(s.w)
	case opCheck:
		return s.check(op)
	case opClear:
		s.tree.Clear()
		s.report(true, "cleared")
		return nil
	}
	key, err := s.parse(op.arg)
	if err != nil {
		return err
	}
	switch op.kind {
	case opInsert:
		if s.tree.Insert(key) {
			s.counts.inserted++
			s.report(true, "+%v", key)
		} else {
			s.counts.duplicates++
			s.report(false, "+%v: duplicate", key)
		}
	case opDelete:
		if s.tree.Delete(key) {
			s.counts.deleted++
			s.report(true, "-%v", key)
		} else {
			s.counts.missing++
			s.report(false, "-%v: not found", key)
		}
	case opSearch:
		if s.tree.Search(key) {
			s.counts.found++
			s.report(true, "?%v: found", key)
		} else {
			s.counts.notFound++
			s.report(false, "?%v: not found", key)
		}
		return nil
	}
	if s.cfg.Tree.Check {
		return s.check(op)
	}
	return nil
}

func (s *treeSession[K]) check(op operation) error {
	if err := s.tree.Check(); err != nil {
		return errors.Annotatef(err, "after %s", op)
	}
	return nil
}

func (s *treeSession[K]) report(success bool, format string, args ...interface{}) {
	if !s.quiet {
		s.printer.Status(success, format, args...)
	}
}

func (s *treeSession[K]) stats() stats {
	return s.counts
}

// finish logs asynchronously collected events, then renders the tree in the
// configured output format, followed by metrics if requested.
func (s *treeSession[K]) finish() error {
	if s.async != nil {
		events, dropped := s.async.drain(asyncDrainTimeout)
		for _, e := range events {
			console.PrintEvent(s.printer, e)
		}
		fmt.Fprintf(s.w, "async events: received=%d dropped=%d\n", len(events), dropped)
	}
	switch s.cfg.Output.Format {
	case "text":
		if err := console.PrintTree(s.printer, s.tree); err != nil {
			return err
		}
		fmt.Fprintf(s.w, "keys=%d height=%d\n", s.tree.Len(), s.tree.Height())
	case "brackets":
		fmt.Fprintln(s.w, s.tree.String())
	case "dot":
		if err := s.tree.WriteDot(s.w); err != nil {
			return errors.WithStack(err)
		}
	}
	if s.registry != nil {
		return s.writeMetrics()
	}
	return nil
}

func (s *treeSession[K]) writeMetrics() error {
	mfs, err := s.registry.Gather()
	if err != nil {
		return errors.WithStack(err)
	}
	enc := expfmt.NewEncoder(s.w, expfmt.FmtText)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
